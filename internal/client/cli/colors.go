package cli

import (
	"fmt"

	"studymate/internal/client/models"
)

// ansiCodes maps the abstract presentation tokens to terminal colors.
// Unknown tokens render without color.
var ansiCodes = map[models.ColorToken]string{
	models.ColorGreen:      "\033[32m",
	models.ColorLightGreen: "\033[92m",
	models.ColorOrange:     "\033[33m",
	models.ColorDeepOrange: "\033[91m",
	models.ColorRed:        "\033[31m",
	models.ColorPurple:     "\033[35m",
	models.ColorGray:       "\033[90m",
}

const ansiReset = "\033[0m"

// colorize wraps s in the terminal color of token.
func colorize(s string, token models.ColorToken) string {
	code, ok := ansiCodes[token]
	if !ok {
		return s
	}
	return fmt.Sprintf("%s%s%s", code, s, ansiReset)
}
