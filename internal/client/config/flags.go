package config

import (
	"flag"
	"os"

	"studymate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend server
//	-s string   path of the session file
//
// Arguments are filtered through flagx.FilterArgs so the config-file flags
// handled elsewhere do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.SessionFile, "s", cfg.SessionFile, "path of the session file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
