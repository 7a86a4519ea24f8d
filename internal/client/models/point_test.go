package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidSubject(t *testing.T) {
	for _, s := range Subjects {
		assert.True(t, ValidSubject(s), s)
	}
	assert.False(t, ValidSubject(SubjectAll), "sentinel must not be a stored subject")
	assert.False(t, ValidSubject(""))
	assert.False(t, ValidSubject("高等数学"))
}

func TestImportanceColor(t *testing.T) {
	tests := []struct {
		value string
		want  ColorToken
	}{
		{"低", ColorGreen},
		{"中", ColorOrange},
		{"高", ColorRed},
		{"必考", ColorPurple},
		{"", ColorGray},
		{"unknown", ColorGray},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ImportanceColor(tc.value), tc.value)
	}
}

func TestDifficultyColor(t *testing.T) {
	tests := []struct {
		value string
		want  ColorToken
	}{
		{"易", ColorGreen},
		{"较易", ColorLightGreen},
		{"中", ColorOrange},
		{"较难", ColorDeepOrange},
		{"难", ColorRed},
		{"", ColorGray},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DifficultyColor(tc.value), tc.value)
	}
}

func TestContentPreview(t *testing.T) {
	require.Equal(t, "", ContentPreview(""))

	short := "二叉树的前序遍历"
	require.Equal(t, short, ContentPreview(short))

	// 120 CJK runes must be cut at 100 runes, not bytes
	long := strings.Repeat("树", 120)
	got := ContentPreview(long)
	require.Equal(t, strings.Repeat("树", 100)+"...", got)
	require.Equal(t, 103, len([]rune(got)))
}

func TestMatchesSearch(t *testing.T) {
	kp := KnowledgePoint{PointName: "Binary Tree 遍历", Category: "树与二叉树"}

	assert.True(t, kp.MatchesSearch(""))
	assert.True(t, kp.MatchesSearch("binary"))
	assert.True(t, kp.MatchesSearch("TREE"))
	assert.True(t, kp.MatchesSearch("二叉树"))
	assert.False(t, kp.MatchesSearch("哈希"))
}

func TestValidGrade(t *testing.T) {
	assert.True(t, ValidGrade(""))
	assert.True(t, ValidGrade("大三"))
	assert.False(t, ValidGrade("研一"))
}
