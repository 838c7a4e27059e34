package ui

import (
	_ "embed"
	"strings"
)

//go:embed sample.txt
var sampleData string

// SampleContent returns the built-in diagram shown when no file is given.
func SampleContent() []string {
	return SplitContent(sampleData)
}

// SplitContent splits text into lines, dropping trailing blank lines and
// expanding tabs.
func SplitContent(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
