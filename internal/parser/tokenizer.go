package parser

import "strings"

// Tokenize collapses runs of spaces, splits text into lines and every line
// into whitespace-delimited tokens. Empty lines yield empty token slices.
func Tokenize(text string) [][]string {
	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	rows := strings.Split(text, "\n")
	lines := make([][]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Fields(row))
	}

	return lines
}
