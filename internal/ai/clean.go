package ai

import (
	"regexp"
	"strings"
)

var (
	blankRuns      = regexp.MustCompile(`\n\s*\n`)
	horizontalRuns = regexp.MustCompile(`[ \t]+`)
)

// CleanResponse normalizes LLM output for rendering: runs of blank lines
// collapse to one, horizontal whitespace runs collapse to a single
// space, and surrounding whitespace is trimmed.
func CleanResponse(text string) string {
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = horizontalRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
