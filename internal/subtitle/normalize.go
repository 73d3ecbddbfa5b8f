package subtitle

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// markupRegex matches angle-bracket styling tags and musical note glyphs
// that subtitle rippers leave in cue text.
var markupRegex = regexp.MustCompile(`<.*?>|🎶|♪`)

// Clean strips markup and ripper artifacts from cue text without
// touching case or line structure.
func Clean(text string) string {
	cleaned := markupRegex.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, ". . .", "...")
	return strings.TrimSpace(cleaned)
}

// Normalize prepares text for matching: markup stripped, newlines folded
// into spaces, whitespace collapsed, NFC-composed, optionally lowercased.
func Normalize(text string, lower bool) string {
	cleaned := Clean(text)
	cleaned = strings.Join(strings.Fields(strings.ReplaceAll(cleaned, "\n", " ")), " ")
	cleaned = norm.NFC.String(cleaned)
	if lower {
		return strings.ToLower(cleaned)
	}
	return cleaned
}
