package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Normalize converts \r\n and \r to \n, drops a leading byte order mark and
// composes the text to Unicode NFC so decomposed Hangul from some editors
// matches markers like [목차] and 틀:.
func Normalize(content string) string {
	content = strings.TrimPrefix(content, "\uFEFF")
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return norm.NFC.String(content)
}
