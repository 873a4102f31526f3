package pipeline

import (
	"regexp"
	"strings"
)

// LineKind tags a source line with the construct it starts.
type LineKind int

const (
	LineText LineKind = iota
	LineBlank
	LineFence     // ```lang
	LineFoldOpen  // {{{#!folding Summary
	LineFoldClose // }}}
	LineHeading   // == Title ==
	LineRule      // ----
	LineTableRow  // ||a||b||
	LineQuote     // > text
	LineListItem  // * item, 1. item
)

var lineKindNames = [...]string{
	LineText:      "text",
	LineBlank:     "blank",
	LineFence:     "fence",
	LineFoldOpen:  "fold-open",
	LineFoldClose: "fold-close",
	LineHeading:   "heading",
	LineRule:      "rule",
	LineTableRow:  "table-row",
	LineQuote:     "quote",
	LineListItem:  "list-item",
}

func (k LineKind) String() string {
	if k < 0 || int(k) >= len(lineKindNames) {
		return "unknown"
	}
	return lineKindNames[k]
}

// Heading level bounds. Level 1 belongs to the page title.
const (
	minHeadingLevel = 2
	maxHeadingLevel = 6
)

const (
	fenceMarker    = "```"
	foldOpenMarker = "{{{#!folding"
	foldCloseLine  = "}}}"
)

// Precompiled line patterns.
var (
	headingLine  = regexp.MustCompile(`^(=+)[ \t]*(.+?)[ \t]*(=+)$`)
	ruleLine     = regexp.MustCompile(`^-{4,}$`)
	listItemLine = regexp.MustCompile(`^( *)([*\-]|[0-9]+\.|[aAiI]\.)[ \t]+(.*)$`)
)

// Line is one classified source line.
type Line struct {
	Kind    LineKind
	Raw     string
	Level   int    // heading level
	Indent  int    // list item indentation
	Marker  string // list marker, fence language or fold summary
	Content string // heading text or list item text
}

// ClassifyLine decides which construct a line starts. Precedence runs
// fence, fold open, fold close, heading, rule, table row, quote, list item,
// blank, then plain text.
func ClassifyLine(raw string) Line {
	ln := Line{Kind: LineText, Raw: raw}
	trimmed := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(trimmed, fenceMarker):
		ln.Kind = LineFence
		ln.Marker = strings.TrimSpace(strings.TrimPrefix(trimmed, fenceMarker))
		return ln
	case strings.HasPrefix(trimmed, foldOpenMarker):
		ln.Kind = LineFoldOpen
		ln.Marker = strings.TrimSpace(strings.TrimPrefix(trimmed, foldOpenMarker))
		return ln
	case trimmed == foldCloseLine:
		ln.Kind = LineFoldClose
		return ln
	}

	if level, text, ok := parseHeading(strings.TrimRight(raw, " \t")); ok {
		ln.Kind = LineHeading
		ln.Level = level
		ln.Content = text
		return ln
	}

	switch {
	case ruleLine.MatchString(trimmed):
		ln.Kind = LineRule
	case len(trimmed) >= 4 && strings.HasPrefix(trimmed, "||") && strings.HasSuffix(trimmed, "||"):
		ln.Kind = LineTableRow
	case strings.HasPrefix(raw, ">"):
		ln.Kind = LineQuote
	case trimmed == "":
		ln.Kind = LineBlank
	default:
		if m := listItemLine.FindStringSubmatch(raw); m != nil && isListMarker(m[1], m[2]) {
			ln.Kind = LineListItem
			ln.Indent = len(m[1])
			ln.Marker = m[2]
			ln.Content = m[3]
		}
	}
	return ln
}

// parseHeading matches "== text ==" with the same marker count on both
// sides and a level between 2 and 6.
func parseHeading(line string) (level int, text string, ok bool) {
	m := headingLine.FindStringSubmatch(line)
	if m == nil || len(m[1]) != len(m[3]) {
		return 0, "", false
	}
	level = len(m[1])
	if level < minHeadingLevel || level > maxHeadingLevel {
		return 0, "", false
	}
	return level, m[2], true
}

// Ordered markers need at least one space of indentation so that sentences
// starting with "1. " or "a. " stay paragraphs.
func isListMarker(indent, marker string) bool {
	if marker == "*" || marker == "-" {
		return true
	}
	return indent != ""
}
