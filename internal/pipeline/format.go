package pipeline

import (
	"regexp"
	"strings"
)

// inlineSpan is one paired formatting marker. Spans never cross a line.
type inlineSpan struct {
	pattern     *regexp.Regexp
	open, close string
}

// Order matters: bold-italic before bold before italic.
var inlineSpans = []inlineSpan{
	{regexp.MustCompile(`'''''([^\n]+?)'''''`), "<strong><em>", "</em></strong>"},
	{regexp.MustCompile(`'''([^\n]+?)'''`), "<strong>", "</strong>"},
	{regexp.MustCompile(`''([^\n]+?)''`), "<em>", "</em>"},
	{regexp.MustCompile(`__([^\n]+?)__`), "<u>", "</u>"},
	{regexp.MustCompile(`~~([^\n]+?)~~`), "<del>", "</del>"},
	{regexp.MustCompile(`--([^\n]+?)--`), "<del>", "</del>"},
	{regexp.MustCompile(`\^\^([^\n]+?)\^\^`), "<sup>", "</sup>"},
	{regexp.MustCompile(`,,([^\n]+?),,`), "<sub>", "</sub>"},
}

// {{{#red text}}} and {{{#ff0000 text}}}
var colorPattern = regexp.MustCompile(`\{\{\{#([0-9A-Fa-f]{6}|[0-9A-Fa-f]{3}|[A-Za-z]+)[ \t]+([^\n]*?)\}\}\}`)

var hexColor = regexp.MustCompile(`^(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

const lineBreakMarker = "[br]"

// formatting applies inline spans to each run of text between block-level
// markup, so a span never straddles a table cell or list item boundary.
func formatting(d *Document, text string) string {
	return d.Tokens.mapText(text, func(s string) string {
		return formatSpans(d.Tokens, s)
	})
}

// formatSpans renders colour spans, paired markers and [br]. Generated tags
// are held as inline tokens.
func formatSpans(t *Tokens, s string) string {
	s = colorPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := colorPattern.FindStringSubmatch(m)
		color := strings.ToLower(sub[1])
		if hexColor.MatchString(color) {
			color = "#" + color
		}
		return t.Inline(`<span class="wiki-color" style="color: `+color+`">`) + sub[2] + t.Inline(`</span>`)
	})
	for _, span := range inlineSpans {
		s = span.pattern.ReplaceAllStringFunc(s, func(m string) string {
			inner := span.pattern.FindStringSubmatch(m)[1]
			return t.Inline(span.open) + inner + t.Inline(span.close)
		})
	}
	return strings.ReplaceAll(s, lineBreakMarker, t.Inline("<br>"))
}
