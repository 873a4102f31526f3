package pipeline

import (
	"regexp"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// escapeText escapes user text for element content and quoted attributes.
func escapeText(s string) string {
	return htmlEscaper.Replace(s)
}

// [목차] / [tableofcontents] and [각주] / [footnote]
var markerPattern = regexp.MustCompile(`(?i)\[(목차|tableofcontents|각주|footnote)\]`)

// escapeUserText HTML-escapes everything the block passes left as text.
// Tokens contain no escapable characters and pass through unchanged.
func escapeUserText(_ *Document, text string) string {
	return escapeText(text)
}

// plantMarkers turns the first TOC and footnote markers into structural
// tokens, on a block of their own when the marker has a line to itself.
// Template bodies never place them.
func plantMarkers(d *Document, text string) string {
	return replaceMatches(markerPattern, text, func(sub []string, alone bool) string {
		if d.depth > 0 {
			return d.Tokens.Inline(sub[0])
		}
		kind := kindTOC
		switch strings.ToLower(sub[1]) {
		case "각주", "footnote":
			kind = kindFootnote
		}
		tok := d.Tokens.Marker(kind, sub[0])
		if alone && d.Tokens.IsBlockStart(tok) {
			return "\n\n" + tok + "\n\n"
		}
		return tok
	})
}

// replaceMatches rewrites every match of re with fn, telling fn whether the
// match is alone on its line.
func replaceMatches(re *regexp.Regexp, text string, fn func(sub []string, alone bool) string) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		sub := make([]string, len(m)/2)
		for i := range sub {
			if m[2*i] >= 0 {
				sub[i] = text[m[2*i]:m[2*i+1]]
			}
		}
		b.WriteString(fn(sub, ownLine(text, m[0], m[1])))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// ownLine reports whether text[start:end] is alone on its line.
func ownLine(text string, start, end int) bool {
	before := strings.TrimRight(text[:start], " \t")
	after := strings.TrimLeft(text[end:], " \t")
	return (before == "" || strings.HasSuffix(before, "\n")) &&
		(after == "" || strings.HasPrefix(after, "\n"))
}
