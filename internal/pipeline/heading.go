package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// Markup removed when deriving plain heading text.
var (
	plainFootnote = regexp.MustCompile(`\[\*[^\]]*\]`)
	plainTemplate = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	plainSpaces   = regexp.MustCompile(`\s+`)
)

// headings converts "== text ==" lines to h2..h6 and records each heading
// with a unique anchor id.
func headings(d *Document, text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, raw := range lines {
		ln := ClassifyLine(raw)
		if ln.Kind != LineHeading {
			out = append(out, raw)
			continue
		}

		plain := d.plainText(ln.Content)
		id := d.anchor(plain)
		d.Headings = append(d.Headings, Heading{
			Level: ln.Level,
			Text:  plain,
			ID:    id,
			Index: len(d.Headings),
		})

		w := newHTMLWriter(d.Tokens)
		w.tag(fmt.Sprintf(`<h%d id="%s">`, ln.Level, escapeText(id)))
		w.text(ln.Content)
		w.tag(fmt.Sprintf(`</h%d>`, ln.Level))
		out = appendBlock(out, w.String())
	}
	return strings.Join(out, "\n")
}

// plainText reduces heading source to the text a reader sees: links become
// their labels, formatting markers and footnotes disappear, escapes and
// literal blocks become their characters.
func (d *Document) plainText(s string) string {
	s = linkPattern.ReplaceAllStringFunc(s, func(m string) string {
		target, label, hasLabel := splitLink(linkPattern.FindStringSubmatch(m)[1])
		if _, ok := fileName(target); ok {
			return ""
		}
		if hasLabel {
			return label
		}
		return target
	})
	s = plainFootnote.ReplaceAllString(s, "")
	s = plainTemplate.ReplaceAllString(s, "")
	s = colorPattern.ReplaceAllString(s, "$2")
	for _, span := range inlineSpans {
		s = span.pattern.ReplaceAllString(s, "$1")
	}
	s = strings.ReplaceAll(s, lineBreakMarker, " ")
	s = d.Tokens.Plain(s)
	return strings.TrimSpace(plainSpaces.ReplaceAllString(s, " "))
}
