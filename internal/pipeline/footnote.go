package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

const footnoteOpen = "[*"

// resolveFootnotes rewrites every [*...] into a superscript reference and
// records the footnote. [* body] is anonymous, [*name body] defines a named
// footnote and [*name] references one. Ids follow first occurrence, so a
// reference that precedes its definition still gets the earlier id. The
// list is placed at the [각주] marker, or appended at the end. Template
// bodies are scanned where they were transcluded.
func resolveFootnotes(d *Document, text string) string {
	byName := make(map[string]int)
	text = d.footnotesIn(text, byName)

	for _, fn := range d.Footnotes {
		if fn.Body == "" {
			d.log.Debug("footnote without body", "pass", "footnotes", "label", fn.Label)
		}
	}
	if len(d.Footnotes) > 0 {
		text += d.Tokens.EnsureFootnoteMarker()
	}
	return text
}

// footnotesIn resolves the footnotes of s in reading order, descending into
// block-level template bodies.
func (d *Document) footnotesIn(s string, byName map[string]int) string {
	parts := d.Tokens.segments(s)
	for i := range parts {
		if i%2 == 1 {
			d.transcludedFootnotes(parts[i], byName)
			continue
		}
		parts[i] = d.scanFootnotes(parts[i], byName)
	}
	return strings.Join(parts, "")
}

func (d *Document) scanFootnotes(s string, byName map[string]int) string {
	if !strings.Contains(s, footnoteOpen) {
		return d.transcludedFootnotes(s, byName)
	}
	var b strings.Builder
	for {
		i := strings.Index(s, footnoteOpen)
		if i < 0 {
			break
		}
		end := closingBracket(s, i+len(footnoteOpen))
		if end < 0 {
			d.log.Debug("unterminated footnote", "pass", "footnotes")
			b.WriteString(d.transcludedFootnotes(s[:i+len(footnoteOpen)], byName))
			s = s[i+len(footnoteOpen):]
			continue
		}
		b.WriteString(d.transcludedFootnotes(s[:i], byName))
		b.WriteString(d.footnoteRef(s[i+len(footnoteOpen):end], byName))
		s = s[end+1:]
	}
	b.WriteString(d.transcludedFootnotes(s, byName))
	return b.String()
}

// transcludedFootnotes resolves footnotes inside the template bodies
// transcluded in s, in order, and returns s unchanged.
func (d *Document) transcludedFootnotes(s string, byName map[string]int) string {
	d.Tokens.eachTranscluded(s, func(body string) string {
		return d.footnotesIn(body, byName)
	})
	return s
}

// closingBracket returns the index of the ']' that balances an already open
// '[', or -1 if the line ends first.
func closingBracket(s string, from int) int {
	depth := 1
	for j := from; j < len(s); j++ {
		switch s[j] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return j
			}
		case '\n':
			return -1
		}
	}
	return -1
}

func (d *Document) footnoteRef(inner string, byName map[string]int) string {
	var name, body string
	if inner == "" || inner[0] == ' ' || inner[0] == '\t' {
		body = strings.TrimSpace(inner)
	} else {
		name, body, _ = strings.Cut(inner, " ")
		body = strings.TrimSpace(body)
	}

	pos, known := byName[name]
	if name == "" || !known {
		id := len(d.Footnotes) + 1
		label := name
		if label == "" {
			label = strconv.Itoa(id)
		}
		d.Footnotes = append(d.Footnotes, Footnote{ID: id, Label: label})
		pos = len(d.Footnotes) - 1
		if name != "" {
			byName[name] = pos
		}
	}

	fn := &d.Footnotes[pos]
	switch {
	case body == "":
	case fn.Body == "":
		fn.Body = body
	case fn.Body != body:
		d.log.Debug("footnote redefined, keeping first body", "pass", "footnotes", "label", fn.Label)
	}

	refID := fmt.Sprintf("%s%d-%d", footnoteRefAnchor, fn.ID, len(fn.Refs)+1)
	fn.Refs = append(fn.Refs, refID)
	return d.Tokens.Inline(fmt.Sprintf(
		`<sup class="wiki-fn-ref" id="%s"><a href="#%s%d">[%s]</a></sup>`,
		refID, footnoteAnchor, fn.ID, fn.Label,
	))
}

// renderFootnotes builds the detached footnote list with one back-link per
// reference.
func (d *Document) renderFootnotes() string {
	var b strings.Builder
	b.WriteString(`<ol class="wiki-footnotes">`)
	for _, fn := range d.Footnotes {
		fmt.Fprintf(&b, `<li id="%s%d"><span class="wiki-fn-label">[%s]</span>`, footnoteAnchor, fn.ID, fn.Label)
		for _, ref := range fn.Refs {
			fmt.Fprintf(&b, ` <a class="wiki-fn-backref" href="#%s">↑</a>`, ref)
		}
		b.WriteString(` <span class="wiki-fn-body">` + fn.Body + `</span></li>`)
	}
	b.WriteString(`</ol>`)
	return b.String()
}
