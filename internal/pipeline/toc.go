package pipeline

import (
	"strconv"
	"strings"
)

// numberingState tracks hierarchical numbering for TOC entries.
// The first heading opens depth 1 whatever its level, and a jump of more
// than one level becomes a direct child.
type numberingState struct {
	counters [maxHeadingLevel]int // counters[0] = depth 1 count, etc.
	open     []int                // source level of each open depth
}

func newNumberingState() *numberingState {
	return &numberingState{}
}

// next returns the number string ("1.2.") and effective depth for a heading
// level. A heading closes every open depth at its level or deeper, then
// nests under whatever remains (h2 -> h4 -> h4 is 1, 1.1, 1.2).
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	for len(n.open) > 0 && n.open[len(n.open)-1] >= level {
		n.open = n.open[:len(n.open)-1]
	}
	n.open = append(n.open, level)
	effectiveDepth = len(n.open)

	for i := effectiveDepth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.counters[effectiveDepth-1]++

	parts := make([]string, effectiveDepth)
	for i := range parts {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// renderTOC builds the nested table of contents. Each heading yields exactly
// one entry linking to its anchor. No headings renders nothing.
func renderTOC(headings []Heading, title string) string {
	if len(headings) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="wiki-toc" id="` + tocAnchor + `">`)
	if title != "" {
		b.WriteString(`<div class="wiki-toc-title">` + escapeText(title) + `</div>`)
	}

	numbering := newNumberingState()
	depth := 0
	for _, h := range headings {
		num, d := numbering.next(h.Level)
		if d > depth {
			// numbering guarantees d == depth+1
			b.WriteString(`<ul>`)
			depth = d
		} else {
			b.WriteString(`</li>`)
			for ; depth > d; depth-- {
				b.WriteString(`</ul></li>`)
			}
		}
		b.WriteString(`<li><a href="#` + escapeText(h.ID) + `">`)
		b.WriteString(`<span class="wiki-toc-number">` + num + `</span> ` + escapeText(h.Text))
		b.WriteString(`</a>`)
	}
	b.WriteString(`</li>`)
	for ; depth > 1; depth-- {
		b.WriteString(`</ul></li>`)
	}
	b.WriteString(`</ul></div>`)
	return b.String()
}
