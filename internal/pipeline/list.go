package pipeline

import (
	"strconv"
	"strings"
)

// listFrame is one open <ul> or <ol> with its last <li> still open.
type listFrame struct {
	indent int
	tag    string // "ul" or "ol"
	kind   string // marker family: "*", "1", "a", "A", "i", "I"
}

// lists groups consecutive list item lines into nested lists.
func lists(d *Document, text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		first := ClassifyLine(lines[i])
		if first.Kind != LineListItem {
			out = append(out, lines[i])
			i++
			continue
		}
		var items []Line
		for ; i < len(lines); i++ {
			ln := ClassifyLine(lines[i])
			if ln.Kind != LineListItem {
				break
			}
			items = append(items, ln)
		}
		out = appendBlock(out, d.renderList(items))
	}
	return strings.Join(out, "\n")
}

// renderList nests items by indentation. A deeper item opens a list inside
// the previous item; a shallower one closes lists down to its depth; a
// different marker family at the same depth closes the list and starts a
// new one.
func (d *Document) renderList(items []Line) string {
	w := newHTMLWriter(d.Tokens)
	var stack []listFrame

	closeTop := func() {
		top := stack[len(stack)-1]
		w.tag(`</li></` + top.tag + `>`)
		stack = stack[:len(stack)-1]
	}

	for _, it := range items {
		tag, kind, start := listMarker(it.Marker)

		for len(stack) > 0 && stack[len(stack)-1].indent > it.Indent {
			closeTop()
		}
		if len(stack) > 0 && stack[len(stack)-1].indent == it.Indent {
			if top := stack[len(stack)-1]; top.tag == tag && top.kind == kind {
				w.tag(`</li>`)
			} else {
				closeTop()
			}
		}
		if len(stack) == 0 || stack[len(stack)-1].indent < it.Indent {
			w.tag(openList(tag, kind, start))
			stack = append(stack, listFrame{indent: it.Indent, tag: tag, kind: kind})
		}

		w.tag(`<li>`)
		w.text(it.Content)
	}
	for len(stack) > 0 {
		closeTop()
	}
	return w.String()
}

// listMarker maps a marker to its list tag, marker family and, for numbered
// markers, the start number.
func listMarker(marker string) (tag, kind string, start int) {
	if marker == "*" || marker == "-" {
		return "ul", "*", 0
	}
	body := strings.TrimSuffix(marker, ".")
	if strings.Trim(body, "0123456789") == "" {
		n, err := strconv.Atoi(body)
		if err != nil {
			n = 1
		}
		return "ol", "1", n
	}
	return "ol", body, 0
}

func openList(tag, kind string, start int) string {
	if tag == "ul" {
		return `<ul class="wiki-list">`
	}
	attrs := ` class="wiki-list"`
	if kind != "1" {
		attrs += ` type="` + kind + `"`
	}
	if kind == "1" && start != 1 {
		attrs += ` start="` + strconv.Itoa(start) + `"`
	}
	return `<ol` + attrs + `>`
}
