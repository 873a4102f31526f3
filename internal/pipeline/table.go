package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Cell prefix: <-N> colspan, <|N> rowspan, <(> <:> <)> alignment
var cellAttrPattern = regexp.MustCompile(`^<(-[0-9]+|\|[0-9]+|[(:)])>`)

// Span attributes above this are clamped.
const maxCellSpan = 1000

type tableCell struct {
	text    string
	header  bool
	align   string
	colspan int
	rowspan int
}

// tables groups consecutive ||row|| lines into one table.
func tables(d *Document, text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if ClassifyLine(lines[i]).Kind != LineTableRow {
			out = append(out, lines[i])
			i++
			continue
		}
		var rows [][]tableCell
		for ; i < len(lines) && ClassifyLine(lines[i]).Kind == LineTableRow; i++ {
			rows = append(rows, parseRow(lines[i]))
		}
		out = appendBlock(out, d.renderTable(rows))
	}
	return strings.Join(out, "\n")
}

// parseRow splits "||a||b||" into cells. Each empty segment before a cell
// widens that cell by one column; trailing empty segments become one empty
// cell spanning them.
func parseRow(line string) []tableCell {
	s := strings.TrimSpace(line)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "||"), "||")

	var cells []tableCell
	span := 1
	for _, part := range strings.Split(s, "||") {
		if part == "" {
			span++
			continue
		}
		c := parseCell(part)
		if c.colspan == 0 {
			c.colspan = span
		}
		cells = append(cells, c)
		span = 1
	}
	if span > 1 || len(cells) == 0 {
		cells = append(cells, tableCell{colspan: max(span-1, 1), rowspan: 1})
	}
	return cells
}

func parseCell(part string) tableCell {
	c := tableCell{rowspan: 1}
	for {
		m := cellAttrPattern.FindStringSubmatch(part)
		if m == nil {
			break
		}
		part = part[len(m[0]):]
		switch attr := m[1]; attr[0] {
		case '-':
			c.colspan = clampSpan(attr[1:])
		case '|':
			c.rowspan = clampSpan(attr[1:])
		case '(':
			c.align = "left"
		case ':':
			c.align = "center"
		case ')':
			c.align = "right"
		}
	}
	if rest, ok := strings.CutPrefix(strings.TrimLeft(part, " "), "!"); ok {
		c.header = true
		part = rest
	}
	c.text = strings.TrimSpace(part)
	return c
}

func clampSpan(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return min(n, maxCellSpan)
}

// renderTable pads every row to the widest one, counting columns still
// covered by rowspans from rows above. A first row made only of header
// cells becomes the thead.
func (d *Document) renderTable(rows [][]tableCell) string {
	covered := make([]int, len(rows))
	widths := make([]int, len(rows))
	widest := 0
	for i, row := range rows {
		for _, c := range row {
			widths[i] += c.colspan
			for k := 1; k < c.rowspan && i+k < len(rows); k++ {
				covered[i+k] += c.colspan
			}
		}
	}
	for i := range rows {
		widths[i] += covered[i]
		widest = max(widest, widths[i])
	}

	headRows := 0
	if allHeaders(rows[0]) {
		headRows = 1
	}

	w := newHTMLWriter(d.Tokens)
	w.tag(`<table class="wiki-table">`)
	for i, row := range rows {
		switch i {
		case 0:
			if headRows == 1 {
				w.tag(`<thead>`)
			} else {
				w.tag(`<tbody>`)
			}
		case headRows:
			w.tag(`<tbody>`)
		}

		w.tag(`<tr>`)
		for _, c := range row {
			tag := "td"
			if c.header {
				tag = "th"
			}
			w.tag(`<` + tag + cellAttrs(c) + `>`)
			w.text(c.text)
			w.tag(`</` + tag + `>`)
		}
		pad := "<td></td>"
		if i < headRows {
			pad = "<th></th>"
		}
		if n := widest - widths[i]; n > 0 {
			d.log.Debug("padding short table row", "pass", "tables", "row", i+1, "missing", n)
			w.tag(strings.Repeat(pad, n))
		}
		w.tag(`</tr>`)

		if i == 0 && headRows == 1 {
			w.tag(`</thead>`)
		}
	}
	if len(rows) > headRows {
		w.tag(`</tbody>`)
	}
	w.tag(`</table>`)
	return w.String()
}

func allHeaders(row []tableCell) bool {
	for _, c := range row {
		if !c.header {
			return false
		}
	}
	return len(row) > 0
}

func cellAttrs(c tableCell) string {
	var b strings.Builder
	if c.colspan > 1 {
		fmt.Fprintf(&b, ` colspan="%d"`, c.colspan)
	}
	if c.rowspan > 1 {
		fmt.Fprintf(&b, ` rowspan="%d"`, c.rowspan)
	}
	if c.align != "" {
		fmt.Fprintf(&b, ` style="text-align: %s"`, c.align)
	}
	return b.String()
}
