package pipeline

import "strings"

// blockquotes groups consecutive ">" lines into one container. A blank or
// unmarked line ends it.
func blockquotes(d *Document, text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if ClassifyLine(lines[i]).Kind != LineQuote {
			out = append(out, lines[i])
			i++
			continue
		}
		start := i
		for i < len(lines) && ClassifyLine(lines[i]).Kind == LineQuote {
			i++
		}
		out = appendBlock(out, d.renderQuote(lines[start:i]))
	}
	return strings.Join(out, "\n")
}

// renderQuote strips one ">" (and one following space) from every line.
// Runs of lines still starting with ">" nest; the rest join with <br>.
func (d *Document) renderQuote(lines []string) string {
	inner := make([]string, len(lines))
	for i, l := range lines {
		inner[i] = strings.TrimPrefix(strings.TrimPrefix(l, ">"), " ")
	}

	w := newHTMLWriter(d.Tokens)
	w.tag(`<blockquote class="wiki-quote">`)
	afterText := false
	for i := 0; i < len(inner); {
		if strings.HasPrefix(inner[i], ">") {
			start := i
			for i < len(inner) && strings.HasPrefix(inner[i], ">") {
				i++
			}
			w.text(d.renderQuote(inner[start:i]))
			afterText = false
			continue
		}
		if afterText {
			w.tag(`<br>`)
		}
		w.text(inner[i])
		afterText = true
		i++
	}
	w.tag(`</blockquote>`)
	return w.String()
}
