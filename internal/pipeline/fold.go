package pipeline

import "strings"

// Folding sections nest one level deep: at most two open at once.
const maxFoldDepth = 2

const defaultFoldSummary = "펼치기 · 접기"

// foldSections turns {{{#!folding Summary ... }}} regions into collapsible
// containers. Fence lines and everything between them are left for the code
// pass. Openings past the depth limit and stray closings stay literal;
// sections still open at the end of the document are closed there, after
// closing a code fence left open inside them.
func foldSections(d *Document, text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	depth := 0
	inFence := false

	for i, raw := range lines {
		ln := ClassifyLine(raw)
		if ln.Kind == LineFence {
			inFence = !inFence
			out = append(out, raw)
			continue
		}
		if inFence {
			out = append(out, raw)
			continue
		}

		switch {
		case ln.Kind == LineFoldOpen && depth < maxFoldDepth:
			depth++
			summary := ln.Marker
			if summary == "" {
				summary = defaultFoldSummary
			}
			w := newHTMLWriter(d.Tokens)
			w.tag(`<details class="wiki-folding"><summary>`)
			w.text(summary)
			w.tag(`</summary><div class="wiki-folding-body">`)
			out = appendBlock(out, w.String())
		case ln.Kind == LineFoldOpen:
			d.log.Debug("folding nested too deep", "pass", "folding", "line", i+1)
			out = append(out, raw)
		case ln.Kind == LineFoldClose && depth > 0:
			depth--
			out = appendBlock(out, d.Tokens.Block(`</div></details>`))
		default:
			out = append(out, raw)
		}
	}

	if depth > 0 {
		d.log.Debug("unterminated folding section", "pass", "folding", "open", depth)
		if inFence {
			out = append(out, fenceMarker)
		}
	}
	for ; depth > 0; depth-- {
		out = appendBlock(out, d.Tokens.Block(`</div></details>`))
	}
	return strings.Join(out, "\n")
}
