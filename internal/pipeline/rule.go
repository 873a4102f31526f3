package pipeline

import "strings"

// horizontalRules replaces lines of four or more dashes.
func horizontalRules(d *Document, text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		if ClassifyLine(raw).Kind == LineRule {
			out = appendBlock(out, d.Tokens.Block(`<hr class="wiki-rule">`))
			continue
		}
		out = append(out, raw)
	}
	return strings.Join(out, "\n")
}
