package pipeline

import (
	"regexp"
	"strings"
)

// One or more blank (or whitespace-only) lines
var blankLines = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)*`)

// wrapParagraphs wraps the text of every block in <p>, turning single
// newlines into <br>. Blocks that open with generated markup pass through.
// Markers and block-level template bodies split a block, so text on either
// side of them gets its own paragraph.
func wrapParagraphs(d *Document, text string) string {
	return wrapBlocks(d.Tokens, splitBlocks(text))
}

// splitBlocks splits text on blank lines and drops empty blocks.
func splitBlocks(text string) []string {
	var blocks []string
	for _, b := range blankLines.Split(text, -1) {
		if strings.TrimSpace(b) == "" {
			continue
		}
		blocks = append(blocks, strings.Trim(b, "\n"))
	}
	return blocks
}

func wrapBlocks(t *Tokens, blocks []string) string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts := t.standalone(b)
		generated := t.IsBlockStart(parts[0])
		for i, part := range parts {
			switch {
			case i%2 == 1:
				out = append(out, part)
			case strings.TrimSpace(part) == "":
			case generated:
				out = append(out, strings.TrimSpace(part))
			default:
				out = append(out, "<p>"+lineBreaks(part)+"</p>")
			}
		}
	}
	return strings.Join(out, "\n")
}

func lineBreaks(block string) string {
	return strings.ReplaceAll(strings.TrimSpace(block), "\n", "<br>\n")
}
