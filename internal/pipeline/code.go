package pipeline

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Language tags accepted on an opening fence
var fenceLanguage = regexp.MustCompile(`^[A-Za-z0-9_+#.\-]+$`)

// codeFormatter emits class-based markup without its own <pre> wrapper;
// colours come from the stylesheet (see WriteHighlightCSS).
var codeFormatter = chromahtml.New(
	chromahtml.WithClasses(true),
	chromahtml.PreventSurroundingPre(true),
)

// codeBlocks renders fenced regions. The body is restored to its exact source
// first, since escapes and literal blocks mean nothing inside code. An
// unterminated fence runs to the end of the document.
func codeBlocks(d *Document, text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		ln := ClassifyLine(lines[i])
		if ln.Kind != LineFence {
			out = append(out, lines[i])
			continue
		}

		start := i + 1
		end := start
		closed := false
		for ; end < len(lines); end++ {
			if strings.TrimSpace(lines[end]) == fenceMarker {
				closed = true
				break
			}
		}
		if !closed {
			d.log.Debug("unterminated code fence", "pass", "code", "line", i+1)
		}

		body := d.Tokens.Unprotect(strings.Join(lines[start:end], "\n"))
		out = appendBlock(out, d.Tokens.Block(d.renderCode(ln.Marker, body)))
		i = end
	}
	return strings.Join(out, "\n")
}

func (d *Document) renderCode(lang, code string) string {
	if !fenceLanguage.MatchString(lang) {
		lang = ""
	}

	var b strings.Builder
	b.WriteString(`<pre class="wiki-code"><code`)
	if lang != "" {
		b.WriteString(` class="language-` + escapeText(strings.ToLower(lang)) + `"`)
	}
	b.WriteString(`>`)

	highlighted, ok := "", false
	if d.opts.Highlight && lang != "" {
		highlighted, ok = highlight(lang, code)
	}
	if ok {
		b.WriteString(highlighted)
	} else {
		b.WriteString(escapeText(code))
	}

	b.WriteString(`</code></pre>`)
	return b.String()
}

// highlight tokenises code with the lexer registered for lang. It reports
// false for unknown languages or formatter failures.
func highlight(lang, code string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := codeFormatter.Format(&buf, styles.Fallback, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

// WriteHighlightCSS writes the stylesheet for highlighted code blocks in the
// named chroma style. Unknown names fall back to the default style.
func WriteHighlightCSS(w io.Writer, style string) error {
	return codeFormatter.WriteCSS(w, styles.Get(style))
}
