package pipeline

import "strings"

// htmlWriter interleaves generated tags with user text. Consecutive tags are
// buffered and flushed as one block token whenever text is written, so the
// output holds no raw markup for later passes to trip over.
type htmlWriter struct {
	tokens *Tokens
	out    strings.Builder
	tags   strings.Builder
}

func newHTMLWriter(t *Tokens) *htmlWriter {
	return &htmlWriter{tokens: t}
}

func (w *htmlWriter) tag(s string) {
	w.tags.WriteString(s)
}

func (w *htmlWriter) text(s string) {
	w.flush()
	w.out.WriteString(s)
}

func (w *htmlWriter) flush() {
	if w.tags.Len() == 0 {
		return
	}
	w.out.WriteString(w.tokens.Block(w.tags.String()))
	w.tags.Reset()
}

// String flushes pending tags and returns the tokenized output.
func (w *htmlWriter) String() string {
	w.flush()
	return w.out.String()
}

// appendBlock adds a rendered construct to out as its own blank-line
// delimited block.
func appendBlock(out []string, block string) []string {
	if n := len(out); n > 0 && strings.TrimSpace(out[n-1]) != "" {
		out = append(out, "")
	}
	return append(out, block, "")
}
