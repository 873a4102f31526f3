package pipeline

import (
	"bytes"
	"strings"
	"testing"
)

func TestCodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "language class",
			src:  "```go\nx := 1\n```",
			want: `<pre class="wiki-code"><code class="language-go">x := 1</code></pre>`,
		},
		{
			name: "no language",
			src:  "```\nplain\n```",
			want: `<pre class="wiki-code"><code>plain</code></pre>`,
		},
		{
			name: "body is escaped",
			src:  "```\na < b && c\n```",
			want: `<pre class="wiki-code"><code>a &lt; b &amp;&amp; c</code></pre>`,
		},
		{
			name: "markup inside is literal",
			src:  "```\n'''bold''' [[link]] == h ==\n```",
			want: `<pre class="wiki-code"><code>'''bold''' [[link]] == h ==</code></pre>`,
		},
		{
			name: "escapes inside keep their backslash",
			src:  "```\n\\[x\\]\n```",
			want: `<pre class="wiki-code"><code>\[x\]</code></pre>`,
		},
		{
			name: "unterminated runs to end",
			src:  "```\nline one\n\nline two",
			want: `<pre class="wiki-code"><code>line one` + "\n\n" + `line two</code></pre>`,
		},
		{
			name: "invalid language dropped",
			src:  "```bad lang!\nx\n```",
			want: `<pre class="wiki-code"><code>x</code></pre>`,
		},
		{
			name: "language lowercased",
			src:  "```Python\nx\n```",
			want: `<pre class="wiki-code"><code class="language-python">x</code></pre>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := render(t, tt.src); got != tt.want {
				t.Errorf("HTML =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestCodeBlocks_Highlight(t *testing.T) {
	t.Parallel()

	opts := Options{Highlight: true}

	t.Run("known language", func(t *testing.T) {
		t.Parallel()

		got := renderWith(t, "```go\nfunc main() {}\n```", opts)
		if !strings.HasPrefix(got, `<pre class="wiki-code"><code class="language-go">`) {
			t.Errorf("missing code wrapper:\n%s", got)
		}
		if !strings.Contains(got, `<span class="`) {
			t.Errorf("expected highlighted spans:\n%s", got)
		}
		if n := strings.Count(got, "<pre"); n != 1 {
			t.Errorf("<pre> count = %d, want 1", n)
		}
	})

	t.Run("unknown language falls back", func(t *testing.T) {
		t.Parallel()

		got := renderWith(t, "```nosuchlanguage\na < b\n```", opts)
		want := `<pre class="wiki-code"><code class="language-nosuchlanguage">a &lt; b</code></pre>`
		if got != want {
			t.Errorf("HTML = %q, want %q", got, want)
		}
	})
}

func TestWriteHighlightCSS(t *testing.T) {
	t.Parallel()

	for _, style := range []string{"github", "monokai", "no-such-style"} {
		var buf bytes.Buffer
		if err := WriteHighlightCSS(&buf, style); err != nil {
			t.Fatalf("WriteHighlightCSS(%q) error = %v", style, err)
		}
		if !strings.Contains(buf.String(), ".chroma") {
			t.Errorf("WriteHighlightCSS(%q) missing .chroma rules", style)
		}
	}
}
