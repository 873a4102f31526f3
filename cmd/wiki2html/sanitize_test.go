package main

import (
	"strings"
	"testing"
)

func TestNewSanitizer(t *testing.T) {
	t.Parallel()

	p := newSanitizer()

	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "heading ids in any script",
			input: `<h2 id="개요">개요</h2>`,
			want:  []string{`<h2 id="개요">개요</h2>`},
		},
		{
			name:  "wiki classes",
			input: `<div class="wiki-toc" id="wiki-toc"><p class="wiki-toc-title">목차</p></div>`,
			want:  []string{`class="wiki-toc"`, `id="wiki-toc"`, `class="wiki-toc-title"`},
		},
		{
			name:  "folding blocks",
			input: `<details class="wiki-fold"><summary>more</summary><p>x</p></details>`,
			want:  []string{"<details", "<summary>more</summary>"},
		},
		{
			name:    "text color",
			input:   `<span class="wiki-color" style="color: red">r</span><span style="color: expression(x)">x</span>`,
			want:    []string{"color: red"},
			notWant: []string{"expression"},
		},
		{
			name:  "table cell attributes",
			input: `<table><tr><td style="text-align: center" colspan="2">c</td></tr></table>`,
			want:  []string{"text-align: center", `colspan="2"`},
		},
		{
			name:  "ordered list type",
			input: `<ol type="a" start="3"><li>x</li></ol>`,
			want:  []string{`type="a"`, `start="3"`},
		},
		{
			name:    "scripts and handlers",
			input:   `<p onclick="steal()">x</p><script>alert(1)</script>`,
			want:    []string{"<p>x</p>"},
			notWant: []string{"onclick", "<script", "alert"},
		},
		{
			name:    "javascript links",
			input:   `<a class="wiki-link-external" href="javascript:alert(1)">x</a>`,
			notWant: []string{"javascript:"},
		},
		{
			name:  "highlighted code",
			input: `<pre class="wiki-code chroma"><code class="language-go"><span class="kd">func</span></code></pre>`,
			want:  []string{`class="language-go"`, `<span class="kd">func</span>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.Sanitize(tt.input)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Sanitize() = %q, want containing %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("Sanitize() = %q, should not contain %q", got, nw)
				}
			}
		})
	}
}
