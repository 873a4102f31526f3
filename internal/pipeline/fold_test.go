package pipeline

import (
	"strings"
	"testing"
)

func TestFoldSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		src          string
		wantContains []string
		wantExcludes []string
		wantDetails  int
	}{
		{
			name: "summary and body",
			src:  "{{{#!folding More\nhidden\n}}}",
			wantContains: []string{
				`<details class="wiki-folding"><summary>More</summary><div class="wiki-folding-body">`,
				"<p>hidden</p>",
				"</div></details>",
			},
			wantDetails: 1,
		},
		{
			name:         "default summary",
			src:          "{{{#!folding\nbody\n}}}",
			wantContains: []string{"<summary>" + defaultFoldSummary + "</summary>"},
			wantDetails:  1,
		},
		{
			name:         "summary is escaped",
			src:          "{{{#!folding <b>x</b>\nbody\n}}}",
			wantContains: []string{"<summary>&lt;b&gt;x&lt;/b&gt;</summary>"},
			wantDetails:  1,
		},
		{
			name:         "one level of nesting",
			src:          "{{{#!folding A\n{{{#!folding B\ninner\n}}}\n}}}",
			wantContains: []string{"<summary>A</summary>", "<summary>B</summary>"},
			wantDetails:  2,
		},
		{
			name:         "third level stays literal",
			src:          "{{{#!folding A\n{{{#!folding B\n{{{#!folding C\nx\n}}}\n}}}\n}}}",
			wantContains: []string{"{{{#!folding C", "<p>}}}</p>"},
			wantExcludes: []string{"<summary>C</summary>"},
			wantDetails:  2,
		},
		{
			name:         "unterminated closes at end",
			src:          "{{{#!folding Open\ntext",
			wantContains: []string{"<p>text</p>", "</div></details>"},
			wantDetails:  1,
		},
		{
			name:         "stray close stays literal",
			src:          "text\n\n}}}",
			wantContains: []string{"<p>}}}</p>"},
			wantDetails:  0,
		},
		{
			name:         "fold markers inside code are code",
			src:          "```\n{{{#!folding X\n```",
			wantContains: []string{"{{{#!folding X</code></pre>"},
			wantDetails:  0,
		},
		{
			name:         "open fence inside unterminated fold",
			src:          "{{{#!folding Src\n```\ncode\n",
			wantContains: []string{`<pre class="wiki-code"><code>code`, "</code></pre>", "</div></details>"},
			wantExcludes: []string{"&lt;/div&gt;", "```"},
			wantDetails:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := render(t, tt.src)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("output should not contain %q:\n%s", exclude, got)
				}
			}
			if n := strings.Count(got, "<details"); n != tt.wantDetails {
				t.Errorf("<details> count = %d, want %d:\n%s", n, tt.wantDetails, got)
			}
			if open, closed := strings.Count(got, "<details"), strings.Count(got, "</details>"); open != closed {
				t.Errorf("unbalanced details: %d open, %d closed", open, closed)
			}
		})
	}
}
