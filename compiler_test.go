package wiki2html

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestCompiler_Compile(t *testing.T) {
	t.Parallel()

	c := NewCompiler()
	result, err := c.Compile("== Title ==\n\n[[Other Page|link text]]\n\n[목차]")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := `<h2 id="title">Title</h2>` + "\n" +
		`<p><a class="wiki-link-internal" href="/wiki/v/Other%20Page">link text</a></p>` + "\n" +
		`<div class="wiki-toc" id="wiki-toc"><div class="wiki-toc-title">목차</div>` +
		`<ul><li><a href="#title"><span class="wiki-toc-number">1.</span> Title</a></li></ul></div>`
	if result.HTML != want {
		t.Errorf("HTML =\n%s\nwant\n%s", result.HTML, want)
	}
	if result.IsRedirect() {
		t.Error("IsRedirect() = true, want false")
	}
	if len(result.Headings) != 1 || result.Headings[0] != (Heading{Level: 2, Text: "Title", ID: "title"}) {
		t.Errorf("Headings = %+v", result.Headings)
	}
	if len(result.Links) != 1 || result.Links[0] != (Link{Page: "Other Page"}) {
		t.Errorf("Links = %+v", result.Links)
	}
}

func TestCompiler_CompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		src     string
		wantErr error
	}{
		{
			name:    "invalid UTF-8",
			src:     "bad \xff byte",
			wantErr: ErrInvalidUTF8,
		},
		{
			name:    "too large",
			opts:    []Option{WithMaxInputSize(4)},
			src:     "12345",
			wantErr: ErrInputTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := NewCompiler(tt.opts...).Compile(tt.src)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Compile() error = %v, want %v", err, tt.wantErr)
			}
			if result != nil {
				t.Errorf("Compile() result = %+v, want nil", result)
			}
		})
	}
}

func TestCompiler_MalformedInputNeverFails(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"[[",
		"]]",
		"[[|]]",
		"{{{",
		"}}}",
		"```",
		"{{{#!folding",
		"||",
		"||||",
		"[*",
		"[* unclosed [nested",
		"{{틀:}}",
		"{{include }}",
		"== ==",
		"'''''",
		"> ",
		" 1.",
		"\\",
		"\uE000\uE001",
		"[목차][목차][각주][각주]",
	}

	c := NewCompiler()
	for _, src := range inputs {
		if _, err := c.Compile(src); err != nil {
			t.Errorf("Compile(%q) error = %v", src, err)
		}
	}
}

func TestCompiler_CompileBytes(t *testing.T) {
	t.Parallel()

	result, err := NewCompiler().CompileBytes([]byte("'''b'''"))
	if err != nil {
		t.Fatalf("CompileBytes() error = %v", err)
	}
	if result.HTML != "<p><strong>b</strong></p>" {
		t.Errorf("HTML = %q", result.HTML)
	}
}

func TestCompiler_Redirect(t *testing.T) {
	t.Parallel()

	result, err := NewCompiler(WithLinkBase("/w/")).Compile("#넘겨주기 [[대문]]")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !result.IsRedirect() || result.Redirect != "대문" {
		t.Errorf("Redirect = %q, want 대문", result.Redirect)
	}
	if !strings.Contains(result.HTML, `href="/w/%EB%8C%80%EB%AC%B8"`) {
		t.Errorf("HTML = %q", result.HTML)
	}
}

func TestCompiler_Footnotes(t *testing.T) {
	t.Parallel()

	result, err := NewCompiler().Compile("a[*A '''x'''] b[*A]")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := []Footnote{{ID: 1, Label: "A", Body: "<strong>x</strong>", Refs: 2}}
	if len(result.Footnotes) != 1 || result.Footnotes[0] != want[0] {
		t.Errorf("Footnotes = %+v, want %+v", result.Footnotes, want)
	}
}

func TestCompiler_ConcurrentUse(t *testing.T) {
	t.Parallel()

	c := NewCompiler(WithTemplates(TemplateMap{"T": "''@1@''"}))
	const goroutines = 16

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := c.Compile("== H ==\n{{틀:T|x}}[* n]\n\n[목차]")
			if err != nil {
				errs <- err
				return
			}
			if !strings.Contains(result.HTML, "<em>x</em>") {
				errs <- errors.New("missing template output")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestCompiler_WriteHighlightCSS(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := NewCompiler(WithHighlightStyle("monokai")).WriteHighlightCSS(&buf); err != nil {
		t.Fatalf("WriteHighlightCSS() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("WriteHighlightCSS() wrote nothing")
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	got, err := Render("hello")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "<p>hello</p>" {
		t.Errorf("Render() = %q", got)
	}

	if _, err := Render("\xff"); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("Render(invalid) error = %v, want ErrInvalidUTF8", err)
	}
}
