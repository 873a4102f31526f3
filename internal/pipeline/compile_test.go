package pipeline

// Notes:
// - Most pass tests go through Run so they exercise pass ordering as well
// - Structural checks parse the output with golang.org/x/net/html; exact
//   string comparisons are kept to small fragments whose rendering is stable

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// mapLookup serves template bodies from a map.
type mapLookup map[string]string

var errNoTemplate = errors.New("no such template")

func (m mapLookup) Template(name string) (string, error) {
	body, ok := m[name]
	if !ok {
		return "", errNoTemplate
	}
	return body, nil
}

func render(t *testing.T, src string) string {
	t.Helper()
	return Run(src, Options{}).HTML
}

func renderWith(t *testing.T, src string, opts Options) string {
	t.Helper()
	return Run(src, opts).HTML
}

// parseFragment parses compiled output as the body of an HTML document.
func parseFragment(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<!DOCTYPE html><html><body>" + s + "</body></html>"))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	return doc
}

// findAll returns every element named tag under n, in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestRun_HeadingLinkAndTOC(t *testing.T) {
	t.Parallel()

	out := Run("== Title ==\n\n[[Other Page|link text]]\n\n[목차]", Options{})

	want := `<h2 id="title">Title</h2>` + "\n" +
		`<p><a class="wiki-link-internal" href="/wiki/v/Other%20Page">link text</a></p>` + "\n" +
		`<div class="wiki-toc" id="wiki-toc"><div class="wiki-toc-title">목차</div>` +
		`<ul><li><a href="#title"><span class="wiki-toc-number">1.</span> Title</a></li></ul></div>`
	if out.HTML != want {
		t.Errorf("HTML =\n%s\nwant\n%s", out.HTML, want)
	}

	if len(out.Headings) != 1 || out.Headings[0].ID != "title" || out.Headings[0].Level != 2 {
		t.Errorf("Headings = %+v, want one level-2 heading with id title", out.Headings)
	}
	if len(out.Links) != 1 || out.Links[0].Page != "Other Page" || out.Links[0].External {
		t.Errorf("Links = %+v, want internal link to Other Page", out.Links)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "\n\n", "   \n\t\n"} {
		if got := render(t, src); got != "" {
			t.Errorf("Run(%q).HTML = %q, want empty", src, got)
		}
	}
}

func TestRun_NoPlaceholdersSurvive(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"== Intro [* heading note] ==",
		"Text with '''bold''', \\[\\[escaped\\]\\] and {{{[[literal '''x''']]}}}.[* first]",
		"",
		"||!A||!B||",
		"||[[Page]]||''cell''[*named body]||",
		"",
		" * one",
		"   * two [*named]",
		"",
		"> quoted [[https://example.com|site]]",
		"",
		"{{{#!folding More",
		"```go",
		"x := `raw`",
		"```",
		"}}}",
		"",
		"----",
		"{{틀:Missing}} [[파일:a.png|width=10]]",
		"",
		"[목차]",
		"[각주]",
	}, "\n")

	got := render(t, src)
	if strings.ContainsAny(got, tokenOpen+tokenClose) {
		t.Errorf("output still contains placeholder delimiters:\n%s", got)
	}
}

func TestRun_PrivateUseTextPassesThrough(t *testing.T) {
	t.Parallel()

	got := render(t, "a\uE000b\uE001c")
	if want := "<p>a\uE000b\uE001c</p>"; got != want {
		t.Errorf("HTML = %q, want %q", got, want)
	}
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	src := "== A ==\n[* note] [[B]] '''c'''\n\n[목차]"
	first := render(t, src)
	for range 5 {
		if got := render(t, src); got != first {
			t.Fatalf("Run() not deterministic:\n%s\nvs\n%s", got, first)
		}
	}
}

func TestRun_Structure(t *testing.T) {
	t.Parallel()

	src := "== One ==\n=== Two ===\n\n||a||b||\n||c||d||\n\n * x\n * y\n\n[목차]"
	doc := parseFragment(t, render(t, src))

	if got := len(findAll(doc, "h2")); got != 1 {
		t.Errorf("h2 count = %d, want 1", got)
	}
	if got := len(findAll(doc, "h3")); got != 1 {
		t.Errorf("h3 count = %d, want 1", got)
	}
	if got := len(findAll(doc, "td")); got != 4 {
		t.Errorf("td count = %d, want 4", got)
	}

	// TOC links resolve to heading ids
	ids := make(map[string]bool)
	for _, tag := range []string{"h2", "h3"} {
		for _, h := range findAll(doc, tag) {
			ids[attr(h, "id")] = true
		}
	}
	var tocLinks int
	for _, a := range findAll(doc, "a") {
		href := attr(a, "href")
		if !strings.HasPrefix(href, "#") {
			continue
		}
		tocLinks++
		if !ids[href[1:]] {
			t.Errorf("TOC link %q has no matching heading", href)
		}
	}
	if tocLinks != 2 {
		t.Errorf("TOC link count = %d, want 2", tocLinks)
	}

	// No paragraph wraps block-level markup
	for _, p := range findAll(doc, "p") {
		for _, tag := range []string{"table", "ul", "h2", "div"} {
			if len(findAll(p, tag)) > 0 {
				t.Errorf("<p> contains <%s>", tag)
			}
		}
	}
}

func TestRun_Options(t *testing.T) {
	t.Parallel()

	got := renderWith(t, "[[Page]] [[파일:a.png]]", Options{LinkBase: "/w/", FileBase: "/media/"})

	for _, want := range []string{`href="/w/Page"`, `src="/media/a.png"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRun_LogsRecoverableProblems(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Run("```\nunterminated\n\n{{틀:Missing}}", Options{Logger: logger})
	Run("{{틀:Missing}}", Options{Logger: logger})

	logs := buf.String()
	for _, want := range []string{"unterminated code fence", "no template lookup configured", "name=Missing"} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %q:\n%s", want, logs)
		}
	}
}
