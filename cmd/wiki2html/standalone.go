package main

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	wiki2html "github.com/alnah/go-wiki2html"
	"github.com/alnah/go-wiki2html/internal/assets"
)

// pageLang is the lang attribute of standalone pages.
const pageLang = "ko"

// pageData is the data passed to the page layout.
type pageData struct {
	Lang    string
	Title   string
	Version string
	Date    string
	CSS     template.CSS
	Body    template.HTML
}

// pageRenderer wraps compiled fragments in the page layout.
// It is read-only after construction and shared by all workers.
type pageRenderer struct {
	layout *template.Template
	css    template.CSS
	title  string // fixed title, empty = per document
	date   string // footer date, empty = no footer
}

// newPageRenderer loads the page style and layout through loader. When
// highlightCSS is non-nil its stylesheet is appended to the page style.
func newPageRenderer(loader assets.AssetLoader, style, title string, highlightCSS func(io.Writer) error) (*pageRenderer, error) {
	if style == "" {
		style = assets.DefaultStyleName
	}
	css, err := loader.LoadStyle(style)
	if err != nil {
		return nil, fmt.Errorf("loading page style: %w", err)
	}

	src, err := loader.LoadLayout(assets.DefaultLayoutName)
	if err != nil {
		return nil, fmt.Errorf("loading page layout: %w", err)
	}
	layout, err := template.New(assets.DefaultLayoutName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing page layout: %w", err)
	}

	var b strings.Builder
	b.WriteString(css)
	if highlightCSS != nil {
		b.WriteString("\n")
		if err := highlightCSS(&b); err != nil {
			return nil, err
		}
	}

	return &pageRenderer{
		layout: layout,
		css:    template.CSS(b.String()), // #nosec G203 -- stylesheet from embedded or configured assets
		title:  title,
	}, nil
}

// Render returns body wrapped in a complete HTML document.
// body must already be sanitized when sanitization is enabled.
func (r *pageRenderer) Render(title, body string) (string, error) {
	var b strings.Builder
	err := r.layout.Execute(&b, pageData{
		Lang:    pageLang,
		Title:   title,
		Version: Version,
		Date:    r.date,
		CSS:     r.css,
		Body:    template.HTML(body), // #nosec G203 -- compiler output, sanitized upstream unless disabled
	})
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return b.String(), nil
}

// pageTitle picks the page title: the fixed title if set, then the first
// heading, then the file name without extension.
func (r *pageRenderer) pageTitle(result *wiki2html.Result, inputPath string) string {
	if r.title != "" {
		return r.title
	}
	if len(result.Headings) > 0 && result.Headings[0].Text != "" {
		return result.Headings[0].Text
	}
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
