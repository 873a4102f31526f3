package wiki2html

import "github.com/alnah/go-wiki2html/internal/pipeline"

// Result is the outcome of one compile.
type Result struct {
	// HTML is the compiled fragment. It is not sanitized.
	HTML string

	// Redirect holds the target page when the document is a redirect.
	// HTML then contains only the redirect notice.
	Redirect string

	Headings  []Heading
	Footnotes []Footnote
	Links     []Link
	Files     []File
}

// IsRedirect reports whether the document was a redirect.
func (r *Result) IsRedirect() bool {
	return r.Redirect != ""
}

// Heading is a section heading in document order.
type Heading struct {
	Level int    // 2..6
	Text  string // plain text, markup removed
	ID    string // anchor id, unique within the document
}

// Footnote is one entry of the footnote list.
type Footnote struct {
	ID    int    // 1-based, in order of first reference
	Label string // name for named footnotes, else the ID
	Body  string // rendered HTML, empty when never defined
	Refs  int    // number of references in the text
}

// Link is a link target found in the document.
type Link struct {
	Page     string // internal page name
	Anchor   string // section anchor, without '#'
	URL      string // external URL
	External bool
}

// File is an embedded image or video.
type File struct {
	Name  string
	Video bool
}

func newResult(out pipeline.Output) *Result {
	r := &Result{
		HTML:     out.HTML,
		Redirect: out.Redirect,
	}
	for _, h := range out.Headings {
		r.Headings = append(r.Headings, Heading{Level: h.Level, Text: h.Text, ID: h.ID})
	}
	for _, fn := range out.Footnotes {
		r.Footnotes = append(r.Footnotes, Footnote{ID: fn.ID, Label: fn.Label, Body: fn.Body, Refs: len(fn.Refs)})
	}
	for _, l := range out.Links {
		r.Links = append(r.Links, Link{Page: l.Page, Anchor: l.Anchor, URL: l.URL, External: l.External})
	}
	for _, f := range out.Files {
		r.Files = append(r.Files, File{Name: f.Name, Video: f.Video})
	}
	return r
}
