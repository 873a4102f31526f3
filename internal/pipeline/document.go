package pipeline

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shurcooL/sanitized_anchor_name"
)

// Defaults applied by Options when a field is left empty.
const (
	DefaultLinkBase         = "/wiki/v/"
	DefaultFileBase         = "/file/"
	DefaultTOCTitle         = "목차"
	DefaultMaxTemplateDepth = 3
)

// Reserved anchor ids.
const (
	tocAnchor         = "wiki-toc"
	fallbackAnchor    = "section"
	footnoteAnchor    = "wiki-fn-"  // + footnote id
	footnoteRefAnchor = "wiki-rfn-" // + footnote id, "-", reference number
)

// TemplateLookup resolves a template name to its wiki-syntax body.
type TemplateLookup interface {
	Template(name string) (string, error)
}

// Options configures one compile.
type Options struct {
	LinkBase         string
	FileBase         string
	TOCTitle         string
	Templates        TemplateLookup // nil renders every template as missing
	MaxTemplateDepth int
	Highlight        bool
	Logger           *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.LinkBase == "" {
		o.LinkBase = DefaultLinkBase
	}
	if o.FileBase == "" {
		o.FileBase = DefaultFileBase
	}
	if o.TOCTitle == "" {
		o.TOCTitle = DefaultTOCTitle
	}
	if o.MaxTemplateDepth <= 0 {
		o.MaxTemplateDepth = DefaultMaxTemplateDepth
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Heading is one collected heading in document order.
type Heading struct {
	Level int
	Text  string // plain text
	ID    string // anchor id
	Index int
}

// Footnote is one collected footnote. Body holds rendered HTML once the
// compile finishes.
type Footnote struct {
	ID    int
	Label string
	Body  string
	Refs  []string // back-reference anchor ids, one per reference
}

// Link is an internal or external link target found in the document.
type Link struct {
	Page     string
	Anchor   string
	URL      string // set for external links
	External bool
}

// File is an embedded file reference.
type File struct {
	Name  string
	Video bool
}

// Output is the result of Run.
type Output struct {
	HTML      string
	Redirect  string
	Headings  []Heading
	Footnotes []Footnote
	Links     []Link
	Files     []File
}

// Document is the in-progress state threaded through every pass of one
// compile: the working text, the shared token table and the side lists.
type Document struct {
	Text      string
	Tokens    *Tokens
	Headings  []Heading
	Footnotes []Footnote
	Links     []Link
	Files     []File

	opts    Options
	log     *slog.Logger
	depth   int             // template nesting depth, 0 for the page itself
	anchors map[string]bool // shared with nested documents
}

// NewDocument prepares a top-level document for text that has already been
// normalized.
func NewDocument(text string, opts Options) *Document {
	opts = opts.withDefaults()
	return &Document{
		Text:    text,
		Tokens:  NewTokens(text),
		opts:    opts,
		log:     opts.Logger,
		anchors: map[string]bool{tocAnchor: true},
	}
}

// child returns a nested document for a template body. It shares the token
// table and anchor set but keeps its own side lists.
func (d *Document) child(text string) *Document {
	return &Document{
		Text:    text,
		Tokens:  d.Tokens,
		opts:    d.opts,
		log:     d.log,
		depth:   d.depth + 1,
		anchors: d.anchors,
	}
}

// anchor derives a unique id from heading text. Collisions get -1, -2, ...
// Ids in the footnote namespaces are moved under the fallback prefix.
func (d *Document) anchor(text string) string {
	base := sanitized_anchor_name.Create(text)
	switch {
	case base == "":
		base = fallbackAnchor
	case strings.HasPrefix(base, footnoteAnchor), strings.HasPrefix(base, footnoteRefAnchor):
		base = fallbackAnchor + "-" + base
	}
	id := base
	for n := 1; d.anchors[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	d.anchors[id] = true
	return id
}
