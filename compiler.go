package wiki2html

import (
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/alnah/go-wiki2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ TemplateLookup          = TemplateMap(nil)
	_ TemplateLookup          = TemplateFunc(nil)
	_ pipeline.TemplateLookup = TemplateLookup(nil)
)

// DefaultMaxInputSize bounds the source accepted by Compile.
const DefaultMaxInputSize = 2 << 20

// DefaultHighlightStyle is the chroma style used by WriteHighlightCSS.
const DefaultHighlightStyle = "github"

// Compiler turns wiki source into HTML fragments.
// A Compiler holds only configuration and is safe for concurrent use.
type Compiler struct {
	linkBase         string
	fileBase         string
	tocTitle         string
	templates        TemplateLookup
	maxTemplateDepth int
	highlight        bool
	highlightStyle   string
	maxInputSize     int
	logger           *slog.Logger
}

// NewCompiler creates a Compiler with default configuration.
// Use options to customize behavior (e.g., WithLinkBase, WithTemplates).
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		linkBase:         pipeline.DefaultLinkBase,
		fileBase:         pipeline.DefaultFileBase,
		tocTitle:         pipeline.DefaultTOCTitle,
		maxTemplateDepth: pipeline.DefaultMaxTemplateDepth,
		highlightStyle:   DefaultHighlightStyle,
		maxInputSize:     DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile converts one document. It only fails on input it refuses to read:
// invalid UTF-8 or a source larger than the configured limit. Malformed
// markup always compiles.
func (c *Compiler) Compile(src string) (result *Result, err error) {
	if len(src) > c.maxInputSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInputTooLarge, len(src), c.maxInputSize)
	}
	if !utf8.ValidString(src) {
		return nil, ErrInvalidUTF8
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	out := pipeline.Run(src, c.pipelineOptions())
	return newResult(out), nil
}

// CompileBytes is Compile for byte input.
func (c *Compiler) CompileBytes(src []byte) (*Result, error) {
	return c.Compile(string(src))
}

// WriteHighlightCSS writes the stylesheet matching highlighted code blocks
// in the compiler's highlight style.
func (c *Compiler) WriteHighlightCSS(w io.Writer) error {
	if err := pipeline.WriteHighlightCSS(w, c.highlightStyle); err != nil {
		return fmt.Errorf("writing highlight CSS: %w", err)
	}
	return nil
}

func (c *Compiler) pipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		LinkBase:         c.linkBase,
		FileBase:         c.fileBase,
		TOCTitle:         c.tocTitle,
		MaxTemplateDepth: c.maxTemplateDepth,
		Highlight:        c.highlight,
		Logger:           c.logger,
	}
	if c.templates != nil {
		opts.Templates = c.templates
	}
	return opts
}

// defaultCompiler serves Render.
var defaultCompiler = NewCompiler()

// Render compiles src with the default configuration and returns the HTML.
func Render(src string) (string, error) {
	result, err := defaultCompiler.Compile(src)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}
