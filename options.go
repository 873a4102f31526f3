package wiki2html

import "log/slog"

// Option configures a Compiler.
type Option func(*Compiler)

// WithLinkBase sets the URL prefix for internal page links.
// The default is "/wiki/v/".
func WithLinkBase(base string) Option {
	return func(c *Compiler) {
		c.linkBase = base
	}
}

// WithFileBase sets the URL prefix for embedded files.
// The default is "/file/".
func WithFileBase(base string) Option {
	return func(c *Compiler) {
		c.fileBase = base
	}
}

// WithTOCTitle sets the heading shown above the table of contents.
func WithTOCTitle(title string) Option {
	return func(c *Compiler) {
		c.tocTitle = title
	}
}

// WithTemplates sets the source of template bodies. Without one, every
// template call renders as missing.
func WithTemplates(lookup TemplateLookup) Option {
	return func(c *Compiler) {
		c.templates = lookup
	}
}

// WithMaxTemplateDepth limits how deeply templates may include each other.
// Panics if depth < 1 (programmer error).
func WithMaxTemplateDepth(depth int) Option {
	if depth < 1 {
		panic("wiki2html: WithMaxTemplateDepth depth must be positive")
	}
	return func(c *Compiler) {
		c.maxTemplateDepth = depth
	}
}

// WithHighlighting enables syntax highlighting of fenced code blocks that
// name a known language. Highlighted blocks use chroma CSS classes; see
// Compiler.WriteHighlightCSS.
func WithHighlighting(enabled bool) Option {
	return func(c *Compiler) {
		c.highlight = enabled
	}
}

// WithHighlightStyle selects the chroma style written by WriteHighlightCSS.
// Unknown names fall back to chroma's default style.
func WithHighlightStyle(style string) Option {
	return func(c *Compiler) {
		c.highlightStyle = style
	}
}

// WithMaxInputSize sets the largest source, in bytes, Compile accepts.
// Panics if n < 1 (programmer error).
func WithMaxInputSize(n int) Option {
	if n < 1 {
		panic("wiki2html: WithMaxInputSize size must be positive")
	}
	return func(c *Compiler) {
		c.maxInputSize = n
	}
}

// WithLogger sets the logger for compile diagnostics. Recoverable problems
// (unclosed constructs, missing templates) are logged at debug level.
// Logging is discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}
