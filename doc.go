// Package wiki2html compiles wiki-syntax documents to HTML fragments.
//
// # Quick Start
//
// Create a compiler once and reuse it; it is safe for concurrent use:
//
//	c := wiki2html.NewCompiler()
//	result, err := c.Compile("== Intro ==\n\nSee [[Other Page|the other page]].\n\n[목차]")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// The output is not sanitized. Run it through an HTML sanitizer before
// inserting it into a page.
//
// # Compilation Pipeline
//
// Each call runs these stages over its own document state:
//
//  1. Normalization (line endings, Unicode NFC) and protection of escapes
//     and literal blocks behind placeholder tokens
//  2. Redirect detection (#redirect / #넘겨주기 on the first line stops here)
//  3. Block passes: folding, code, headings, tables, lists, quotes, rules
//  4. Inline passes: links and file embeds, templates, text formatting
//  5. Footnote resolution and paragraph wrapping
//  6. Restoration, then TOC and footnote list substitution
//
// Malformed markup never fails a compile. Unclosed constructs run to the end
// of the document or block, unknown templates render an inert span.
//
// # Configuration
//
// Use functional options to customize the compiler:
//
//	c := wiki2html.NewCompiler(
//	    wiki2html.WithLinkBase("/w/"),
//	    wiki2html.WithTemplates(wiki2html.TemplateMap{"Note": "'''Note:''' @1@"}),
//	    wiki2html.WithHighlighting(true),
//	    wiki2html.WithLogger(slog.Default()),
//	)
//
// Templates come from any TemplateLookup. TemplateMap and TemplateFunc adapt
// a map or a function.
//
// # Parallel Processing
//
// Compilation is CPU-bound and holds no shared state. ResolvePoolSize picks
// a worker count for batch jobs from GOMAXPROCS.
package wiki2html
