package pipeline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// pass is one whole-document transformation.
type pass func(d *Document, text string) string

// blockPasses lists the block passes in their load-bearing order: code must
// be shielded before headings, and headings before tables and lists.
// A package variable would form an initialization cycle, since templates
// recurse into the pass lists.
func blockPasses() []pass {
	return []pass{
		foldSections,
		codeBlocks,
		headings,
		tables,
		lists,
		blockquotes,
		horizontalRules,
	}
}

// inlinePasses run after every block pass. Formatting comes last so that
// brackets produced by links and templates are never reinterpreted.
func inlinePasses() []pass {
	return []pass{
		escapeUserText,
		plantMarkers,
		links,
		templates,
		formatting,
	}
}

func (d *Document) apply(passes []pass) {
	for _, run := range passes {
		d.Text = run(d, d.Text)
	}
}

// Run compiles one wiki document to HTML. A redirect directive on the first
// non-empty line short-circuits every other stage.
func Run(src string, opts Options) Output {
	opts = opts.withDefaults()
	text := Normalize(src)

	if target, ok := DetectRedirect(text); ok {
		opts.Logger.Debug("redirect document", "target", target)
		return Output{HTML: redirectHTML(target, opts.LinkBase), Redirect: target}
	}

	d := NewDocument(text, opts)
	d.Text = d.Tokens.Protect(d.Text)
	d.apply(blockPasses())
	d.apply(inlinePasses())
	d.Text = resolveFootnotes(d, d.Text)
	d.Text = wrapParagraphs(d, d.Text)
	return d.finish()
}

// compileNested runs protection and the block and inline passes over a
// template body. Footnotes, paragraphs and restoration belong to the caller.
func (d *Document) compileNested() {
	d.Text = d.Tokens.Protect(d.Text)
	d.apply(blockPasses())
	d.apply(inlinePasses())
}

// finish substitutes content tokens, then the TOC and footnote list.
func (d *Document) finish() Output {
	d.orderHeadings()
	var toc, footnotes string
	if d.Tokens.HasTOC() {
		toc = renderTOC(d.Headings, d.opts.TOCTitle)
	}
	if len(d.Footnotes) > 0 {
		footnotes = d.renderFootnotes()
	}

	out := Output{
		HTML:     d.Tokens.Finish(d.Text, toc, footnotes),
		Headings: d.Headings,
		Links:    d.Links,
		Files:    d.Files,
	}
	for _, fn := range d.Footnotes {
		fn.Body = d.Tokens.Render(fn.Body)
		out.Footnotes = append(out.Footnotes, fn)
	}
	return out
}

// orderHeadings puts headings into document order. Template bodies add
// their headings after the caller's own, so the list is sorted by where
// each heading lands in the rendered output and renumbered.
func (d *Document) orderHeadings() {
	rendered := d.Tokens.Render(d.Text)
	pos := func(h Heading) int {
		i := strings.Index(rendered, fmt.Sprintf(`<h%d id="%s">`, h.Level, escapeText(h.ID)))
		if i < 0 {
			return len(rendered)
		}
		return i
	}
	slices.SortStableFunc(d.Headings, func(a, b Heading) int {
		return cmp.Compare(pos(a), pos(b))
	})
	for i := range d.Headings {
		d.Headings[i].Index = i
	}
}
