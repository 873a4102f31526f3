// Package pipeline implements the wiki-syntax to HTML compilation pipeline.
//
// One compile runs these stages over an explicit Document value:
//   - Protection: literal blocks and backslash escapes become placeholder tokens
//   - Redirect detection: a leading #redirect line short-circuits everything
//   - Block passes: folding, code, headings, tables, lists, blockquotes, rules
//   - Inline passes: escaping, markers, links and files, templates, formatting
//   - Footnote resolution and paragraph wrapping
//   - Restoration: content tokens first, then the TOC and footnote list
//
// Every piece of generated markup is held behind a placeholder token until
// restoration, so later passes only ever see user text. Placeholders use
// Unicode Private Use Area delimiters plus a per-compile random nonce.
//
// Nothing in this package performs I/O. Template bodies come from a
// caller-supplied TemplateLookup.
package pipeline
