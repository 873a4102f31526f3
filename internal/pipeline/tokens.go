package pipeline

import (
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Placeholder delimiters use Unicode Private Use Area characters.
// Between them sit the per-compile nonce, a kind letter and an index.
const (
	tokenOpen  = "\uE000" // U+E000: Private Use Area start
	tokenClose = "\uE001" // U+E001: Private Use Area end
)

// literalDelimLen is the byte length of both "{{{[[" and "]]}}}".
const literalDelimLen = 5

type tokenKind byte

const (
	kindEscape   tokenKind = 'e' // one backslash-escaped character
	kindLiteral  tokenKind = 'l' // {{{[[ ... ]]}}} block
	kindInline   tokenKind = 'i' // generated inline markup
	kindBlock    tokenKind = 'b' // generated block-level markup
	kindTOC      tokenKind = 't' // table of contents placement
	kindFootnote tokenKind = 'f' // footnote list placement
)

// Precompiled protection patterns.
var (
	// {{{[[ literal ]]}}}, shortest match, may span lines
	literalBlockPattern = regexp.MustCompile(`(?s)\{\{\{\[\[(.*?)\]\]\}\}\}`)

	// Backslash followed by one character of the escapable set
	escapePattern = regexp.MustCompile("\\\\([\\\\\\[\\]{}|#`*_\\-~=<>:()!^,])")
)

// protected is the payload bound to one token.
type protected struct {
	kind        tokenKind
	source      string // exact source text the token replaced
	html        string // final rendering
	transcluded bool   // compiled template body, still open to footnotes
}

// Tokens is the placeholder table of one compile. Nested template documents
// share their parent's table so every token is restored in a single place.
type Tokens struct {
	nonce    string
	items    []protected
	toc      string
	footnote string
}

// NewTokens returns an empty table whose nonce does not occur in src.
func NewTokens(src string) *Tokens {
	t := &Tokens{}
	for {
		t.nonce = newNonce()
		if !strings.Contains(src, t.nonce) {
			return t
		}
	}
}

func newNonce() string {
	id := uuid.New()
	return hex.EncodeToString(id[:6])
}

func (t *Tokens) prefix() string {
	return tokenOpen + t.nonce
}

func (t *Tokens) add(kind tokenKind, source, html string) string {
	t.items = append(t.items, protected{kind: kind, source: source, html: html})
	return t.prefix() + string(kind) + strconv.Itoa(len(t.items)-1) + tokenClose
}

// Protect shields literal blocks, then backslash escapes. A backslash before
// a character outside the escapable set is left alone. An escaped opener
// (\{{{[[) is not a literal block: the escape applies to its first brace.
func (t *Tokens) Protect(text string) string {
	var b strings.Builder
	last := 0
	for _, m := range literalBlockPattern.FindAllStringIndex(text, -1) {
		if escapedAt(text, m[0]) {
			continue
		}
		whole := text[m[0]:m[1]]
		body := whole[literalDelimLen : len(whole)-literalDelimLen]
		b.WriteString(text[last:m[0]])
		b.WriteString(t.add(kindLiteral, whole, "<code>"+escapeText(body)+"</code>"))
		last = m[1]
	}
	b.WriteString(text[last:])

	return escapePattern.ReplaceAllStringFunc(b.String(), func(m string) string {
		return t.add(kindEscape, m, escapeText(m[1:]))
	})
}

// escapedAt reports whether text[i] follows an odd run of backslashes.
func escapedAt(text string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// Inline holds generated inline markup behind a token.
func (t *Tokens) Inline(html string) string {
	return t.add(kindInline, html, html)
}

// Block holds generated block-level markup behind a token.
func (t *Tokens) Block(html string) string {
	return t.add(kindBlock, html, html)
}

// Transcluded holds a compiled template body behind an inline or block
// token. Footnotes inside it are resolved later, in document order, through
// eachTranscluded.
func (t *Tokens) Transcluded(html string, block bool) string {
	kind := kindInline
	if block {
		kind = kindBlock
	}
	tok := t.add(kind, html, html)
	t.items[len(t.items)-1].transcluded = true
	return tok
}

// eachTranscluded rewrites the payload of every transcluded token in s, in
// order of appearance. s itself is unchanged.
func (t *Tokens) eachTranscluded(s string, fn func(payload string) string) {
	p := t.prefix()
	for {
		i := strings.Index(s, p)
		if i < 0 {
			return
		}
		j := strings.Index(s[i:], tokenClose)
		if j < 0 {
			return
		}
		if idx, ok := t.index(s[i+len(p) : i+j]); ok && t.items[idx].transcluded {
			item := &t.items[idx]
			item.html = fn(item.html)
			item.source = item.html
		}
		s = s[i+j+len(tokenClose):]
	}
}

// Marker returns the structural token for the first TOC or footnote marker.
// Later markers of the same kind come back as tokens for their literal text.
func (t *Tokens) Marker(kind tokenKind, text string) string {
	slot := &t.toc
	if kind == kindFootnote {
		slot = &t.footnote
	}
	if *slot != "" {
		return t.Inline(escapeText(text))
	}
	*slot = t.add(kind, text, "")
	return *slot
}

// HasTOC reports whether a TOC marker was planted.
func (t *Tokens) HasTOC() bool {
	return t.toc != ""
}

// EnsureFootnoteMarker plants the footnote placement token if no marker was
// seen and returns the text to append to the document ("" otherwise).
func (t *Tokens) EnsureFootnoteMarker() string {
	if t.footnote != "" {
		return ""
	}
	t.footnote = t.add(kindFootnote, "", "")
	return "\n\n" + t.footnote
}

// Unprotect restores the exact source text of every token in s.
func (t *Tokens) Unprotect(s string) string {
	return t.expand(s, func(tokenKind) bool { return true }, func(p protected) string {
		return p.source
	})
}

// Plain restores escapes and literal blocks as raw characters and drops
// generated markup. Used to derive heading text and anchors.
func (t *Tokens) Plain(s string) string {
	return t.expand(s, func(tokenKind) bool { return true }, func(p protected) string {
		switch p.kind {
		case kindEscape:
			return p.source[1:]
		case kindLiteral:
			return p.source[literalDelimLen : len(p.source)-literalDelimLen]
		default:
			return ""
		}
	})
}

// Render replaces content tokens with their HTML: generated markup first
// (repeatedly, since payloads nest), then literal blocks, then escapes.
// Structural tokens are left in place for Finish.
func (t *Tokens) Render(s string) string {
	s = t.expand(s, isMarkup, renderHTML)
	s = t.expand(s, isKind(kindLiteral), renderHTML)
	return t.expand(s, isKind(kindEscape), renderHTML)
}

// Finish renders s and substitutes the TOC and footnote list fragments.
// An empty fragment removes its marker.
func (t *Tokens) Finish(s, toc, footnotes string) string {
	s = t.Render(s)
	if t.toc != "" {
		s = strings.Replace(s, t.toc, t.Render(toc), 1)
	}
	if t.footnote != "" {
		s = strings.Replace(s, t.footnote, t.Render(footnotes), 1)
	}
	return s
}

// IsBlockStart reports whether s begins with block-level or structural
// markup, ignoring leading spaces.
func (t *Tokens) IsBlockStart(s string) bool {
	s = strings.TrimLeft(s, " \t")
	p := t.prefix()
	if !strings.HasPrefix(s, p) || len(s) <= len(p) {
		return false
	}
	return isBoundary(tokenKind(s[len(p)]))
}

// HasBoundary reports whether s contains block-level or structural markup.
func (t *Tokens) HasBoundary(s string) bool {
	return len(t.segments(s)) > 1
}

// isBoundary reports kinds that start or end a block.
func isBoundary(k tokenKind) bool {
	return k == kindBlock || k == kindTOC || k == kindFootnote
}

func isMarkup(k tokenKind) bool { return k == kindInline || k == kindBlock }

func isKind(want tokenKind) func(tokenKind) bool {
	return func(k tokenKind) bool { return k == want }
}

func renderHTML(p protected) string { return p.html }

// expand replaces every token of a wanted kind using value. Substituted text
// is expanded again, so tokens nested inside payloads are resolved as well.
// No payload references itself, directly or through other payloads, which
// bounds the recursion.
func (t *Tokens) expand(s string, want func(tokenKind) bool, value func(protected) string) string {
	p := t.prefix()
	if !strings.Contains(s, p) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.Index(s, p)
		if i < 0 {
			break
		}
		j := strings.Index(s[i:], tokenClose)
		if j < 0 {
			break
		}
		end := i + j + len(tokenClose)
		item, ok := t.lookup(s[i+len(p) : i+j])
		if !ok || !want(item.kind) {
			b.WriteString(s[:end])
			s = s[end:]
			continue
		}
		b.WriteString(s[:i])
		b.WriteString(t.expand(value(item), want, value))
		s = s[end:]
	}
	b.WriteString(s)
	return b.String()
}

// lookup parses "<kind><index>" and returns the matching payload.
func (t *Tokens) lookup(body string) (protected, bool) {
	idx, ok := t.index(body)
	if !ok {
		return protected{}, false
	}
	return t.items[idx], true
}

// index parses "<kind><index>" and returns the table position.
func (t *Tokens) index(body string) (int, bool) {
	if len(body) < 2 {
		return 0, false
	}
	idx, err := strconv.Atoi(body[1:])
	if err != nil || idx < 0 || idx >= len(t.items) {
		return 0, false
	}
	if t.items[idx].kind != tokenKind(body[0]) {
		return 0, false
	}
	return idx, true
}

// segments splits s around block-level and structural tokens. Even
// indexes hold the text runs (possibly empty), odd indexes the tokens.
func (t *Tokens) segments(s string) []string {
	return t.splitAt(s, func(p protected) bool { return isBoundary(p.kind) })
}

// standalone splits s like segments, but only around tokens that stand for
// a whole block: structural markers and block-level template bodies.
func (t *Tokens) standalone(s string) []string {
	return t.splitAt(s, func(p protected) bool {
		return p.kind == kindTOC || p.kind == kindFootnote || (p.kind == kindBlock && p.transcluded)
	})
}

func (t *Tokens) splitAt(s string, at func(protected) bool) []string {
	p := t.prefix()
	var parts []string
	run := 0 // start of the current text run
	for i := 0; ; {
		k := strings.Index(s[i:], p)
		if k < 0 {
			break
		}
		start := i + k
		j := strings.Index(s[start:], tokenClose)
		if j < 0 {
			break
		}
		end := start + j + len(tokenClose)
		item, ok := t.lookup(s[start+len(p) : start+j])
		if ok && at(item) {
			parts = append(parts, s[run:start], s[start:end])
			run = end
		}
		i = end
	}
	return append(parts, s[run:])
}

// mapText applies fn to every run of text between block-level and
// structural tokens, leaving those tokens in place.
func (t *Tokens) mapText(s string, fn func(string) string) string {
	parts := t.segments(s)
	for i := 0; i < len(parts); i += 2 {
		parts[i] = fn(parts[i])
	}
	return strings.Join(parts, "")
}
