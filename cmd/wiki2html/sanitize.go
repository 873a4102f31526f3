package main

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// wiki-* classes plus chroma token classes and language-* on code.
	classPattern = regexp.MustCompile(`^[A-Za-z0-9_ -]+$`)

	// Heading anchors keep letters in any script.
	idPattern = regexp.MustCompile(`^[\p{L}\p{N}_.:-]+$`)

	colorPattern = regexp.MustCompile(`^(?:#[0-9a-f]{3}|#[0-9a-f]{6}|[a-z]+)$`)

	alignPattern = regexp.MustCompile(`^(?:left|center|right)$`)

	sizePattern = regexp.MustCompile(`^[0-9]+(?:px|%)?$`)
)

// newSanitizer returns the policy applied to compiled fragments: bluemonday's
// user-generated content policy widened to the markup the compiler emits.
// A Policy is safe for concurrent use once built.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("class").Matching(classPattern).Globally()
	p.AllowAttrs("id").Matching(idPattern).Globally()

	p.AllowElements("details", "summary", "div", "span", "sup", "sub", "u", "del", "hr")
	p.AllowStyles("color").Matching(colorPattern).OnElements("span")
	p.AllowStyles("text-align").Matching(alignPattern).OnElements("td", "th")
	p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("td", "th")

	p.AllowAttrs("type").Matching(regexp.MustCompile(`^[1aAiI]$`)).OnElements("ol")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")

	p.AllowAttrs("width", "height").Matching(sizePattern).OnElements("img", "video")
	p.AllowAttrs("loading").Matching(regexp.MustCompile(`^(?:lazy|eager)$`)).OnElements("img")
	p.AllowElements("video")
	p.AllowAttrs("src").OnElements("video")
	p.AllowAttrs("controls").OnElements("video")

	return p
}
