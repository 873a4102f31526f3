package pipeline

import (
	"html"
	"path"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/util"
)

// Precompiled link patterns.
var (
	// [[target]] and [[target|label]] on one line
	linkPattern = regexp.MustCompile(`\[\[(.+?)\]\]`)

	// width=/height= file options: 320, 320px, 50%
	fileSizeOption = regexp.MustCompile(`^[0-9]+(?:px|%)?$`)
)

// File embed prefixes, matched case-insensitively.
var filePrefixes = []string{"파일:", "file:"}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".ogv":  true,
}

// links resolves [[...]] into internal links, external links and file
// embeds. Targets are percent-encoded; labels keep their escaped text and
// get inline formatting applied here, since the link is held behind a token.
func links(d *Document, text string) string {
	return linkPattern.ReplaceAllStringFunc(text, func(m string) string {
		target, label, hasLabel := splitLink(linkPattern.FindStringSubmatch(m)[1])

		if name, ok := fileName(target); ok {
			if strings.TrimSpace(name) == "" {
				return m
			}
			return d.Tokens.Inline(d.renderFile(name, label))
		}

		raw := strings.TrimSpace(d.Tokens.Plain(html.UnescapeString(target)))
		if raw == "" {
			return m
		}
		if !hasLabel {
			label = target
		}
		label = formatSpans(d.Tokens, label)

		if isExternal(raw) {
			d.Links = append(d.Links, Link{URL: raw, External: true})
			return d.Tokens.Inline(`<a class="wiki-link-external" href="` +
				escapeText(encodeURL(raw)) + `" rel="nofollow noopener">` + label + `</a>`)
		}

		page, anchor := splitAnchor(raw)
		d.Links = append(d.Links, Link{Page: page, Anchor: anchor})
		return d.Tokens.Inline(`<a class="wiki-link-internal" href="` +
			escapeText(internalHref(d.opts.LinkBase, page, anchor)) + `">` + label + `</a>`)
	})
}

// splitLink separates "target|label" at the first pipe.
func splitLink(inner string) (target, label string, hasLabel bool) {
	target, label, found := strings.Cut(inner, "|")
	target = strings.TrimSpace(target)
	label = strings.TrimSpace(label)
	return target, label, found && label != ""
}

// fileName reports whether target names a file embed and returns the name.
func fileName(target string) (string, bool) {
	for _, prefix := range filePrefixes {
		if len(target) >= len(prefix) && strings.EqualFold(target[:len(prefix)], prefix) {
			return target[len(prefix):], true
		}
	}
	return "", false
}

func isExternal(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// splitAnchor separates "Page#anchor" at the first '#'.
func splitAnchor(target string) (page, anchor string) {
	page, anchor, _ = strings.Cut(target, "#")
	return strings.TrimSpace(page), strings.TrimSpace(anchor)
}

// internalHref builds LinkBase + page [+ "#" + anchor]. A bare anchor links
// within the current page.
func internalHref(base, page, anchor string) string {
	href := ""
	if page != "" {
		href = base + encodeTarget(page)
	}
	if anchor != "" {
		href += "#" + encodeTarget(anchor)
	}
	return href
}

// titleEscaper encodes the characters a title may hold literally but that
// would otherwise read as URL syntax.
var titleEscaper = strings.NewReplacer("%", "%25", "?", "%3F")

// encodeTarget percent-encodes a page or file name. Titles are literal text,
// so an existing %XX sequence is encoded again.
func encodeTarget(s string) string {
	return encodeURL(titleEscaper.Replace(s))
}

// encodeURL percent-encodes characters not allowed in a URL, keeping
// existing escapes.
func encodeURL(s string) string {
	return string(util.URLEscape([]byte(s), false))
}

// renderFile builds an <img> or <video> for a file embed. Options are
// separated by '&' or '|': width=N, height=N, align=left|center|right;
// anything else becomes the alt text.
func (d *Document) renderFile(name, opts string) string {
	raw := strings.TrimSpace(d.Tokens.Plain(html.UnescapeString(name)))
	video := videoExtensions[strings.ToLower(path.Ext(raw))]
	d.Files = append(d.Files, File{Name: raw, Video: video})

	class := "wiki-file"
	alt := raw
	var attrs strings.Builder
	options := strings.FieldsFunc(d.Tokens.Plain(html.UnescapeString(opts)), func(r rune) bool {
		return r == '&' || r == '|'
	})
	for _, opt := range options {
		key, value, ok := strings.Cut(strings.TrimSpace(opt), "=")
		key, value = strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value)
		switch {
		case ok && (key == "width" || key == "height") && fileSizeOption.MatchString(value):
			attrs.WriteString(` ` + key + `="` + value + `"`)
		case ok && key == "align" && (value == "left" || value == "center" || value == "right"):
			class += " wiki-file-align-" + value
		case ok:
			d.log.Debug("ignoring file option", "pass", "links", "file", raw, "option", key)
		case key != "":
			alt = strings.TrimSpace(opt)
		}
	}

	src := escapeText(d.opts.FileBase + encodeTarget(raw))
	if video {
		return `<video class="` + class + `" src="` + src + `" controls` + attrs.String() + `></video>`
	}
	return `<img class="` + class + `" src="` + src + `" alt="` + escapeText(alt) + `"` + attrs.String() + ` loading="lazy">`
}
