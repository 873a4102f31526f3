package pipeline

import (
	"regexp"
	"strings"
)

// #redirect Target or #넘겨주기 Target, keyword case-insensitive
var redirectPattern = regexp.MustCompile(`(?i)^#(?:redirect|넘겨주기)[ \t]+(.+)$`)

// DetectRedirect inspects the first non-empty line only. It reports the
// trimmed target when that line is a redirect directive.
func DetectRedirect(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := redirectPattern.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
		target := strings.TrimSpace(m[1])
		if strings.HasPrefix(target, "[[") && strings.HasSuffix(target, "]]") {
			target = strings.TrimSpace(target[2 : len(target)-2])
		}
		return target, target != ""
	}
	return "", false
}

// redirectHTML renders the fixed notice that replaces a redirect document.
func redirectHTML(target, linkBase string) string {
	page, anchor := splitAnchor(target)
	var b strings.Builder
	b.WriteString(`<div class="wiki-redirect"><span class="wiki-redirect-label">redirect</span> `)
	b.WriteString(`<a class="wiki-link-internal" href="`)
	b.WriteString(escapeText(internalHref(linkBase, page, anchor)))
	b.WriteString(`">`)
	b.WriteString(escapeText(target))
	b.WriteString(`</a></div>`)
	return b.String()
}
