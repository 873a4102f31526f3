package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Precompiled template patterns.
var (
	// {{include Name|args}} and {{틀:Name|args}} on one line
	templatePattern = regexp.MustCompile(`\{\{(?:(?i:include)[ \t]+|틀:)([^{}\n]*)\}\}`)

	// @1@, @name@ parameter references inside a template body
	templateParam = regexp.MustCompile(`@([\p{L}\p{N}_\-]+)@`)

	// name=value argument keys
	templateArgKey = regexp.MustCompile(`^[\p{L}\p{N}_\-]+$`)
)

const templateNamespace = "틀:"

// templates transcludes template calls. A body that compiles to a single
// paragraph is inlined; anything else is block-level and, when the call has
// a line to itself, becomes its own block. Every failure renders an inert
// placeholder span.
func templates(d *Document, text string) string {
	return replaceMatches(templatePattern, text, func(sub []string, alone bool) string {
		name, args := parseTemplateCall(d.Tokens, sub[1])
		out, block, ok := d.transclude(name, args)
		switch {
		case !ok:
			return d.Tokens.Inline(missingTemplate(name))
		case block && alone:
			return "\n\n" + d.Tokens.Transcluded(out, true) + "\n\n"
		default:
			return d.Tokens.Transcluded(out, block)
		}
	})
}

// parseTemplateCall splits "Name|a|key=b" into the template name and its
// arguments. Positional arguments are numbered from 1. Values are unescaped
// back to source text; the nested compile escapes them again.
func parseTemplateCall(t *Tokens, inner string) (string, map[string]string) {
	parts := strings.Split(inner, "|")
	name := strings.TrimSpace(t.Plain(html.UnescapeString(parts[0])))
	name = strings.TrimSpace(strings.TrimPrefix(name, templateNamespace))

	args := make(map[string]string, len(parts)-1)
	pos := 1
	for _, part := range parts[1:] {
		part = html.UnescapeString(part)
		if key, value, ok := strings.Cut(part, "="); ok && templateArgKey.MatchString(strings.TrimSpace(key)) {
			args[strings.TrimSpace(key)] = strings.TrimSpace(value)
			continue
		}
		args[strconv.Itoa(pos)] = strings.TrimSpace(part)
		pos++
	}
	return name, args
}

// transclude looks the template up and compiles its body as a nested
// document sharing this document's token table. Headings, links and files
// found in the body join this document's lists. It reports whether the
// output is block-level and whether transclusion succeeded.
func (d *Document) transclude(name string, args map[string]string) (out string, block, ok bool) {
	log := d.log.With("pass", "templates", "name", name)
	switch {
	case name == "":
		log.Debug("empty template name")
		return "", false, false
	case d.opts.Templates == nil:
		log.Debug("no template lookup configured")
		return "", false, false
	case d.depth >= d.opts.MaxTemplateDepth:
		log.Debug("template depth exceeded", "depth", d.depth)
		return "", false, false
	}

	body, err := lookupTemplate(d.opts.Templates, name)
	if err != nil {
		log.Debug("template lookup failed", "error", err)
		return "", false, false
	}

	c := d.child(substituteParams(Normalize(body), args))
	c.compileNested()
	d.Headings = append(d.Headings, c.Headings...)
	d.Links = append(d.Links, c.Links...)
	d.Files = append(d.Files, c.Files...)

	blocks := splitBlocks(c.Text)
	if len(blocks) == 1 && !c.Tokens.HasBoundary(blocks[0]) {
		return lineBreaks(blocks[0]), false, true
	}
	return wrapBlocks(c.Tokens, blocks), true, true
}

// lookupTemplate calls the host lookup, turning a panic into an error.
func lookupTemplate(l TemplateLookup, name string) (body string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("template lookup panicked: %v", r)
		}
	}()
	return l.Template(name)
}

// substituteParams replaces @key@ references that have an argument. Unknown
// references are left as written.
func substituteParams(body string, args map[string]string) string {
	return templateParam.ReplaceAllStringFunc(body, func(m string) string {
		if v, ok := args[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

func missingTemplate(name string) string {
	return `<span class="wiki-template-missing">` + escapeText(templateNamespace+name) + `</span>`
}
