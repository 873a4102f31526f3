package wiki2html

import "fmt"

// TemplateLookup resolves a template name to its wiki-syntax body.
// Names arrive without the "틀:" namespace prefix. Implementations must be
// safe for concurrent use when the Compiler is shared.
type TemplateLookup interface {
	Template(name string) (string, error)
}

// TemplateMap serves template bodies from a map keyed by name.
type TemplateMap map[string]string

// Template returns the body stored under name.
func (m TemplateMap) Template(name string) (string, error) {
	body, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return body, nil
}

// TemplateFunc adapts a function to TemplateLookup.
type TemplateFunc func(name string) (string, error)

// Template calls f(name). A nil f finds nothing.
func (f TemplateFunc) Template(name string) (string, error) {
	if f == nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return f(name)
}
