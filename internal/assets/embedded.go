package assets

import "embed"

//go:embed styles/*.css layouts/*.html
var embedded embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader returns a loader over the built-in assets.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns styles/{name}.css.
func (*EmbeddedLoader) LoadStyle(name string) (string, error) {
	return styleFamily.read(embedded, name)
}

// LoadLayout returns layouts/{name}.html.
func (*EmbeddedLoader) LoadLayout(name string) (string, error) {
	return layoutFamily.read(embedded, name)
}

// Styles returns the sorted built-in style names.
func (*EmbeddedLoader) Styles() []string {
	return styleFamily.names(embedded)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
