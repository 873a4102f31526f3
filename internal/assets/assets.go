package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Built-in asset names.
const (
	DefaultStyleName  = "default"
	DefaultLayoutName = "page"
)

// family is one kind of asset: where it lives and how a miss is reported.
type family struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleFamily  = family{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	layoutFamily = family{dir: "layouts", ext: ".html", notFound: ErrLayoutNotFound}
)

// read returns the named asset of family f from fsys.
func (f family) read(fsys fs.FS, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := fs.ReadFile(fsys, path.Join(f.dir, name+f.ext))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", f.notFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %s %q: %v", ErrAssetRead, f.dir, name, err)
	}
	return string(data), nil
}

// names lists the assets of family f in fsys, sorted.
func (f family) names(fsys fs.FS) []string {
	matches, err := fs.Glob(fsys, path.Join(f.dir, "*"+f.ext))
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(path.Base(m), f.ext)
		if ValidateAssetName(name) == nil {
			out = append(out, name)
		}
	}
	return out
}

// EmbeddedStyles lists the built-in style names.
func EmbeddedStyles() []string {
	return styleFamily.names(embedded)
}
