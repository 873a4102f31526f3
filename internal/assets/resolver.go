package assets

import (
	"errors"
	"slices"
)

// AssetResolver reads a custom directory first and falls back to the
// embedded assets for names the directory does not define. Invalid names
// and read errors from the custom directory are returned as is.
type AssetResolver struct {
	custom   *FilesystemLoader // nil = embedded only
	embedded *EmbeddedLoader
}

// NewAssetResolver returns a resolver over customDir, or over the embedded
// assets alone when customDir is empty.
func NewAssetResolver(customDir string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customDir == "" {
		return r, nil
	}

	custom, err := NewFilesystemLoader(customDir)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// LoadStyle returns the named style.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom != nil {
		css, err := r.custom.LoadStyle(name)
		if !errors.Is(err, ErrStyleNotFound) {
			return css, err
		}
	}
	return r.embedded.LoadStyle(name)
}

// LoadLayout returns the named page layout.
func (r *AssetResolver) LoadLayout(name string) (string, error) {
	if r.custom != nil {
		src, err := r.custom.LoadLayout(name)
		if !errors.Is(err, ErrLayoutNotFound) {
			return src, err
		}
	}
	return r.embedded.LoadLayout(name)
}

// Styles returns every style name the resolver can load, sorted.
func (r *AssetResolver) Styles() []string {
	names := r.embedded.Styles()
	if r.custom != nil {
		names = append(names, r.custom.Styles()...)
		slices.Sort(names)
		names = slices.Compact(names)
	}
	return names
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ AssetLoader = (*AssetResolver)(nil)
