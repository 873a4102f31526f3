package assets

// AssetLoader loads page styles and layouts by name. Names carry no
// extension or directory.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css or an error wrapping
	// ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadLayout returns layouts/{name}.html or an error wrapping
	// ErrLayoutNotFound.
	LoadLayout(name string) (string, error)
}
