package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemLoader serves assets from a directory on disk. Every load opens
// the directory as an os.Root, so files are never read from outside it.
type FilesystemLoader struct {
	dir string
}

// NewFilesystemLoader returns a loader for dir, which must be an existing,
// readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	defer root.Close()
	if _, err := fs.ReadDir(root.FS(), "."); err != nil {
		return nil, fmt.Errorf("%w: cannot list %s: %v", ErrInvalidBasePath, abs, err)
	}

	return &FilesystemLoader{dir: abs}, nil
}

// LoadStyle returns {dir}/styles/{name}.css.
func (l *FilesystemLoader) LoadStyle(name string) (string, error) {
	return l.read(styleFamily, name)
}

// LoadLayout returns {dir}/layouts/{name}.html.
func (l *FilesystemLoader) LoadLayout(name string) (string, error) {
	return l.read(layoutFamily, name)
}

// Styles returns the sorted style names found in the directory.
func (l *FilesystemLoader) Styles() []string {
	root, err := os.OpenRoot(l.dir)
	if err != nil {
		return nil
	}
	defer root.Close()
	return styleFamily.names(root.FS())
}

func (l *FilesystemLoader) read(f family, name string) (string, error) {
	root, err := os.OpenRoot(l.dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer root.Close()
	return f.read(root.FS(), name)
}

var _ AssetLoader = (*FilesystemLoader)(nil)
