// Package templates stores template bodies for the CLI host. A Store is
// filled from a directory of NAME.wiki files or a YAML map of name to body,
// and serves them to the compiler through its Template method.
package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	wiki2html "github.com/alnah/go-wiki2html"
	"github.com/alnah/go-wiki2html/internal/fileutil"
	"github.com/alnah/go-wiki2html/internal/yamlutil"
)

// Namespace is the prefix template names may carry in files and maps.
const Namespace = "틀:"

// MaxBodySize bounds a single template body read from disk.
const MaxBodySize = 256 << 10

// Extensions accepted by LoadDir.
var Extensions = []string{".wiki", ".namu", ".txt"}

// Sentinel errors for store operations.
var (
	ErrEmptyName     = errors.New("template name cannot be empty")
	ErrInvalidSource = errors.New("invalid template source")
)

// Store maps template names to bodies. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	bodies map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{bodies: make(map[string]string)}
}

// Compile-time interface check.
var _ wiki2html.TemplateLookup = (*Store)(nil)

// Template returns the body stored under name.
func (s *Store) Template(name string) (string, error) {
	key := normalizeName(name)
	s.mu.RLock()
	body, ok := s.bodies[key]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", wiki2html.ErrTemplateNotFound, name)
	}
	return body, nil
}

// Add stores body under name, replacing any earlier body.
func (s *Store) Add(name, body string) error {
	key := normalizeName(name)
	if key == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	s.bodies[key] = body
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored templates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bodies)
}

// Names returns the stored template names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.bodies))
	for name := range s.bodies {
		names = append(names, name)
	}
	s.mu.RUnlock()
	slices.Sort(names)
	return names
}

// LoadDir adds every template file under dir. The name is the path relative
// to dir without its extension, using '/' between directories, so
// dir/Info/Person.wiki is served as "Info/Person". Files with other
// extensions and hidden entries are skipped.
func (s *Store) LoadDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: not a directory: %s", ErrInvalidSource, dir)
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !fileutil.HasExtension(path, Extensions...) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := fileutil.ReadLimited(path, MaxBodySize)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", rel, err)
		}
		name := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		return s.Add(name, string(data))
	})
}

// LoadYAML adds the templates of a YAML document mapping names to bodies.
func (s *Store) LoadYAML(data []byte) error {
	m, err := yamlutil.StringMap(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	for name, body := range m {
		if err := s.Add(name, body); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}
	}
	return nil
}

// Load fills a new Store from path: a directory is loaded with LoadDir,
// a .yaml or .yml file with LoadYAML.
func Load(path string) (*Store, error) {
	s := New()
	switch {
	case fileutil.DirExists(path):
		if err := s.LoadDir(path); err != nil {
			return nil, err
		}
	case fileutil.HasExtension(path, ".yaml", ".yml"):
		data, err := fileutil.ReadLimited(path, int64(yamlutil.MaxInputSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}
		if err := s.LoadYAML(data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s is neither a directory nor a YAML file", ErrInvalidSource, path)
	}
	return s, nil
}

// normalizeName trims the namespace prefix and surrounding space, and
// composes the name to NFC so names from NFD file systems still match.
func normalizeName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	return strings.TrimSpace(strings.TrimPrefix(name, Namespace))
}
