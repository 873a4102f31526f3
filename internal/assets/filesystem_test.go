package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

// writeAsset creates {base}/{dir}/{name} with content.
func writeAsset(t *testing.T, base, dir, name, content string) {
	t.Helper()
	full := filepath.Join(base, dir)
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(full, name), []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("relative directory is made absolute", func(t *testing.T) {
		t.Parallel()

		l, err := NewFilesystemLoader(".")
		if err != nil {
			t.Fatalf("NewFilesystemLoader(.) error = %v", err)
		}
		if !filepath.IsAbs(l.dir) {
			t.Errorf("dir = %q, want absolute", l.dir)
		}
	})

	tests := []struct {
		name string
		dir  func(t *testing.T) string
	}{
		{"empty", func(*testing.T) string { return "" }},
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing") }},
		{"regular file", func(t *testing.T) string {
			dir := t.TempDir()
			writeAsset(t, dir, ".", "site.css", "body {}")
			return filepath.Join(dir, "site.css")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFilesystemLoader(tt.dir(t))
			if !errors.Is(err, ErrInvalidBasePath) {
				t.Errorf("error = %v, want ErrInvalidBasePath", err)
			}
		})
	}
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "wide.css", ".wiki-page { max-width: none; }")
	writeAsset(t, dir, "layouts", "page.html", "<main>{{.Body}}</main>")

	l, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	t.Run("style", func(t *testing.T) {
		t.Parallel()

		got, err := l.LoadStyle("wide")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != ".wiki-page { max-width: none; }" {
			t.Errorf("LoadStyle() = %q", got)
		}
	})

	t.Run("layout", func(t *testing.T) {
		t.Parallel()

		got, err := l.LoadLayout("page")
		if err != nil {
			t.Fatalf("LoadLayout() error = %v", err)
		}
		if got != "<main>{{.Body}}</main>" {
			t.Errorf("LoadLayout() = %q", got)
		}
	})

	t.Run("missing assets", func(t *testing.T) {
		t.Parallel()

		if _, err := l.LoadStyle("default"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(default) error = %v, want ErrStyleNotFound", err)
		}
		if _, err := l.LoadLayout("article"); !errors.Is(err, ErrLayoutNotFound) {
			t.Errorf("LoadLayout(article) error = %v, want ErrLayoutNotFound", err)
		}
	})

	t.Run("styles", func(t *testing.T) {
		t.Parallel()

		if got := l.Styles(); !slices.Equal(got, []string{"wide"}) {
			t.Errorf("Styles() = %v, want [wide]", got)
		}
	})
}

func TestFilesystemLoader_DirectoryRemoved(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "assets")
	writeAsset(t, dir, "styles", "wide.css", "body {}")
	l, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := l.LoadStyle("wide"); !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStyle() error = %v, want ErrAssetRead", err)
	}
	if got := l.Styles(); got != nil {
		t.Errorf("Styles() = %v, want nil", got)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	outside := t.TempDir()
	writeAsset(t, outside, ".", "secret.css", "leaked")

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	link := filepath.Join(dir, "styles", "escape.css")
	if err := os.Symlink(filepath.Join(outside, "secret.css"), link); err != nil {
		t.Fatalf("setup: %v", err)
	}
	writeAsset(t, dir, "styles", "inside.css", "kept")
	if err := os.Symlink("inside.css", filepath.Join(dir, "styles", "alias.css")); err != nil {
		t.Fatalf("setup: %v", err)
	}

	l, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	got, err := l.LoadStyle("escape")
	if err == nil {
		t.Fatalf("LoadStyle(escape) = %q, want error", got)
	}
	if errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(escape) error = %v, want a read error", err)
	}

	if got, err := l.LoadStyle("alias"); err != nil || got != "kept" {
		t.Errorf("LoadStyle(alias) = %q, %v, want %q", got, err, "kept")
	}
}
