package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-wiki2html/internal/dateutil"
	"github.com/alnah/go-wiki2html/internal/fileutil"
	"github.com/alnah/go-wiki2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxURLLength       = 2048 // Browser limit
	MaxStyleNameLength = 50   // "github", "solarized-dark256"
	MaxTOCTitleLength  = 100  // "목차", "Contents"
	MaxPageTitleLength = 200  // <title> of standalone pages
	MaxDateLength      = 100  // "2024년 3월 5일", "auto:korean"
)

// Template depth and input size bounds accepted from config files.
const (
	MaxTemplateDepth = 10
	MaxInputSize     = 64 << 20
)

// ConfigDirName is the directory under the user config dir searched for
// named configs.
const ConfigDirName = "go-wiki2html"

// Config holds all configuration for the wiki2html CLI.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Links      LinksConfig      `yaml:"links"`
	Templates  TemplatesConfig  `yaml:"templates"`
	Highlight  HighlightConfig  `yaml:"highlight"`
	TOC        TOCConfig        `yaml:"toc"`
	Sanitize   SanitizeConfig   `yaml:"sanitize"`
	Standalone StandaloneConfig `yaml:"standalone"`
	Assets     AssetsConfig     `yaml:"assets"`
	Limits     LimitsConfig     `yaml:"limits"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// LinksConfig defines URL prefixes for generated links.
type LinksConfig struct {
	LinkBase string `yaml:"linkBase"` // Prefix for internal page links (default "/wiki/v/")
	FileBase string `yaml:"fileBase"` // Prefix for file embeds (default "/file/")
}

// TemplatesConfig defines where template bodies come from.
type TemplatesConfig struct {
	Dir      string `yaml:"dir"`      // Directory of NAME.wiki files
	File     string `yaml:"file"`     // YAML map of name: body
	MaxDepth int    `yaml:"maxDepth"` // 0 = compiler default
}

// HighlightConfig defines code block highlighting options.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style for standalone CSS (default "github")
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Title string `yaml:"title"` // Heading above the TOC list (default "목차")
}

// SanitizeConfig defines output sanitisation options.
type SanitizeConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StandaloneConfig defines full-page output options.
type StandaloneConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // Name of style in assets (empty = "default")
	Title   string `yaml:"title"` // Page title (empty = first heading or file name)
	Date    string `yaml:"date"`  // Footer date: literal, "auto" or "auto:LAYOUT" (empty = none)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LimitsConfig defines resource limits.
type LimitsConfig struct {
	MaxInputSize int `yaml:"maxInputSize"` // bytes, 0 = compiler default
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"links.linkBase", c.Links.LinkBase, MaxURLLength},
		{"links.fileBase", c.Links.FileBase, MaxURLLength},
		{"templates.dir", c.Templates.Dir, MaxPathLength},
		{"templates.file", c.Templates.File, MaxPathLength},
		{"highlight.style", c.Highlight.Style, MaxStyleNameLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"standalone.style", c.Standalone.Style, MaxStyleNameLength},
		{"standalone.title", c.Standalone.Title, MaxPageTitleLength},
		{"standalone.date", c.Standalone.Date, MaxDateLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Templates.Dir != "" && c.Templates.File != "" {
		return fmt.Errorf("%w: templates.dir and templates.file are mutually exclusive", ErrInvalidValue)
	}
	if c.Templates.MaxDepth < 0 || c.Templates.MaxDepth > MaxTemplateDepth {
		return fmt.Errorf("%w: templates.maxDepth must be between 0 and %d, got %d",
			ErrInvalidValue, MaxTemplateDepth, c.Templates.MaxDepth)
	}
	if c.Limits.MaxInputSize < 0 || c.Limits.MaxInputSize > MaxInputSize {
		return fmt.Errorf("%w: limits.maxInputSize must be between 0 and %d, got %d",
			ErrInvalidValue, MaxInputSize, c.Limits.MaxInputSize)
	}
	if _, err := dateutil.Resolve(c.Standalone.Date, time.Time{}); err != nil {
		return fmt.Errorf("%w: standalone.date: %v", ErrInvalidValue, err)
	}
	if c.Highlight.Style != "" && !slices.Contains(styles.Names(), c.Highlight.Style) {
		return fmt.Errorf("%w: highlight.style: unknown style %q", ErrInvalidValue, c.Highlight.Style)
	}

	return nil
}

// HighlightStyles lists the chroma styles accepted by highlight.style.
func HighlightStyles() []string {
	return styles.Names()
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// highlighting and sanitisation on, fragments rather than full pages.
func DefaultConfig() *Config {
	return &Config{
		Links:     LinksConfig{LinkBase: "/wiki/v/", FileBase: "/file/"},
		Highlight: HighlightConfig{Enabled: true, Style: "github"},
		TOC:       TOCConfig{Title: "목차"},
		Sanitize:  SanitizeConfig{Enabled: true},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in order:
// ./NAME.yaml, ./NAME.yml, then the same names under the user config dir.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, ConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
