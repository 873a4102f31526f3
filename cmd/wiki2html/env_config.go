package main

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/alnah/go-wiki2html/internal/config"
)

const envPrefix = "WIKI2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // WIKI2HTML_CONFIG: config name or path
	InputDir   string // WIKI2HTML_INPUT_DIR: default input directory
	OutputDir  string // WIKI2HTML_OUTPUT_DIR: default output directory
	Templates  string // WIKI2HTML_TEMPLATES: template directory or YAML file
	AssetPath  string // WIKI2HTML_ASSET_PATH: custom asset directory
	Workers    int    // WIKI2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid WIKI2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"WIKI2HTML_CONFIG":     true,
	"WIKI2HTML_INPUT_DIR":  true,
	"WIKI2HTML_OUTPUT_DIR": true,
	"WIKI2HTML_TEMPLATES":  true,
	"WIKI2HTML_ASSET_PATH": true,
	"WIKI2HTML_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("WIKI2HTML_CONFIG"),
		InputDir:   getenv("WIKI2HTML_INPUT_DIR"),
		OutputDir:  getenv("WIKI2HTML_OUTPUT_DIR"),
		Templates:  getenv("WIKI2HTML_TEMPLATES"),
		AssetPath:  getenv("WIKI2HTML_ASSET_PATH"),
	}

	// Invalid or non-positive counts are ignored, leaving auto sizing
	if workers := getenv("WIKI2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized WIKI2HTML_* variables.
// Helps catch typos like WIKI2HTML_TEMPLATE instead of WIKI2HTML_TEMPLATES.
func warnUnknownEnvVars(logger *slog.Logger, environ []string) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Templates != "" && cfg.Templates.Dir == "" && cfg.Templates.File == "" {
		setTemplateSource(cfg, env.Templates)
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
