package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	wiki2html "github.com/alnah/go-wiki2html"
	"github.com/alnah/go-wiki2html/internal/assets"
	"github.com/alnah/go-wiki2html/internal/config"
	"github.com/alnah/go-wiki2html/internal/templates"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Config    configInfo    `json:"config"`
	Templates templatesInfo `json:"templates"`
	Assets    assetsInfo    `json:"assets"`
	Env       envInfo       `json:"environment"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// configInfo holds config loading results.
type configInfo struct {
	Source string `json:"source"` // name or path, "defaults" when none
	Loaded bool   `json:"loaded"`
}

// templatesInfo holds template store results.
type templatesInfo struct {
	Source string `json:"source,omitempty"`
	Loaded bool   `json:"loaded"`
	Count  int    `json:"count"`
}

// assetsInfo holds page asset results.
type assetsInfo struct {
	Custom         bool     `json:"custom"`
	Style          string   `json:"style"`
	StyleFound     bool     `json:"style_found"`
	Styles         []string `json:"styles"`
	HighlightStyle string   `json:"highlight_style,omitempty"`
	OutputDir      string   `json:"output_dir,omitempty"`
	OutputWritable bool     `json:"output_writable"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GoVersion  string `json:"go_version"`
	GOMAXPROCS int    `json:"gomaxprocs"`
	Workers    int    `json:"workers"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	jsonOutput := fs.Bool("json", false, "output as JSON")
	configName := fs.StringP("config", "c", "", "config file name or path")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	name := *configName
	if name == "" {
		name = env.getenv("WIKI2HTML_CONFIG")
	}
	result := runDoctor(name, env)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(configName string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GoVersion:  runtime.Version(),
			GOMAXPROCS: runtime.GOMAXPROCS(0),
			Workers:    wiki2html.ResolvePoolSize(0),
		},
	}

	cfg := checkConfig(result, configName)
	applyEnvConfig(loadEnvConfig(env.getenv), cfg)
	checkTemplates(result, cfg)
	checkAssets(result, cfg)
	checkOutput(result, cfg)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkConfig loads the config. Failures are reported and defaults used
// so the remaining checks still run.
func checkConfig(result *doctorResult, name string) *config.Config {
	if name == "" {
		result.Config.Source = "defaults"
		result.Config.Loaded = true
		return config.DefaultConfig()
	}

	result.Config.Source = name
	cfg, err := config.LoadConfig(name)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return config.DefaultConfig()
	}
	result.Config.Loaded = true
	return cfg
}

// checkTemplates loads the configured template store.
func checkTemplates(result *doctorResult, cfg *config.Config) {
	src := templateSource(cfg)
	if src == "" {
		result.Warnings = append(result.Warnings,
			"No template source configured; template calls render as missing")
		return
	}

	result.Templates.Source = src
	store, err := templates.Load(src)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Templates: %v", err))
		return
	}
	result.Templates.Loaded = true
	result.Templates.Count = store.Len()
	if store.Len() == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Template source %s is empty", src))
	}
}

// checkAssets resolves the page style and layout used by --standalone.
func checkAssets(result *doctorResult, cfg *config.Config) {
	result.Assets.Style = cfg.Standalone.Style
	if result.Assets.Style == "" {
		result.Assets.Style = assets.DefaultStyleName
	}
	if cfg.Highlight.Enabled {
		result.Assets.HighlightStyle = cfg.Highlight.Style
	}

	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Assets: %v", err))
		return
	}
	result.Assets.Custom = resolver.HasCustomLoader()
	result.Assets.Styles = resolver.Styles()

	if _, err := resolver.LoadStyle(result.Assets.Style); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Style: %v", err))
	} else {
		result.Assets.StyleFound = true
	}
	if _, err := resolver.LoadLayout(assets.DefaultLayoutName); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Layout: %v", err))
	}
}

// checkOutput verifies the default output directory (or the temp dir when
// none is configured) accepts new files.
func checkOutput(result *doctorResult, cfg *config.Config) {
	dir := cfg.Output.DefaultDir
	result.Assets.OutputDir = dir
	if dir == "" {
		dir = os.TempDir()
	}

	f, err := os.CreateTemp(dir, ".wiki2html-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory not writable: %s", dir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.Assets.OutputWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "wiki2html doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	if r.Config.Loaded {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Could not load %s\n", r.Config.Source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Templates")
	switch {
	case r.Templates.Loaded:
		fmt.Fprintf(w, "  [OK] %d template(s) from %s\n", r.Templates.Count, filepath.Clean(r.Templates.Source))
	case r.Templates.Source != "":
		fmt.Fprintf(w, "  [ERROR] Could not load %s\n", r.Templates.Source)
	default:
		fmt.Fprintln(w, "  [WARN] None configured")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	if r.Assets.Custom {
		fmt.Fprintln(w, "  [OK] Custom asset directory with embedded fallback")
	} else {
		fmt.Fprintln(w, "  [OK] Embedded assets")
	}
	if r.Assets.StyleFound {
		fmt.Fprintf(w, "  [OK] Page style: %s\n", r.Assets.Style)
	} else {
		fmt.Fprintf(w, "  [ERROR] Page style: %s not found (available: %s)\n",
			r.Assets.Style, strings.Join(r.Assets.Styles, ", "))
	}
	if r.Assets.HighlightStyle != "" {
		fmt.Fprintf(w, "  [OK] Highlight style: %s\n", r.Assets.HighlightStyle)
	}
	if r.Assets.OutputWritable {
		fmt.Fprintln(w, "  [OK] Output directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Output directory: not writable")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s (%s)\n", r.Env.OS, r.Env.Arch, r.Env.GoVersion)
	fmt.Fprintf(w, "  [OK] Workers: %d (GOMAXPROCS %d)\n", r.Env.Workers, r.Env.GOMAXPROCS)
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
