package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	wiki2html "github.com/alnah/go-wiki2html"
	"github.com/alnah/go-wiki2html/internal/assets"
	"github.com/alnah/go-wiki2html/internal/config"
	"github.com/alnah/go-wiki2html/internal/dateutil"
	"github.com/alnah/go-wiki2html/internal/fileutil"
	"github.com/alnah/go-wiki2html/internal/hints"
	"github.com/alnah/go-wiki2html/internal/templates"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read wiki file")
	ErrWriteOutput = errors.New("failed to write HTML file")
)

// runConvertCmd parses convert flags, runs the conversion and maps the
// outcome to an exit code.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
	defer undo()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env, logger); err != nil {
		fmt.Fprintln(env.Stderr, err.Error()+hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment, logger *slog.Logger) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.getenv)
	warnUnknownEnvVars(logger, env.environ())

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// Precedence: CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	workers := flags.workers
	if workers == 0 {
		workers = min(envCfg.Workers, wiki2html.MaxPoolSize)
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no wiki files found in %s", ErrNoInput, inputPath)
	}

	params, err := buildConversionParams(cfg, env, logger)
	if err != nil {
		return err
	}

	logger.Debug("starting conversion", "files", len(files), "workers", wiki2html.ResolvePoolSize(workers))
	results := convertBatch(ctx, files, params, workers)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// newLogger builds the CLI logger: warnings by default, debug output with
// verbose, errors only with quiet.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// loadConfig loads the named config, the flag taking precedence over
// WIKI2HTML_CONFIG. No name means defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags overrides config values with explicitly set CLI flags.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.links.linkBase != "" {
		cfg.Links.LinkBase = flags.links.linkBase
	}
	if flags.links.fileBase != "" {
		cfg.Links.FileBase = flags.links.fileBase
	}

	if flags.templates.source != "" {
		setTemplateSource(cfg, flags.templates.source)
	}
	if flags.templates.maxDepth != 0 {
		cfg.Templates.MaxDepth = flags.templates.maxDepth
	}

	if flags.render.noHighlight {
		cfg.Highlight.Enabled = false
	}
	if flags.render.highlightStyle != "" {
		cfg.Highlight.Style = flags.render.highlightStyle
	}
	if flags.render.tocTitle != "" {
		cfg.TOC.Title = flags.render.tocTitle
	}
	if flags.render.noSanitize {
		cfg.Sanitize.Enabled = false
	}

	if flags.page.standalone {
		cfg.Standalone.Enabled = true
	}
	if flags.page.style != "" {
		cfg.Standalone.Style = flags.page.style
	}
	if flags.page.title != "" {
		cfg.Standalone.Title = flags.page.title
	}
	if flags.page.date != "" {
		cfg.Standalone.Date = flags.page.date
	}
	if flags.page.assetPath != "" {
		cfg.Assets.BasePath = flags.page.assetPath
	}
}

// setTemplateSource stores a template path given on the command line or in
// the environment: YAML files go to templates.file, anything else to
// templates.dir.
func setTemplateSource(cfg *config.Config, path string) {
	if fileutil.HasExtension(path, ".yaml", ".yml") {
		cfg.Templates.File, cfg.Templates.Dir = path, ""
		return
	}
	cfg.Templates.Dir, cfg.Templates.File = path, ""
}

// templateSource returns the configured template directory or file.
func templateSource(cfg *config.Config) string {
	if cfg.Templates.Dir != "" {
		return cfg.Templates.Dir
	}
	return cfg.Templates.File
}

// compilerOptions translates config into compiler options, loading the
// template store when one is configured.
func compilerOptions(cfg *config.Config) ([]wiki2html.Option, error) {
	opts := []wiki2html.Option{
		wiki2html.WithLinkBase(cfg.Links.LinkBase),
		wiki2html.WithFileBase(cfg.Links.FileBase),
		wiki2html.WithHighlighting(cfg.Highlight.Enabled),
	}
	if cfg.TOC.Title != "" {
		opts = append(opts, wiki2html.WithTOCTitle(cfg.TOC.Title))
	}
	if cfg.Highlight.Style != "" {
		opts = append(opts, wiki2html.WithHighlightStyle(cfg.Highlight.Style))
	}
	if cfg.Templates.MaxDepth > 0 {
		opts = append(opts, wiki2html.WithMaxTemplateDepth(cfg.Templates.MaxDepth))
	}
	if cfg.Limits.MaxInputSize > 0 {
		opts = append(opts, wiki2html.WithMaxInputSize(cfg.Limits.MaxInputSize))
	}

	if src := templateSource(cfg); src != "" {
		store, err := templates.Load(src)
		if err != nil {
			return nil, fmt.Errorf("loading templates: %w", err)
		}
		opts = append(opts, wiki2html.WithTemplates(store))
	}

	return opts, nil
}

// buildConversionParams prepares everything shared by the batch workers.
func buildConversionParams(cfg *config.Config, env *Environment, logger *slog.Logger) (*conversionParams, error) {
	opts, err := compilerOptions(cfg)
	if err != nil {
		return nil, err
	}

	params := &conversionParams{
		options:      opts,
		logger:       logger,
		maxInputSize: int64(wiki2html.DefaultMaxInputSize),
	}
	if cfg.Limits.MaxInputSize > 0 {
		params.maxInputSize = int64(cfg.Limits.MaxInputSize)
	}
	if cfg.Sanitize.Enabled {
		params.sanitizer = newSanitizer()
	}

	if cfg.Standalone.Enabled {
		loader := env.AssetLoader
		if loader == nil {
			resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
			if err != nil {
				return nil, fmt.Errorf("loading assets: %w", err)
			}
			loader = resolver
		}

		var highlightCSS func(io.Writer) error
		if cfg.Highlight.Enabled {
			highlightCSS = wiki2html.NewCompiler(opts...).WriteHighlightCSS
		}
		params.page, err = newPageRenderer(loader, cfg.Standalone.Style, cfg.Standalone.Title, highlightCSS)
		if err != nil {
			return nil, err
		}
		// One date for the whole batch
		params.page.date, err = dateutil.Resolve(cfg.Standalone.Date, env.now())
		if err != nil {
			return nil, fmt.Errorf("resolving page date: %w", err)
		}
	}

	return params, nil
}

// resolveInputPath returns the positional input, falling back to
// input.defaultDir.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the -o flag, falling back to output.defaultDir.
// Empty means next to each input file.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, wiki2html.ErrInvalidUTF8):
		return hints.ForInvalidUTF8()
	case errors.Is(err, templates.ErrInvalidSource):
		return hints.ForTemplates()
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.EmbeddedStyles())
	case errors.Is(err, config.ErrInvalidValue) && strings.Contains(err.Error(), "highlight.style"):
		return hints.ForStyleNotFound(config.HighlightStyles())
	}
	return ""
}
