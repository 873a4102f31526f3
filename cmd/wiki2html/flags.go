package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// linkFlags holds URL prefix flags.
type linkFlags struct {
	linkBase string
	fileBase string
}

// templateFlags holds template source flags.
type templateFlags struct {
	source   string // directory or YAML file
	maxDepth int
}

// renderFlags holds compiler output flags.
type renderFlags struct {
	noHighlight    bool
	highlightStyle string
	tocTitle       string
	noSanitize     bool
}

// pageFlags holds standalone page flags.
type pageFlags struct {
	standalone bool
	style      string
	title      string
	date       string
	assetPath  string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	workers   int
	links     linkFlags
	templates templateFlags
	render    renderFlags
	page      pageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and compile diagnostics")
}

// addLinkFlags adds URL prefix flags to a FlagSet.
func addLinkFlags(fs *flag.FlagSet, f *linkFlags) {
	fs.StringVar(&f.linkBase, "link-base", "", "URL prefix for internal page links")
	fs.StringVar(&f.fileBase, "file-base", "", "URL prefix for embedded files")
}

// addTemplateFlags adds template flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *templateFlags) {
	fs.StringVar(&f.source, "templates", "", "template directory or YAML file")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "max template nesting depth (1-10)")
}

// addRenderFlags adds compiler output flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting of code blocks")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for highlighted code")
	fs.StringVar(&f.tocTitle, "toc-title", "", "table of contents heading")
	fs.BoolVar(&f.noSanitize, "no-sanitize", false, "write compiler output without sanitizing")
}

// addPageFlags adds standalone page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.BoolVar(&f.standalone, "standalone", false, "wrap output in a full HTML page")
	fs.StringVar(&f.style, "style", "", "page style name")
	fs.StringVar(&f.title, "title", "", "page title (\"\" = first heading or file name)")
	fs.StringVar(&f.date, "date", "", "page footer date (\"auto\", \"auto:korean\" or literal text)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
// Shared by parseConvertFlags and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addLinkFlags(fs, &f.links)
	addTemplateFlags(fs, &f.templates)
	addRenderFlags(fs, &f.render)
	addPageFlags(fs, &f.page)

	return fs
}

// parseConvertFlags parses convert flags. Usage goes to w on error or -h.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
