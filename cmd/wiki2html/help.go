package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wiki2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert wiki files to HTML")
	fmt.Fprintln(w, "  doctor      Check configuration, templates and assets")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'wiki2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wiki2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert wiki files (.wiki, .namu, .txt) to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Wiki file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Links:")
	fmt.Fprintln(w, "      --link-base <s>         URL prefix for page links (default /wiki/v/)")
	fmt.Fprintln(w, "      --file-base <s>         URL prefix for files (default /file/)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Templates:")
	fmt.Fprintln(w, "      --templates <path>      Directory of .wiki files or YAML name: body map")
	fmt.Fprintln(w, "      --max-depth <n>         Max template nesting depth (1-10)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --no-highlight          Disable code highlighting")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style, e.g. github, monokai")
	fmt.Fprintln(w, "      --toc-title <s>         Table of contents heading")
	fmt.Fprintln(w, "      --no-sanitize           Skip HTML sanitization")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Standalone pages:")
	fmt.Fprintln(w, "      --standalone            Wrap output in a full HTML page")
	fmt.Fprintln(w, "      --style <name>          Page style: default, plain, or custom")
	fmt.Fprintln(w, "      --title <s>             Page title (\"\" = first heading)")
	fmt.Fprintln(w, "      --date <s>              Footer date: auto, auto:korean, auto:YYYY.MM.DD")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom styles/ and layouts/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show timing and compile diagnostics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  WIKI2HTML_CONFIG, WIKI2HTML_INPUT_DIR, WIKI2HTML_OUTPUT_DIR,")
	fmt.Fprintln(w, "  WIKI2HTML_TEMPLATES, WIKI2HTML_ASSET_PATH, WIKI2HTML_WORKERS")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wiki2html doctor [--json] [-c config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the configuration loads, templates parse, the page style")
	fmt.Fprintln(w, "resolves and the output directory is writable.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: wiki2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: wiki2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
