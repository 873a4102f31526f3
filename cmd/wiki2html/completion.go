package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-wiki2html/internal/assets"
	"github.com/alnah/go-wiki2html/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.wiki")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
// Built on demand so style lists track the embedded assets and chroma.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		// Enum flags
		"style":           {Values: assets.EmbeddedStyles()},
		"highlight-style": {Values: config.HighlightStyles()},

		// File flags with glob patterns
		"config":    {FileGlob: "*.yaml,*.yml"},
		"templates": {FileGlob: "*.yaml,*.yml"},

		// Directory flags
		"output":     {IsDir: true},
		"asset-path": {IsDir: true},
	}
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert wiki files to HTML",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles:  true,
			FilePattern: "*.wiki,*.namu,*.txt",
		},
		{
			Name: "doctor",
			Desc: "Check configuration, templates and assets",
			Flags: []flagDef{
				{Long: "json", Type: flagBool, Desc: "output as JSON"},
				{Long: "config", Short: "c", Type: flagFile, FileGlob: "*.yaml,*.yml", Desc: "config file name or path"},
			},
		},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// commandNames returns the space-separated command names.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func generateBash(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for wiki2html\n\n")
	b.WriteString("_wiki2html_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if len(c.Flags) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			for _, f := range c.Flags {
				var action string
				switch f.Type {
				case flagEnum:
					action = fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"${cur}\"))", strings.Join(f.Values, " "))
				case flagDir:
					action = "COMPREPLY=($(compgen -d -- \"${cur}\"))"
				case flagFile:
					action = "COMPREPLY=($(compgen -f -- \"${cur}\"))"
				default:
					continue
				}
				fmt.Fprintf(&b, "        %s)\n            %s\n            return\n            ;;\n", bashFlagPattern(f), action)
			}
			b.WriteString("        esac\n")
			var words []string
			for _, f := range c.Flags {
				words = append(words, "--"+f.Long)
				if f.Short != "" {
					words = append(words, "-"+f.Short)
				}
			}
			b.WriteString("        if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(words, " "))
			b.WriteString("            return\n        fi\n")
		}
		switch {
		case c.TakesFiles:
			b.WriteString("        COMPREPLY=($(compgen -f -- \"${cur}\"))\n")
		case c.Name == "help":
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", commandNames(cmds))
		case c.Name == "completion":
			b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"${cur}\"))\n")
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n}\n\n")
	b.WriteString("complete -F _wiki2html_completions wiki2html\n")
	return b.String()
}

func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "--" + f.Long + "|-" + f.Short
	}
	return "--" + f.Long
}

func generateZsh(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef wiki2html\n\n")
	b.WriteString("_wiki2html() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		switch {
		case len(c.Flags) > 0:
			b.WriteString("        _arguments \\\n")
			for _, f := range c.Flags {
				fmt.Fprintf(&b, "            %s \\\n", zshFlagSpec(f))
			}
			if c.TakesFiles {
				fmt.Fprintf(&b, "            '*:file:_files -g \"%s\"'\n", zshGlob(c.FilePattern))
			} else {
				b.WriteString("            '*::'\n")
			}
		case c.Name == "help":
			b.WriteString("        _describe 'command' commands\n")
		case c.Name == "completion":
			b.WriteString("        _values 'shell' bash zsh fish powershell\n")
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n}\n\n")
	b.WriteString("_wiki2html \"$@\"\n")
	return b.String()
}

func zshFlagSpec(f flagDef) string {
	desc := zshEscape(f.Desc)
	var rest string
	switch f.Type {
	case flagBool:
		rest = "[" + desc + "]"
	case flagEnum:
		rest = "[" + desc + "]:value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		rest = "[" + desc + "]:file:_files -g \"" + zshGlob(f.FileGlob) + "\""
	case flagDir:
		rest = "[" + desc + "]:directory:_files -/"
	default:
		rest = "[" + desc + "]:value:"
	}
	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s'", f.Short, f.Long, f.Short, f.Long, rest)
	}
	return "'--" + f.Long + rest + "'"
}

// zshGlob turns "*.yaml,*.yml" into the alternation "(*.yaml|*.yml)".
func zshGlob(glob string) string {
	parts := strings.Split(glob, ",")
	if len(parts) == 1 {
		return glob
	}
	return "(" + strings.Join(parts, "|") + ")"
}

func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", "'\\''")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return strings.ReplaceAll(s, ":", "\\:")
}

func generateFish(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for wiki2html\n\n")
	b.WriteString("function __fish_wiki2html_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_wiki2html_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c wiki2html -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c wiki2html -n __fish_wiki2html_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	for _, c := range cmds {
		cond := "'__fish_wiki2html_using_command " + c.Name + "'"
		for _, f := range c.Flags {
			line := "complete -c wiki2html -n " + cond + " -l " + f.Long
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagString, flagInt:
				line += " -x"
			}
			b.WriteString(line + " -d '" + fishEscape(f.Desc) + "'\n")
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c wiki2html -n %s -F\n", cond)
		}
	}
	b.WriteString("complete -c wiki2html -n '__fish_wiki2html_using_command completion' -a 'bash zsh fish powershell'\n")
	fmt.Fprintf(&b, "complete -c wiki2html -n '__fish_wiki2html_using_command help' -a '%s'\n", commandNames(cmds))
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# PowerShell completion for wiki2html\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName wiki2html -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psEscape(c.Desc))
	}
	b.WriteString("    }\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		var names []string
		for _, f := range c.Flags {
			names = append(names, "'--"+f.Long+"'")
			if f.Short != "" {
				names = append(names, "'-"+f.Short+"'")
			}
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(names, ", "))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $commands.Keys | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $commands[$_])\n")
	b.WriteString("        }\n        return\n    }\n\n")
	b.WriteString("    $cmd = $words[1]\n")
	b.WriteString("    if ($flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $flags[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n    }\n}\n")
	return b.String()
}

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wiki2html completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(wiki2html completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(wiki2html completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    wiki2html completion fish > ~/.config/fish/completions/wiki2html.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    wiki2html completion powershell | Out-String | Invoke-Expression")
}
