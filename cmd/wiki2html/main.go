package main

import (
	"fmt"
	"os"
	"slices"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommands dispatched by runMain.
var commands = []string{"convert", "version", "help", "completion", "doctor"}

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a subcommand and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		if cmd == "-h" || cmd == "--help" {
			printUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "wiki2html %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	default: // doctor
		return runDoctorCmd(rest, env)
	}
}

// isCommand reports whether s names a subcommand. Matching is case sensitive.
func isCommand(s string) bool {
	return slices.Contains(commands, s)
}
