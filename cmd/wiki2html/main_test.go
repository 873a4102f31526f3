package main

// Notes:
// - isCommand: we test command name matching.
// - runMain: we test dispatch and exit codes. File conversion itself is
//   covered by convert_test.go.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"convert", true},
		{"version", true},
		{"help", true},
		{"completion", true},
		{"doctor", true},
		{"foo", false},
		{"", false},
		{"page.wiki", false},
		{"Convert", false}, // case sensitive
		{"VERSION", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point dispatch
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"wiki2html"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: wiki2html"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"wiki2html", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"wiki2html " + Version},
		},
		{
			name:         "help command exits 0",
			args:         []string{"wiki2html", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: wiki2html", "Commands:"},
		},
		{
			name:         "--help flag prints usage to stdout",
			args:         []string{"wiki2html", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: wiki2html"},
		},
		{
			name:         "help convert shows convert help",
			args:         []string{"wiki2html", "help", "convert"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: wiki2html convert", "--templates"},
		},
		{
			name:         "help doctor shows doctor help",
			args:         []string{"wiki2html", "help", "doctor"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: wiki2html doctor"},
		},
		{
			name:         "help for unknown command writes to stderr",
			args:         []string{"wiki2html", "help", "bogus"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Unknown command: bogus"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"wiki2html", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "completion without shell prints usage",
			args:         []string{"wiki2html", "completion"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: wiki2html completion"},
		},
		{
			name:         "convert -h prints convert usage",
			args:         []string{"wiki2html", "convert", "-h"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Usage: wiki2html convert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(nil)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d", code, tt.wantCode)
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_ExitCodes - Semantic exit codes
// ---------------------------------------------------------------------------

func TestRunMain_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		// ExitUsage (2)
		{
			name:     "unsupported shell returns ExitUsage",
			args:     []string{"wiki2html", "completion", "badshell"},
			wantCode: ExitUsage,
		},
		{
			name:     "unknown flag returns ExitUsage",
			args:     []string{"wiki2html", "convert", "--bogus"},
			wantCode: ExitUsage,
		},
		{
			name:     "too many workers returns ExitUsage",
			args:     []string{"wiki2html", "convert", "-w", "99", "page.wiki"},
			wantCode: ExitUsage,
		},
		{
			name:     "missing named config returns ExitUsage",
			args:     []string{"wiki2html", "convert", "-c", "no-such-config-name", "page.wiki"},
			wantCode: ExitUsage,
		},
		{
			name:     "unknown highlight style returns ExitUsage",
			args:     []string{"wiki2html", "convert", "--highlight-style", "no-such-style", "page.wiki"},
			wantCode: ExitUsage,
		},
		{
			name:     "template depth over limit returns ExitUsage",
			args:     []string{"wiki2html", "convert", "--max-depth", "11", "page.wiki"},
			wantCode: ExitUsage,
		},

		// ExitIO (3)
		{
			name:     "nonexistent file returns ExitIO",
			args:     []string{"wiki2html", "convert", "nonexistent.wiki"},
			wantCode: ExitIO,
		},
		{
			name:     "no input returns ExitIO",
			args:     []string{"wiki2html", "convert"},
			wantCode: ExitIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := newTestEnv(nil)
			if code := runMain(tt.args, env); code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
		})
	}
}
