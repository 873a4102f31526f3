package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("defaults report warnings but succeed", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := newTestEnv(nil)
		if code := runDoctorCmd(nil, env); code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
		}
		out := stdout.String()
		for _, want := range []string{
			"wiki2html doctor",
			"[OK] Source: defaults",
			"[WARN] None configured",
			"[OK] Page style: default",
			"[OK] Highlight style: github",
			"Status: Ready with warnings",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("templates from config are counted", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "tpl", "A.wiki"), "a")
		writeFile(t, filepath.Join(dir, "tpl", "B.wiki"), "b")
		cfgPath := writeFile(t, filepath.Join(dir, "site.yaml"),
			"templates:\n  dir: \""+filepath.ToSlash(filepath.Join(dir, "tpl"))+"\"\noutput:\n  defaultDir: \""+filepath.ToSlash(dir)+"\"\n")

		env, stdout, _ := newTestEnv(nil)
		if code := runDoctorCmd([]string{"-c", cfgPath}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d\n%s", code, stdout.String())
		}
		out := stdout.String()
		if !strings.Contains(out, "[OK] 2 template(s)") {
			t.Errorf("output missing template count:\n%s", out)
		}
		if !strings.Contains(out, "Status: Ready to convert") {
			t.Errorf("output missing ready status:\n%s", out)
		}
	})

	t.Run("unknown style lists custom and embedded styles", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "assets", "styles", "wide.css"), "body {}")
		cfgPath := writeFile(t, filepath.Join(dir, "site.yaml"),
			"standalone:\n  style: sepia\nassets:\n  basePath: \""+filepath.ToSlash(filepath.Join(dir, "assets"))+"\"\n")

		env, stdout, _ := newTestEnv(nil)
		if code := runDoctorCmd([]string{"-c", cfgPath}, env); code != ExitGeneral {
			t.Fatalf("exit code = %d, want %d\n%s", code, ExitGeneral, stdout.String())
		}
		out := stdout.String()
		for _, want := range []string{
			"[OK] Custom asset directory",
			"[ERROR] Page style: sepia not found (available: default, plain, wide)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("missing config fails", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := newTestEnv(nil)
		code := runDoctorCmd([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, env)
		if code != ExitGeneral {
			t.Fatalf("exit code = %d, want %d", code, ExitGeneral)
		}
		if !strings.Contains(stdout.String(), "Status: Not ready") {
			t.Errorf("output = %s", stdout.String())
		}
	})

	t.Run("missing template dir from environment fails", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := newTestEnv(map[string]string{
			"WIKI2HTML_TEMPLATES": filepath.Join(t.TempDir(), "none"),
		})
		if code := runDoctorCmd(nil, env); code != ExitGeneral {
			t.Fatalf("exit code = %d, want %d", code, ExitGeneral)
		}
		if !strings.Contains(stdout.String(), "[ERROR] Could not load") {
			t.Errorf("output = %s", stdout.String())
		}
	})

	t.Run("bad flag", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv(nil)
		if code := runDoctorCmd([]string{"--bogus"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv(map[string]string{"WIKI2HTML_OUTPUT_DIR": t.TempDir()})
	if code := runDoctorCmd([]string{"--json"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}

	var got doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if got.Status != statusWarnings {
		t.Errorf("Status = %q, want %q", got.Status, statusWarnings)
	}
	if !got.Config.Loaded || got.Config.Source != "defaults" {
		t.Errorf("Config = %+v", got.Config)
	}
	if !got.Assets.StyleFound || !got.Assets.OutputWritable {
		t.Errorf("Assets = %+v", got.Assets)
	}
	if got.Env.Workers < 1 {
		t.Errorf("Env.Workers = %d, want >= 1", got.Env.Workers)
	}
}
