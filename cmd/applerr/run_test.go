package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/applerr/internal/model"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

// TestRunCmd_HarnessScenario replays the three-call scenario of a codec test
// harness and checks the outputs and the exit status of the real process.
func TestRunCmd_HarnessScenario(t *testing.T) {
	t.Parallel()

	cfgPath := writeTestConfig(t, "log:\n  format: plain\n")
	scriptPath := writeScript(t, `# decoder conformance
error: decode failed
warning: retrying
fatal: fatal: out of memory
error: never reported
`)

	stderr, code := runCLIProcess(t, "", "--config", cfgPath, "run", scriptPath)
	if code == 0 {
		t.Error("expected non-zero exit status")
	}

	want := []string{
		"ERROR: decode failed",
		"WARNING: retrying",
		"FATAL: fatal: out of memory",
	}
	if got := lines(stderr); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRunCmd(t *testing.T) {
	t.Parallel()

	t.Run("script from stdin with summary", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeTestConfig(t, "log:\n  format: plain\n")
		stdout, stderr, err := executeCLI(t, "warning: slow frame\nerror: checksum mismatch\n",
			"--config", cfgPath, "run", "--summary", "-")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"WARNING: slow frame", "ERROR: checksum mismatch"}
		if got := lines(stderr); strings.Join(got, "\n") != strings.Join(want, "\n") {
			t.Errorf("expected %q, got %q", want, got)
		}
		if !strings.Contains(stdout, "warnings: 1") || !strings.Contains(stdout, "errors:   1") {
			t.Errorf("unexpected summary: %q", stdout)
		}
	})

	t.Run("strict fails on errors", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeTestConfig(t, "")
		_, _, err := executeCLI(t, "error: checksum mismatch\n", "--config", cfgPath, "run", "--strict", "-")
		if err == nil || !strings.Contains(err.Error(), "1 error(s) reported") {
			t.Errorf("expected strict failure, got %v", err)
		}
	})

	t.Run("strict passes with warnings only", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeTestConfig(t, "")
		if _, _, err := executeCLI(t, "warning: slow frame\n", "--config", cfgPath, "run", "--strict", "-"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("parse error names the file and line", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeTestConfig(t, "")
		scriptPath := writeScript(t, "error: ok\nnot a diagnostic\n")
		_, stderr, err := executeCLI(t, "", "--config", cfgPath, "run", scriptPath)
		if err == nil {
			t.Fatal("expected parse error")
		}
		if !strings.Contains(err.Error(), scriptPath) || !strings.Contains(err.Error(), "line 2") {
			t.Errorf("expected file and line in error, got %v", err)
		}
		if stderr != "" {
			t.Errorf("expected nothing reported before parsing succeeded, got %q", stderr)
		}
	})

	t.Run("missing script", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeTestConfig(t, "")
		_, _, err := executeCLI(t, "", "--config", cfgPath, "run", filepath.Join(t.TempDir(), "missing.txt"))
		if err == nil {
			t.Fatal("expected error for missing script")
		}
	})

	t.Run("requires one argument", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeTestConfig(t, "")
		if _, _, err := executeCLI(t, "", "--config", cfgPath, "run"); err == nil {
			t.Fatal("expected argument error")
		}
	})
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printSummary(&buf, "run-1", model.Summary{WarningCount: 1, ErrorCount: 2, FatalCount: 3, Rejected: 4})

	want := []string{"Run run-1", "warnings: 1", "errors:   2", "fatal:    3", "rejected: 4"}
	if got := lines(buf.String()); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("expected %q, got %q", want, got)
	}
}
