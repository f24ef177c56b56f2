package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mainbong/spagrep/internal/config"
)

func envWith(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// setup writes the poem fixture and a settings file that turns color off.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	settings := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(settings, []byte("color: never\n"), 0600); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}
	t.Setenv(config.ConfigEnv, settings)

	poem := filepath.Join(dir, "poem.txt")
	content := "Super mario is the\nmost overrated game\nIn the history of 2d Overrated games\n"
	if err := os.WriteFile(poem, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write poem: %v", err)
	}
	return poem
}

const usageLine = "Welcome to spagrep. You must enter in this order: query and filename\n"

func runCLI(args []string, env map[string]string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr, envWith(env))
	return code, stdout.String(), stderr.String()
}

func TestExecute_Match(t *testing.T) {
	poem := setup(t)

	code, stdout, stderr := runCLI([]string{"overrated", poem}, nil)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr %q)", code, stderr)
	}
	if stdout != "\"most overrated game\"\n" {
		t.Errorf("Unexpected stdout: %q", stdout)
	}
	if stderr != "" {
		t.Errorf("Expected empty stderr, got %q", stderr)
	}
}

func TestExecute_CaseInsensitiveEnv(t *testing.T) {
	poem := setup(t)

	code, stdout, _ := runCLI([]string{"OVERRATED", poem}, map[string]string{"CASE_INSENSITIVE": ""})
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d", code)
	}
	expected := "\"most overrated game\"\n\"In the history of 2d Overrated games\"\n"
	if stdout != expected {
		t.Errorf("Expected %q, got %q", expected, stdout)
	}
}

func TestExecute_MissingFilename(t *testing.T) {
	setup(t)

	code, stdout, stderr := runCLI([]string{"overrated"}, nil)
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if stdout != usageLine {
		t.Errorf("Expected usage on stdout, got %q", stdout)
	}
	if stderr != "" {
		t.Errorf("Expected empty stderr, got %q", stderr)
	}
}

func TestExecute_UnreadableFile(t *testing.T) {
	setup(t)

	code, stdout, stderr := runCLI([]string{"overrated", "/does/not/exist.txt"}, nil)
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(stdout, "error reading the file: ") || !strings.Contains(stdout, "no such file or directory") {
		t.Errorf("Expected I/O error on stdout, got %q", stdout)
	}
	if stderr != "" {
		t.Errorf("Expected empty stderr, got %q", stderr)
	}
}

func TestExecute_NoMatches(t *testing.T) {
	poem := setup(t)

	code, stdout, stderr := runCLI([]string{"zelda", poem}, nil)
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if stdout != "" {
		t.Errorf("Expected empty stdout, got %q", stdout)
	}
	if stderr != "Mmmmh... no result found for query, retry with other queries\n" {
		t.Errorf("Unexpected stderr: %q", stderr)
	}
}

func TestExecute_DashQueryAfterSeparator(t *testing.T) {
	poem := setup(t)
	if err := os.WriteFile(poem, []byte("keep\n--verbose flag\n"), 0644); err != nil {
		t.Fatalf("Failed to write poem: %v", err)
	}

	code, stdout, _ := runCLI([]string{"--", "--verbose", poem}, nil)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d", code)
	}
	if stdout != "\"--verbose flag\"\n" {
		t.Errorf("Unexpected stdout: %q", stdout)
	}
}

// Short options are not defined, so a query such as "-v" is never taken for a flag
// that succeeds without searching.
func TestExecute_DashQueryWithoutSeparator(t *testing.T) {
	poem := setup(t)

	cases := [][]string{
		{"-v", poem},
		{"-v"},
		{"-h", poem},
		{"-x", poem},
		{"--no-such-flag", poem},
	}

	for _, args := range cases {
		code, stdout, stderr := runCLI(args, nil)
		if code != 1 {
			t.Errorf("%q: expected exit code 1, got %d", args, code)
		}
		if stdout != usageLine {
			t.Errorf("%q: expected usage on stdout, got %q", args, stdout)
		}
		if stderr != "" {
			t.Errorf("%q: expected empty stderr, got %q", args, stderr)
		}
	}
}

func TestExecute_LogDirFromSettings(t *testing.T) {
	poem := setup(t)
	logDir := filepath.Join(t.TempDir(), "logs")
	settings := filepath.Join(t.TempDir(), "settings.toml")
	content := "color = \"never\"\nlog_dir = \"" + filepath.ToSlash(logDir) + "\"\n"
	if err := os.WriteFile(settings, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	code, _, stderr := runCLI([]string{"--config", settings, "--log-level", "info", "mario", poem}, nil)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr %q)", code, stderr)
	}

	data, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("Expected latest.log: %v", err)
	}
	if !strings.Contains(string(data), "1 match(es)") {
		t.Errorf("Expected match count in log, got:\n%s", data)
	}
}

func TestExecute_InvalidSettings(t *testing.T) {
	poem := setup(t)
	settings := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(settings, []byte(`{"color": "rainbow"}`), 0600); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	code, stdout, stderr := runCLI([]string{"--config", settings, "mario", poem}, nil)
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if stdout != "" {
		t.Errorf("Expected empty stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "invalid color") {
		t.Errorf("Expected settings error on stderr, got %q", stderr)
	}
}

func TestExecute_Version(t *testing.T) {
	code, stdout, _ := runCLI([]string{"--version"}, nil)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d", code)
	}
	if stdout != "spagrep version "+version+"\n" {
		t.Errorf("Unexpected version output %q", stdout)
	}
}
