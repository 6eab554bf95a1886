package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI provides a clean interface for running bob in tests.
// It manages a temp directory and environment variables.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	return &CLI{
		t:   t,
		Dir: t.TempDir(),
		Env: map[string]string{},
	}
}

// Run executes the CLI with no input and returns stdout, stderr, and exit code.
// Args should not include "bob" or "--cwd" - those are added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	return r.RunWithInput(nil, args...)
}

// RunWithInput executes a session fed with lines, one per element.
func (r *CLI) RunWithInput(lines []string, args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	var input strings.Builder
	for _, line := range lines {
		input.WriteString(line)
		input.WriteByte('\n')
	}

	fullArgs := append([]string{"bob", "--cwd", r.Dir}, args...)
	code := Run(strings.NewReader(input.String()), &outBuf, &errBuf, fullArgs, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if it returns non-zero.
// Returns stdout.
func (r *CLI) MustRun(lines []string, args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.RunWithInput(lines, args...)
	if code != 0 {
		r.t.Fatalf("bob %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return stdout
}

// DataFile returns the path to the default save file.
func (r *CLI) DataFile() string {
	return filepath.Join(r.Dir, ".bob", "tasks.txt")
}

// ReadDataFile returns the content of the default save file.
func (r *CLI) ReadDataFile() string {
	r.t.Helper()

	content, err := os.ReadFile(r.DataFile())
	if err != nil {
		r.t.Fatalf("failed to read save file: %v", err)
	}

	return string(content)
}

// WriteFile writes content to a path relative to Dir.
func (r *CLI) WriteFile(rel, content string) {
	r.t.Helper()

	path := filepath.Join(r.Dir, rel)

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		r.t.Fatalf("creating dir for %s: %v", rel, err)
	}

	err = os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
