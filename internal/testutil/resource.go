// Package testutil provides shared fixtures for gradebook tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteResource writes lines, each newline-terminated, to name inside a fresh
// temp directory and returns the file path.
func WriteResource(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write resource %s: %v", path, err)
	}
	return path
}

// ReadResource returns the content of path, failing the test on error.
func ReadResource(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read resource %s: %v", path, err)
	}
	return string(data)
}

// SampleLines is a small valid resource used across packages.
var SampleLines = []string{
	"S001,Alice,Math,85.0",
	"S002,Bob,Physics,92.5",
	"S003,Carol,Chemistry,78.0",
}
