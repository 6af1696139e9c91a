// Package testutil holds helpers shared by bigcalc's tests.
package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

// csiSequence matches the color and cursor escapes emitted by the ui themes
// and the spinner.
var csiSequence = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripAnsiCodes removes terminal escape sequences from s so CLI output can
// be compared as plain text.
func StripAnsiCodes(s string) string {
	return csiSequence.ReplaceAllString(s, "")
}

// WriteFile writes content to name inside dir and returns the file's path.
// It fails the test on error.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
