package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProgram(t *testing.T, dir, name, src string) string {

	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunExitStatus(t *testing.T) {

	dir := t.TempDir()

	t.Setenv("HOME", dir)
	t.Chdir(dir)

	good := writeProgram(t, dir, "good.bas", "10 A = 2\n20 IF A > 1 THEN 40\n30 PRINT 1 / 0\n40 END\n")
	bad := writeProgram(t, dir, "bad.bas", "10 PRINT 1 / 0\n")
	syntax := writeProgram(t, dir, "syntax.bas", "10 PRINT (\n")
	cfg := writeProgram(t, dir, "bad.yaml", "log:\n  level: loud\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"runs", []string{good}, 0},
		{"runs without suffix", []string{filepath.Join(dir, "good")}, 0},
		{"dumps", []string{"-dump", good}, 0},
		{"fault", []string{bad}, 1},
		{"parse error", []string{syntax}, 1},
		{"missing file", []string{filepath.Join(dir, "nope.bas")}, 1},
		{"bad config", []string{"-config", cfg, good}, 1},
		{"too many files", []string{good, bad}, 2},
		{"watch needs a file", []string{"-watch"}, 2},
		{"unknown flag", []string{"-frob"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%q) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {

	for n, want := range map[int]string{0: "statements", 1: "statement", 2: "statements"} {
		if got := pluralize("statement", n); got != want {
			t.Errorf("pluralize(%d) = %q", n, got)
		}
	}
}
