package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPatternsGlobsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"x.src", "y.src"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	files, err := expandPatterns([]string{filepath.Join(dir, "*.src")})
	if err != nil {
		t.Fatalf("expandPatterns: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(files), files)
	}
}

func TestExpandPatternsKeepsLiteralPathWithNoGlobMatches(t *testing.T) {
	files, err := expandPatterns([]string{"does-not-exist.src"})
	if err != nil {
		t.Fatalf("expandPatterns: %v", err)
	}
	if len(files) != 1 || files[0] != "does-not-exist.src" {
		t.Fatalf("expected the literal pattern back, got %v", files)
	}
}

func TestLexFileReportsErrorOnMissingFile(t *testing.T) {
	if err := lexFile("definitely-missing.src"); err == nil {
		t.Fatalf("expected an error reading a missing file")
	}
}

func TestLexFileSucceedsOnValidSource(t *testing.T) {
	path := writeTemp(t, "tok.src", "x :: s64 = 1;")
	if err := lexFile(path); err != nil {
		t.Fatalf("lexFile: unexpected error: %v", err)
	}
}
