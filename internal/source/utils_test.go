package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.rs")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	want, _ := AbsolutePath(target)
	if got != want {
		t.Fatalf("RelativePath() = %q, want %q", got, want)
	}

	inner := filepath.Join(baseDir, "src", "lib.rs")
	got, err = RelativePath(inner, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "src/lib.rs" {
		t.Fatalf("RelativePath() = %q, want src/lib.rs", got)
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF() = %q, %v", out, changed)
	}
	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Fatalf("fast path must return input untouched")
	}
}
