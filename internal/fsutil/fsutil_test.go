package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := WriteFileAtomic(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestWriteFileAtomicOverwrites(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestReplaceSymlinkCreates(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(dir, "nested", "link")
	if err := ReplaceSymlink(target, link); err != nil {
		t.Fatalf("ReplaceSymlink error: %v", err)
	}
	resolved, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if resolved != target {
		t.Fatalf("link points at %q, want %q", resolved, target)
	}
}

func TestReplaceSymlinkRepointsStale(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	oldTarget := filepath.Join(dir, "old")
	newTarget := filepath.Join(dir, "new")
	for _, d := range []string{oldTarget, newTarget} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(oldTarget, link); err != nil {
		t.Fatalf("seed symlink: %v", err)
	}
	if err := ReplaceSymlink(newTarget, link); err != nil {
		t.Fatalf("ReplaceSymlink error: %v", err)
	}
	resolved, _ := os.Readlink(link)
	if resolved != newTarget {
		t.Fatalf("link points at %q, want %q", resolved, newTarget)
	}
}

func TestReplaceSymlinkReplacesRealDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	for _, d := range []string{target, link} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(link, "leftover"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := ReplaceSymlink(target, link); err != nil {
		t.Fatalf("ReplaceSymlink error: %v", err)
	}
	resolved, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if resolved != target {
		t.Fatalf("link points at %q, want %q", resolved, target)
	}
}

func TestReplaceSymlinkEmptyArgs(t *testing.T) {
	t.Parallel()
	if err := ReplaceSymlink("", "x"); err == nil {
		t.Fatalf("expected error for empty target")
	}
	if err := ReplaceSymlink("x", ""); err == nil {
		t.Fatalf("expected error for empty link path")
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/u")
	got, err := ExpandHome("~/Games/vortex/pfx")
	if err != nil {
		t.Fatalf("ExpandHome error: %v", err)
	}
	if got != "/home/u/Games/vortex/pfx" {
		t.Fatalf("unexpected expansion %q", got)
	}

	got, err = ExpandHome("/absolute/path")
	if err != nil {
		t.Fatalf("ExpandHome error: %v", err)
	}
	if got != "/absolute/path" {
		t.Fatalf("absolute paths must pass through, got %q", got)
	}
}
