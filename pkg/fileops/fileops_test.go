package fileops

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// Test helpers

func createTestFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
	return path
}

func readFileContent(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// Tests for SourceDir

func TestSourceDirList(t *testing.T) {
	dir := t.TempDir()
	createTestFile(t, dir, "ToBase64.mjs", "")
	createTestFile(t, dir, "AES.mjs", "")
	createTestFile(t, dir, "legacy.js", "")
	createTestFile(t, dir, "README.md", "")
	createTestFile(t, dir, ".hidden.mjs", "")
	createTestFile(t, dir, "nested/Inner.mjs", "")

	src, err := OpenSourceDir(dir, 0)
	if err != nil {
		t.Fatalf("OpenSourceDir failed: %v", err)
	}
	defer src.Close()

	tests := []struct {
		name       string
		extensions []string
		want       []string
	}{
		{"mjs only", []string{".mjs"}, []string{"AES.mjs", "ToBase64.mjs"}},
		{"mjs and js", []string{".mjs", ".js"}, []string{"AES.mjs", "ToBase64.mjs", "legacy.js"}},
		{"everything", nil, []string{"AES.mjs", "README.md", "ToBase64.mjs", "legacy.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.List(tt.extensions)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("List() = %v, want %v", got, tt.want)
			}
		})
	}

	if src.Abs("AES.mjs") != filepath.Join(src.Path(), "AES.mjs") {
		t.Errorf("Abs() = %s", src.Abs("AES.mjs"))
	}
}

func TestSourceDirReadFile(t *testing.T) {
	dir := t.TempDir()
	createTestFile(t, dir, "ops/A.mjs", "export default 1;")
	createTestFile(t, dir, "ops/Big.mjs", strings.Repeat("x", 64))
	createTestFile(t, dir, "secret.txt", "outside")

	src, err := OpenSourceDir(filepath.Join(dir, "ops"), 32)
	if err != nil {
		t.Fatalf("OpenSourceDir failed: %v", err)
	}
	defer src.Close()

	data, err := src.ReadFile("A.mjs")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "export default 1;" {
		t.Errorf("ReadFile() = %q", data)
	}

	if _, err := src.ReadFile("Big.mjs"); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Expected ErrFileTooLarge, got %v", err)
	}

	if _, err := src.ReadFile("../secret.txt"); err == nil {
		t.Error("Expected reads outside the directory to fail")
	}

	if _, err := src.ReadFile("missing.mjs"); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestOpenSourceDirErrors(t *testing.T) {
	dir := t.TempDir()
	file := createTestFile(t, dir, "file.txt", "x")

	for _, path := range []string{"", "   ", filepath.Join(dir, "missing"), file} {
		if _, err := OpenSourceDir(path, 0); err == nil {
			t.Errorf("OpenSourceDir(%q) should fail", path)
		}
	}
}

func TestSourceDirClosed(t *testing.T) {
	src, err := OpenSourceDir(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("OpenSourceDir failed: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if _, err := src.List(nil); err == nil {
		t.Error("List after Close should fail")
	}
}

// Tests for AtomicWriteFile

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(dir, "out", "nested", "operations.json")
		if err := AtomicWriteFile(path, []byte("{}\n"), 0644); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}
		if got := readFileContent(t, path); got != "{}\n" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := createTestFile(t, dir, "operations.json", "old content that is longer")
		if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}
		if got := readFileContent(t, path); got != "new" {
			t.Errorf("content = %q", got)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}
		if info.Mode().Perm() != 0644 {
			t.Errorf("mode = %v, want 0644", info.Mode().Perm())
		}
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") {
				t.Errorf("temporary file left behind: %s", e.Name())
			}
		}
	})

	t.Run("fails when the destination is a directory", func(t *testing.T) {
		target := filepath.Join(dir, "adir")
		if err := os.MkdirAll(filepath.Join(target, "child"), 0755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		if err := AtomicWriteFile(target, []byte("x"), 0644); err == nil {
			t.Error("Expected error when renaming over a non-empty directory")
		}
	})
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		path string
		base string
		want string
	}{
		{"operations.json", "/work", "/work/operations.json"},
		{"./src/core/operations", "/work", "/work/src/core/operations"},
		{"/abs/out.json", "/work", "/abs/out.json"},
		{"~/out.json", "/work", filepath.Join(home, "out.json")},
	}

	for _, tt := range tests {
		if got := ResolvePath(tt.path, tt.base); got != tt.want {
			t.Errorf("ResolvePath(%q, %q) = %q, want %q", tt.path, tt.base, got, tt.want)
		}
	}
}
