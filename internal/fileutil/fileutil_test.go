package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates new file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "new.md")

		if err := WriteFileAtomic(path, "a ~~b~~\n"); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != "a ~~b~~\n" {
			t.Errorf("content = %q, want %q", got, "a ~~b~~\n")
		}
	})

	t.Run("replaces existing file and keeps mode", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("permission bits are not preserved on windows")
		}
		path := filepath.Join(t.TempDir(), "old.md")
		if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := WriteFileAtomic(path, "new"); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("mode = %v, want 0600", info.Mode().Perm())
		}
		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		if err := WriteFileAtomic(filepath.Join(dir, "a.md"), "x"); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1", len(entries))
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		if err := WriteFileAtomic("", "x"); !errors.Is(err, ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})

	t.Run("directory target", func(t *testing.T) {
		t.Parallel()
		if err := WriteFileAtomic(t.TempDir(), "x"); !errors.Is(err, ErrNotAFile) {
			t.Errorf("error = %v, want ErrNotAFile", err)
		}
	})

	t.Run("missing parent directory", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "missing", "a.md")
		if err := WriteFileAtomic(path, "x"); err == nil {
			t.Error("expected error, got nil")
		}
	})
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if FileExists(filepath.Join(dir, "missing.md")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestIsMarkdownFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"README.md", true},
		{"docs/notes.Markdown", true},
		{"a.mkd", true},
		{"page.html", false},
		{"md", false},
		{"archive.md.bak", false},
	}

	for _, tt := range tests {
		if got := IsMarkdownFile(tt.path); got != tt.want {
			t.Errorf("IsMarkdownFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsHidden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{".git", true},
		{"docs/.drafts", true},
		{"docs", false},
		{".", false},
		{"..", false},
	}

	for _, tt := range tests {
		if got := IsHidden(tt.path); got != tt.want {
			t.Errorf("IsHidden(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
