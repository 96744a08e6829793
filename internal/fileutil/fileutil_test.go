package fileutil_test

// Notes:
// - Write and Close error branches in WriteFileAtomic are not tested
//   because triggering disk write failures is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-streammd/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "simple", extension: "html"},
		{name: "double", extension: "tar.gz"},
		{name: "empty", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash", extension: "../html", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: `..\html`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "html\x00", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic replacement of output files
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.html")
		if err := fileutil.WriteFileAtomic(path, []byte("<h1>x</h1>"), 0644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile error = %v", err)
		}
		if string(data) != "<h1>x</h1>" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("replaces existing file and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.html")
		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := fileutil.WriteFileAtomic(path, []byte("new"), 0644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir error = %v", err)
		}
		if len(entries) != 1 || entries[0].Name() != "out.html" {
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("dir entries = %v, want [out.html]", names)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "new" {
			t.Errorf("content = %q, want %q", data, "new")
		}
	})

	t.Run("applies permissions", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "perm.html")
		if err := fileutil.WriteFileAtomic(path, []byte("x"), 0600); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat error = %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("perm = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("missing directory fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.html")
		err := fileutil.WriteFileAtomic(path, []byte("x"), 0644)
		if err == nil || !strings.Contains(err.Error(), "creating temp file") {
			t.Errorf("error = %v, want creating temp file error", err)
		}
	})

	t.Run("large content", func(t *testing.T) {
		t.Parallel()

		large := strings.Repeat("x", 1024*1024)
		path := filepath.Join(t.TempDir(), "large.html")
		if err := fileutil.WriteFileAtomic(path, []byte(large), 0644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		info, _ := os.Stat(path)
		if info.Size() != int64(len(large)) {
			t.Errorf("size = %d, want %d", info.Size(), len(large))
		}
	})
}

// ---------------------------------------------------------------------------
// TestReplaceExtension - Output path derivation
// ---------------------------------------------------------------------------

func TestReplaceExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		ext  string
		want string
	}{
		{path: "notes.md", ext: "html", want: "notes.html"},
		{path: "dir/README", ext: "html", want: "dir/README.html"},
		{path: "a.b/c", ext: "html", want: "a.b/c.html"},
		{path: "doc.markdown", ext: "html", want: "doc.html"},
		{path: "x.tar.md", ext: "html", want: "x.tar.html"},
	}

	for _, tt := range tests {
		got, err := fileutil.ReplaceExtension(tt.path, tt.ext)
		if err != nil {
			t.Errorf("ReplaceExtension(%q) error = %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReplaceExtension(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}

	if _, err := fileutil.ReplaceExtension("a.md", "../x"); !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("ReplaceExtension with traversal = %v, want ErrExtensionPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// TestIsMarkdownFile - Markdown extension detection
// ---------------------------------------------------------------------------

func TestIsMarkdownFile(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"README.md":         true,
		"notes.MD":          true,
		"doc.markdown":      true,
		"dir/x.Markdown":    true,
		"page.html":         false,
		"md":                false,
		"archive.md.bak":    false,
		".md":               true,
		"no-extension":      false,
		"style.mdx":         false,
		"dir.md/README.txt": false,
	}

	for path, want := range tests {
		if got := fileutil.IsMarkdownFile(path); got != want {
			t.Errorf("IsMarkdownFile(%q) = %v, want %v", path, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - File existence check
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	testDir := filepath.Join(tempDir, "testdir")
	if err := os.Mkdir(testDir, 0755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "existing file returns true", path: testFile, want: true},
		{name: "directory returns false", path: testDir, want: false},
		{name: "nonexistent path returns false", path: filepath.Join(tempDir, "nonexistent"), want: false},
		{name: "empty path returns false", path: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - File path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"dark":                false,
		"my-style":            false,
		"./custom.css":        true,
		"../shared/style.css": true,
		"/absolute/path.css":  true,
		`C:\windows\path.css`: true,
		"sub/dir":             true,
		"":                    false,
	}

	for in, want := range tests {
		if got := fileutil.IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}
