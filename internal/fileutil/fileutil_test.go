package fileutil_test

// Notes:
// - WriteTempFile write/close error branches are not triggered: forcing disk
//   failures is platform-specific.
// - WriteFileAtomic rename failures are not simulated for the same reason.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-calcreport/internal/fileutil"
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
		{name: "html", extension: "html"},
		{name: "pdf", extension: "pdf"},
		{name: "empty", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash", extension: "../x", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: `a\b`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "ht\x00ml", wantErr: fileutil.ErrExtensionPathTraversal},
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
// TestWriteTempFile - Temp file lifecycle
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("<html></html>", "html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), fileutil.TempPrefix) {
		t.Errorf("path %q does not start with %q", path, fileutil.TempPrefix)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q does not end with .html", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(got) != "<html></html>" {
		t.Errorf("content = %q", got)
	}

	cleanup()
	cleanup()
	if fileutil.FileExists(path) {
		t.Error("file still exists after cleanup")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, _, err := fileutil.WriteTempFile("x", "")
	if !errors.Is(err, fileutil.ErrExtensionEmpty) {
		t.Errorf("error = %v, want ErrExtensionEmpty", err)
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "report.pdf")

	n, err := fileutil.WriteFileAtomic(target, strings.NewReader("%PDF-1.4"), 0o644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len("%PDF-1.4")) {
		t.Errorf("written = %d, want %d", n, len("%PDF-1.4"))
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading target: %v", err)
	}
	if string(got) != "%PDF-1.4" {
		t.Errorf("content = %q", got)
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the target", len(entries))
	}
}

func TestWriteFileAtomic_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := fileutil.WriteFileAtomic("", strings.NewReader("x"), 0o644)
	if !errors.Is(err, fileutil.ErrEmptyPath) {
		t.Errorf("error = %v, want ErrEmptyPath", err)
	}
}

// ---------------------------------------------------------------------------
// TestSlugify - File name stems from titles
// ---------------------------------------------------------------------------

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Cooling Load", "cooling-load"},
		{"  Zone A / Zone B  ", "zone-a-zone-b"},
		{"Heat <Load> & \"Gain\"", "heat-load-gain"},
		{"Kühllast Büro", "kühllast-büro"},
		{"", "report"},
		{"***", "report"},
		{"R-410A", "r-410a"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugify_LongTitleTruncated(t *testing.T) {
	t.Parallel()

	got := fileutil.Slugify(strings.Repeat("load ", 40))
	if len(got) > 64 {
		t.Errorf("len = %d, want <= 64", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug %q ends with a dash", got)
	}
}

// ---------------------------------------------------------------------------
// TestDirWritable / TestFileExists / TestIsFilePath
// ---------------------------------------------------------------------------

func TestDirWritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if !fileutil.DirWritable(dir) {
		t.Errorf("DirWritable(%q) = false, want true", dir)
	}
	if fileutil.DirWritable(filepath.Join(dir, "missing")) {
		t.Error("DirWritable(missing) = true, want false")
	}

	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if fileutil.DirWritable(file) {
		t.Error("DirWritable(file) = true, want false")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("probe file left behind: %d entries", len(entries))
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.pdf")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if fileutil.FileExists(filepath.Join(dir, "nope")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"compact":            false,
		"my-brand":           false,
		"./brand.yaml":       true,
		"/etc/calc.yaml":     true,
		`C:\reports\x.yaml`:  true,
		"configs/brand.yaml": true,
	}
	for in, want := range tests {
		if got := fileutil.IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}
