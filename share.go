package calcreport

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pkg/browser"

	"github.com/alnah/go-calcreport/internal/fileutil"
)

// Share metadata for PDF documents.
const (
	MIMETypePDF = "application/pdf"
	UTIPDF      = "com.adobe.pdf"
)

// ShareOptions describes the document handed to a Sharer.
type ShareOptions struct {
	MIMEType    string // "application/pdf"
	DialogTitle string // "Share {title}"
	UTI         string // "com.adobe.pdf"
}

// shareOptionsFor builds the options used for every exported report.
func shareOptionsFor(title string) ShareOptions {
	return ShareOptions{
		MIMEType:    MIMETypePDF,
		DialogTitle: "Share " + title,
		UTI:         UTIPDF,
	}
}

// Sharer hands a finished file to the user: a desktop viewer, a folder, a
// mail client. Available must be cheap and must not block for long.
type Sharer interface {
	Available(ctx context.Context) bool
	Share(ctx context.Context, path string, opts ShareOptions) error
}

// Compile-time interface checks.
var (
	_ Sharer = (*OpenSharer)(nil)
	_ Sharer = (*DirSharer)(nil)
	_ Sharer = NopSharer{}
)

// OpenSharer opens the PDF with the desktop's default application.
type OpenSharer struct {
	lookPath func(file string) (string, error)
	open     func(path string) error
}

// NewOpenSharer returns a sharer backed by the platform opener
// (xdg-open, open or rundll32).
func NewOpenSharer() *OpenSharer {
	return &OpenSharer{
		lookPath: exec.LookPath,
		open:     browser.OpenFile,
	}
}

// OpenerCommand names the program used to open files on this platform.
func OpenerCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32"
	default:
		return "xdg-open"
	}
}

// Available reports whether the platform opener is on PATH.
func (s *OpenSharer) Available(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	_, err := s.lookPath(OpenerCommand())
	return err == nil
}

// Share opens path. The opener ignores the dialog title.
func (s *OpenSharer) Share(ctx context.Context, path string, _ ShareOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.open(path); err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrShare, path, err)
	}
	return nil
}

// DirSharer delivers the PDF by copying it into Dir, for synced folders and
// headless hosts.
type DirSharer struct {
	Dir string
}

// Available reports whether Dir exists and accepts new files.
func (s *DirSharer) Available(ctx context.Context) bool {
	if ctx.Err() != nil || s.Dir == "" {
		return false
	}
	return fileutil.DirWritable(s.Dir)
}

// Share copies path into Dir under the same base name.
func (s *DirSharer) Share(ctx context.Context, path string, _ ShareOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.Open(path) // #nosec G304 -- path produced by the exporter
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShare, err)
	}
	defer src.Close()

	dst := filepath.Join(s.Dir, filepath.Base(path))
	if filepath.Clean(dst) == filepath.Clean(path) {
		return nil
	}
	if _, err := fileutil.WriteFileAtomic(dst, src, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrShare, err)
	}
	return nil
}

// NopSharer never shares. Use it when the PDF file itself is the result.
type NopSharer struct{}

// Available always reports false.
func (NopSharer) Available(context.Context) bool { return false }

// Share always fails with ErrShareUnavailable.
func (NopSharer) Share(context.Context, string, ShareOptions) error { return ErrShareUnavailable }
