package calcreport

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrEmptyTitle     = errors.New("report title cannot be empty")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrRender         = errors.New("report rendering failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrWriteOutput    = errors.New("failed to write PDF file")

	// ErrShareUnavailable reports that no share facility can take the file.
	// It is recoverable: the PDF has been written and its path is returned.
	ErrShareUnavailable = errors.New("sharing is not available on this device")
	ErrShare            = errors.New("sharing failed")

	// Layout and appearance validation errors.
	ErrInvalidLayout    = errors.New("invalid layout")
	ErrInvalidColumns   = errors.New("invalid column count")
	ErrInvalidLogoStyle = errors.New("invalid logo style")
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidWatermark = errors.New("invalid watermark")
	ErrInvalidDate      = errors.New("invalid date format")

	// Page settings validation errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")

	// Configuration errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrUnknownEngine    = errors.New("unknown PDF engine")
	ErrInvalidOutputDir = errors.New("invalid output directory")
)

// Kind classifies an export failure for the caller's UI.
type Kind int

const (
	// KindFailure covers every failure except an unavailable share facility.
	KindFailure Kind = iota
	// KindUnavailable means the PDF was produced but cannot be shared here.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	default:
		return "failure"
	}
}

// Stage names the export step that failed.
type Stage string

// Export stages, in pipeline order.
const (
	StageValidate Stage = "validate"
	StageRender   Stage = "render"
	StagePDF      Stage = "pdf"
	StageWrite    Stage = "write"
	StageShare    Stage = "share"
)

// ExportError is returned by Exporter.Export.
type ExportError struct {
	Kind  Kind
	Stage Stage
	Path  string // PDF path when the file was written before the failure
	HTML  string // rendered document when rendering succeeded
	Err   error
}

func (e *ExportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("export %s at %s", e.Kind, e.Stage)
	}
	return fmt.Sprintf("export %s at %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err is an export error caused by a missing
// share facility.
func IsUnavailable(err error) bool {
	var ee *ExportError
	return errors.As(err, &ee) && ee.Kind == KindUnavailable
}
