package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-calcreport"
	"github.com/alnah/go-calcreport/internal/config"
	"github.com/alnah/go-calcreport/internal/dateutil"
	"github.com/alnah/go-calcreport/internal/yamlutil"
)

// Exit codes for the calcreport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess     = 0 // Every report exported
	ExitGeneral     = 1 // General/unexpected error
	ExitUsage       = 2 // Invalid flags, config, payload or validation
	ExitIO          = 3 // File not found, permission denied
	ExitBrowser     = 4 // Browser/Chrome errors
	ExitUnavailable = 5 // PDF written but no share facility available
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if calcreport.IsUnavailable(err) || errors.Is(err, calcreport.ErrShareUnavailable) {
		return ExitUnavailable
	}

	// Browser errors (exit 4)
	if errors.Is(err, calcreport.ErrBrowserConnect) ||
		errors.Is(err, calcreport.ErrPageCreate) ||
		errors.Is(err, calcreport.ErrPageLoad) ||
		errors.Is(err, calcreport.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadPayload) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, calcreport.ErrWriteOutput) ||
		errors.Is(err, calcreport.ErrInvalidOutputDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrDuplicateStdin) ||
		errors.Is(err, yamlutil.ErrInputTooLarge) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, calcreport.ErrEmptyTitle) ||
		errors.Is(err, calcreport.ErrFieldTooLong) ||
		errors.Is(err, calcreport.ErrInvalidLayout) ||
		errors.Is(err, calcreport.ErrInvalidColumns) ||
		errors.Is(err, calcreport.ErrInvalidLogoStyle) ||
		errors.Is(err, calcreport.ErrInvalidColor) ||
		errors.Is(err, calcreport.ErrInvalidWatermark) ||
		errors.Is(err, calcreport.ErrInvalidDate) ||
		errors.Is(err, calcreport.ErrInvalidPageSize) ||
		errors.Is(err, calcreport.ErrInvalidMargin) ||
		errors.Is(err, calcreport.ErrInvalidAssetPath) ||
		errors.Is(err, calcreport.ErrUnknownEngine) {
		return ExitUsage
	}

	return ExitGeneral
}

// worstExitCode folds per-report errors into one exit code. Any failure
// beats an unavailable share facility, which beats success.
func worstExitCode(errs []error) int {
	code := ExitSuccess
	for _, err := range errs {
		c := exitCodeFor(err)
		switch {
		case c == ExitSuccess:
		case c == ExitUnavailable:
			if code == ExitSuccess {
				code = c
			}
		case code == ExitSuccess || code == ExitUnavailable:
			code = c
		}
	}
	return code
}
