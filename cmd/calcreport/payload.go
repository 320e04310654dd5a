package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-calcreport"
	"github.com/alnah/go-calcreport/internal/yamlutil"
)

// stdinArg selects standard input as the payload source.
const stdinArg = "-"

// payloadExtensions lists the file extensions accepted as payloads.
// JSON documents decode through the YAML parser.
var payloadExtensions = map[string]struct{}{
	".yaml": {},
	".yml":  {},
	".json": {},
}

// Sentinel errors for payload handling.
var (
	ErrNoInput          = errors.New("no payload specified")
	ErrInvalidExtension = errors.New("payload must have .yaml, .yml or .json extension")
	ErrReadPayload      = errors.New("failed to read payload")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrDuplicateStdin   = errors.New("stdin can only be read once")
)

// discoverPayloads expands args into payload paths. Directories are walked
// for payload files in lexical order; "-" stands for stdin.
func discoverPayloads(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	var paths []string
	seenStdin := false
	for _, arg := range args {
		if arg == stdinArg {
			if seenStdin {
				return nil, ErrDuplicateStdin
			}
			seenStdin = true
			paths = append(paths, arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadPayload, err)
		}
		if !info.IsDir() {
			if err := validatePayloadExtension(arg); err != nil {
				return nil, err
			}
			paths = append(paths, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || validatePayloadExtension(path) != nil {
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no payload files in %s", ErrNoInput, strings.Join(args, ", "))
	}
	return paths, nil
}

func validatePayloadExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := payloadExtensions[ext]; !ok {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// readPayload decodes one report from path, or from stdin when path is "-".
// Unknown keys, a blank title and over-long fields are rejected.
func readPayload(path string, stdin io.Reader) (calcreport.Report, error) {
	var report calcreport.Report

	r := stdin
	if path != stdinArg {
		f, err := os.Open(path) // #nosec G304 -- payload path is user-provided
		if err != nil {
			return report, fmt.Errorf("%w: %w", ErrReadPayload, err)
		}
		defer f.Close()
		r = f
	}

	if err := yamlutil.DecodeReader(r, &report); err != nil {
		return report, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, displayName(path), err)
	}
	if err := report.Validate(); err != nil {
		return report, err
	}
	return report, nil
}

// displayName is the name used for a payload in messages.
func displayName(path string) string {
	if path == stdinArg {
		return "stdin"
	}
	return path
}
