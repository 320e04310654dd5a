package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alnah/go-calcreport"
	"github.com/alnah/go-calcreport/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fakes shared by command tests
// ---------------------------------------------------------------------------

var (
	testTime = time.Date(2026, 3, 7, 14, 30, 0, 0, time.UTC)
	fakePDF  = []byte("%PDF-1.7\n%fake\n")
)

const coolingLoadYAML = `title: Cooling Load
finalResults:
  - label: Total Load
    value: "2.1"
    unit: kW
sections:
  - title: Zone A
    items:
      - label: Sensible Heat
        value: "1200"
        unit: W
      - label: Latent Heat
        value: "900"
        unit: W
        isHighlighted: true
`

const coolingLoadJSON = `{"title": "Heating Load", "sections": [{"title": "Zone B", "items": [{"label": "Loss", "value": "3.4", "unit": "kW"}]}]}`

// fakeEngine returns PDF or Err without starting a browser.
type fakeEngine struct {
	PDF []byte
	Err error

	calls   atomic.Int32
	printed atomic.Value // last HTML handed to Render
}

func (e *fakeEngine) Render(ctx context.Context, html string, _ calcreport.PageSettings) ([]byte, error) {
	e.calls.Add(1)
	e.printed.Store(html)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.Err != nil {
		return nil, e.Err
	}
	return e.PDF, nil
}

func (e *fakeEngine) Close() error { return nil }

// unavailableSharer reports no share facility.
type unavailableSharer struct{}

func (unavailableSharer) Available(context.Context) bool { return false }

func (unavailableSharer) Share(context.Context, string, calcreport.ShareOptions) error {
	return calcreport.ErrShareUnavailable
}

// recordingSharer accepts every file and remembers the paths.
type recordingSharer struct {
	mu    sync.Mutex
	paths []string
}

func (s *recordingSharer) Available(context.Context) bool { return true }

func (s *recordingSharer) Share(_ context.Context, path string, _ calcreport.ShareOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	return nil
}

func (s *recordingSharer) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of loggers
// and notifiers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testEnvironment bundles an Environment with its captured output.
type testEnvironment struct {
	*Environment
	stdout *syncBuffer
	stderr *syncBuffer
	engine *fakeEngine
}

func newTestEnv(t *testing.T) *testEnvironment {
	t.Helper()

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	engine := &fakeEngine{PDF: fakePDF}
	return &testEnvironment{
		Environment: &Environment{
			Now:    func() time.Time { return testTime },
			Stdin:  strings.NewReader(""),
			Stdout: stdout,
			Stderr: stderr,
			Config: config.DefaultConfig(),
			Engine: engine,
		},
		stdout: stdout,
		stderr: stderr,
		engine: engine,
	}
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// filesWithExt lists the base names in dir ending in ext.
func filesWithExt(t *testing.T, dir, ext string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ext {
			names = append(names, e.Name())
		}
	}
	return names
}
