package calcreport

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-calcreport/internal/fileutil"
	"github.com/alnah/go-calcreport/internal/process"
)

// fileRenderer renders a local HTML file to PDF. It isolates the browser so
// rodEngine can be tested without Chrome.
type fileRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, page PageSettings) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ Engine       = (*rodEngine)(nil)
	_ fileRenderer = (*rodRenderer)(nil)
)

// rodRenderer implements fileRenderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// newLauncher configures Chrome for the current environment.
func newLauncher() *launcher.Launcher {
	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "true" {
		l = l.NoSandbox(true)
	}
	return l
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := newLauncher()
	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.killLocked(l)
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	r.launcher = l
	return browser, nil
}

// Close closes the browser and kills whatever the launcher left running.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.killLocked(r.launcher)
		r.launcher = nil
	}
	return err
}

func (r *rodRenderer) killLocked(l *launcher.Launcher) {
	process.KillTree(l.PID())
	l.Kill()
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, page PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	p, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer p.Close()

	timeout, err := remaining(ctx, r.timeout)
	if err != nil {
		return nil, err
	}
	p = p.Context(ctx).Timeout(timeout)

	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := p.PDF(buildRodPDFOptions(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// buildRodPDFOptions maps page settings onto Chrome's print parameters.
// The document's own @page rule wins when the two disagree.
func buildRodPDFOptions(page PageSettings) *proto.PagePrintToPDF {
	width, height := page.Dimensions()
	margin := page.MarginInches()

	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(width),
		PaperHeight:       floatPtr(height),
		MarginTop:         floatPtr(margin),
		MarginBottom:      floatPtr(margin),
		MarginLeft:        floatPtr(margin),
		MarginRight:       floatPtr(margin),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

// rodEngine converts HTML to PDF with go-rod. The document is written to a
// temp file first so Chrome loads it like any local page.
type rodEngine struct {
	renderer fileRenderer
}

func newRodEngine(timeout time.Duration) *rodEngine {
	return &rodEngine{renderer: newRodRenderer(timeout)}
}

// Render writes html to a temp file and prints it.
func (e *rodEngine) Render(ctx context.Context, html string, page PageSettings) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, tmpPath, page)
}

// Close releases browser resources.
func (e *rodEngine) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}
