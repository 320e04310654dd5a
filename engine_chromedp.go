package calcreport

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var _ Engine = (*chromedpEngine)(nil)

// chromedpEngine renders PDFs in tabs of one shared headless Chrome driven
// over the DevTools protocol. The document is injected with
// Page.setDocumentContent, so nothing touches the filesystem.
type chromedpEngine struct {
	timeout time.Duration

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func newChromedpEngine(timeout time.Duration) *chromedpEngine {
	return &chromedpEngine{timeout: timeout}
}

// ensureBrowser starts the allocator and the browser on first use.
func (e *chromedpEngine) ensureBrowser() (context.Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browserCtx != nil {
		return e.browserCtx, nil
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "true" {
		opts = append(opts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser so connection errors surface here.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.allocCancel = allocCancel
	e.browserCtx = browserCtx
	e.browserCancel = browserCancel
	return browserCtx, nil
}

// Render opens a new tab, loads html and prints it.
func (e *chromedpEngine) Render(ctx context.Context, html string, ps PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browserCtx, err := e.ensureBrowser()
	if err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	timeout, err := remaining(ctx, e.timeout)
	if err != nil {
		return nil, err
	}
	execCtx, cancelExec := context.WithTimeout(tabCtx, timeout)
	defer cancelExec()

	// Propagate caller cancellation into the tab context.
	stop := context.AfterFunc(ctx, cancelExec)
	defer stop()

	if err := chromedp.Run(execCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	var pdf []byte
	if err := chromedp.Run(execCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = buildPrintToPDFParams(ps).Do(ctx)
		return err
	})); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

func buildPrintToPDFParams(ps PageSettings) *page.PrintToPDFParams {
	width, height := ps.Dimensions()
	margin := ps.MarginInches()

	return page.PrintToPDF().
		WithPaperWidth(width).
		WithPaperHeight(height).
		WithMarginTop(margin).
		WithMarginBottom(margin).
		WithMarginLeft(margin).
		WithMarginRight(margin).
		WithPrintBackground(true).
		WithPreferCSSPageSize(true)
}

// Close shuts the browser down. Safe to call more than once.
func (e *chromedpEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browserCancel != nil {
		e.browserCancel()
		e.browserCancel = nil
	}
	if e.allocCancel != nil {
		e.allocCancel()
		e.allocCancel = nil
	}
	e.browserCtx = nil
	return nil
}
