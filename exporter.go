package calcreport

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alnah/go-calcreport/internal/fileutil"
)

// Exporter renders a Report, prints it to PDF, stores the file and hands it
// to a Sharer. Failures are logged and reported to a Notifier. Export may be
// called concurrently; each call writes its own file.
type Exporter struct {
	renderer  *Renderer
	engine    Engine
	sharer    Sharer
	notifier  Notifier
	logger    zerolog.Logger
	outputDir string
	now       func() time.Time
	page      PageSettings
	timeout   time.Duration
	validate  bool

	closeOnce sync.Once
	closeErr  error
}

// ExportResult describes a successful export.
type ExportResult struct {
	ID       string        // unique per export, also in log lines
	Path     string        // the written PDF
	HTML     string        // the rendered document
	PDFSize  int64         // bytes written
	Duration time.Duration // wall time of the whole export
}

// ExporterOption configures an Exporter.
type ExporterOption func(*exporterConfig)

type exporterConfig struct {
	renderer     *Renderer
	rendererOpts []RendererOption
	engine       Engine
	engineName   string
	sharer       Sharer
	notifier     Notifier
	logger       zerolog.Logger
	outputDir    string
	now          func() time.Time
	page         PageSettings
	timeout      time.Duration
	validate     bool
}

// WithEngine injects the PDF engine. The Exporter closes it on Close.
func WithEngine(e Engine) ExporterOption {
	return func(c *exporterConfig) {
		c.engine = e
	}
}

// WithEngineName selects a built-in engine ("rod" or "chromedp").
// Ignored when WithEngine is given.
func WithEngineName(name string) ExporterOption {
	return func(c *exporterConfig) {
		c.engineName = name
	}
}

// WithSharer sets where finished PDFs go. Defaults to OpenSharer.
func WithSharer(s Sharer) ExporterOption {
	return func(c *exporterConfig) {
		c.sharer = s
	}
}

// WithNotifier sets the receiver of user-facing notices.
func WithNotifier(n Notifier) ExporterOption {
	return func(c *exporterConfig) {
		c.notifier = n
	}
}

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(l zerolog.Logger) ExporterOption {
	return func(c *exporterConfig) {
		c.logger = l
	}
}

// WithOutputDir sets the directory PDFs are written to. It is created if
// missing. Defaults to the system temp directory.
func WithOutputDir(dir string) ExporterOption {
	return func(c *exporterConfig) {
		c.outputDir = dir
	}
}

// WithClock sets the clock used for the report date.
func WithClock(now func() time.Time) ExporterOption {
	return func(c *exporterConfig) {
		c.now = now
	}
}

// WithRenderer injects a prepared Renderer. RendererOptions passed through
// WithRendererOptions are then ignored.
func WithRenderer(r *Renderer) ExporterOption {
	return func(c *exporterConfig) {
		c.renderer = r
	}
}

// WithRendererOptions configures the Renderer the Exporter builds.
func WithRendererOptions(opts ...RendererOption) ExporterOption {
	return func(c *exporterConfig) {
		c.rendererOpts = append(c.rendererOpts, opts...)
	}
}

// WithPageSettings sets the paper size and margins.
func WithPageSettings(p PageSettings) ExporterOption {
	return func(c *exporterConfig) {
		c.page = p
	}
}

// WithValidation makes Export run Report.Validate first and fail at
// StageValidate on a blank title or an over-long field. Off by default:
// any strings render.
func WithValidation() ExporterOption {
	return func(c *exporterConfig) {
		c.validate = true
	}
}

// WithTimeout bounds the PDF stage of one export.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) ExporterOption {
	if d <= 0 {
		panic("calcreport: WithTimeout duration must be positive")
	}
	return func(c *exporterConfig) {
		c.timeout = d
	}
}

// NewExporter builds an Exporter. The browser is not started until the
// first Export.
func NewExporter(opts ...ExporterOption) (*Exporter, error) {
	cfg := exporterConfig{
		engineName: EngineRod,
		logger:     zerolog.Nop(),
		now:        time.Now,
		page:       DefaultPageSettings(),
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.page.Validate(); err != nil {
		return nil, err
	}

	renderer := cfg.renderer
	if renderer == nil {
		ropts := append([]RendererOption{WithRenderPage(cfg.page)}, cfg.rendererOpts...)
		var err error
		renderer, err = NewRenderer(ropts...)
		if err != nil {
			return nil, err
		}
	}

	outputDir, err := prepareOutputDir(cfg.outputDir)
	if err != nil {
		return nil, err
	}

	engine := cfg.engine
	if engine == nil {
		engine, err = NewEngine(cfg.engineName, cfg.timeout)
		if err != nil {
			return nil, err
		}
	}

	sharer := cfg.sharer
	if sharer == nil {
		sharer = NewOpenSharer()
	}
	notifier := cfg.notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}

	return &Exporter{
		renderer:  renderer,
		engine:    engine,
		sharer:    sharer,
		notifier:  notifier,
		logger:    cfg.logger,
		outputDir: outputDir,
		now:       cfg.now,
		page:      cfg.page,
		timeout:   cfg.timeout,
		validate:  cfg.validate,
	}, nil
}

func prepareOutputDir(dir string) (string, error) {
	if dir == "" {
		return os.TempDir(), nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOutputDir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOutputDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: not a directory: %s", ErrInvalidOutputDir, dir)
	}
	return dir, nil
}

// Export runs the whole pipeline for one report.
//
// When no share facility is available the PDF is still written; the error
// is an *ExportError of KindUnavailable carrying the path and the HTML, and
// the notifier receives MessageUnavailable. Every other failure is an *ExportError of
// KindFailure and the notifier receives MessageFailure. Nothing is retried.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Exporter) Export(ctx context.Context, report Report) (result *ExportResult, err error) {
	began := time.Now()
	id := uuid.NewString()
	log := e.logger.With().Str("export_id", id).Str("title", report.Title).Logger()

	stage := StageValidate
	path, html := "", ""
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = e.fail(log, stage, path, html, fmt.Errorf("internal error: %v", r))
		}
	}()

	if e.validate {
		if err := report.Validate(); err != nil {
			return nil, e.fail(log, stage, path, html, err)
		}
	}

	stage = StageRender
	html, err = e.renderer.Render(report, e.now())
	if err != nil {
		return nil, e.fail(log, stage, path, html, err)
	}

	stage = StagePDF
	pdfCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	pdf, err := e.engine.Render(pdfCtx, html, e.page)
	if err != nil {
		return nil, e.fail(log, stage, path, html, err)
	}

	stage = StageWrite
	path = filepath.Join(e.outputDir, outputName(report.Title, id))
	size, err := fileutil.WriteFileAtomic(path, bytes.NewReader(pdf), 0o644)
	if err != nil {
		return nil, e.fail(log, stage, "", html, fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err))
	}
	log.Debug().Str("path", path).Int64("bytes", size).Msg("pdf written")

	stage = StageShare
	if !e.sharer.Available(ctx) {
		log.Warn().Str("path", path).Msg("sharing unavailable")
		e.notifier.Notify(NoticeUnavailable, NoticeTitle, MessageUnavailable)
		return nil, &ExportError{Kind: KindUnavailable, Stage: stage, Path: path, HTML: html, Err: ErrShareUnavailable}
	}
	if err := e.sharer.Share(ctx, path, shareOptionsFor(report.Title)); err != nil {
		return nil, e.fail(log, stage, path, html, err)
	}

	elapsed := time.Since(began)
	log.Info().Str("path", path).Int64("bytes", size).Dur("duration", elapsed).Msg("report exported")

	return &ExportResult{
		ID:       id,
		Path:     path,
		HTML:     html,
		PDFSize:  size,
		Duration: elapsed,
	}, nil
}

// fail logs err, shows the generic failure notice and wraps err.
func (e *Exporter) fail(log zerolog.Logger, stage Stage, path, html string, err error) error {
	ev := log.Error().Err(err).Str("stage", string(stage))
	if path != "" {
		ev = ev.Str("path", path)
	}
	ev.Msg("export failed")

	e.notifier.Notify(NoticeFailure, NoticeTitle, MessageFailure)
	return &ExportError{Kind: KindFailure, Stage: stage, Path: path, HTML: html, Err: err}
}

// outputName builds "<slug>-<first 8 hex of id>.pdf".
func outputName(title, id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fileutil.Slugify(title) + "-" + short + ".pdf"
}

// Renderer returns the Exporter's renderer, for HTML-only output.
func (e *Exporter) Renderer() *Renderer {
	return e.renderer
}

// Close releases the PDF engine. Safe to call more than once.
func (e *Exporter) Close() error {
	e.closeOnce.Do(func() {
		if e.engine != nil {
			e.closeErr = e.engine.Close()
		}
	})
	return e.closeErr
}
