package calcreport

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/alnah/go-calcreport/internal/assets"
	"github.com/alnah/go-calcreport/internal/dateutil"
	"github.com/alnah/go-calcreport/internal/logo"
	"github.com/alnah/go-calcreport/internal/notes"
)

// Renderer turns a Report into a self-contained HTML document. Everything
// that does not depend on the report (stylesheet, logo, template) is
// prepared once by NewRenderer, so Render is a pure function of its inputs.
// A Renderer is safe for concurrent use.
type Renderer struct {
	tmpl       *template.Template
	style      template.CSS
	logoURI    template.URL
	branding   Branding
	watermark  Watermark
	dateFormat string
	notes      *notes.Converter
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	layout      Layout
	branding    Branding
	watermark   Watermark
	page        PageSettings
	dateFormat  string
	assetPath   string
	assetLoader AssetLoader
}

// WithLayout sets the grid and density preset.
func WithLayout(l Layout) RendererOption {
	return func(c *rendererConfig) {
		c.layout = l
	}
}

// WithBranding overrides the header and footer identity. Empty fields keep
// their defaults.
func WithBranding(b Branding) RendererOption {
	return func(c *rendererConfig) {
		c.branding = b
	}
}

// WithWatermark replaces the watermark. A zero Text disables it.
func WithWatermark(w Watermark) RendererOption {
	return func(c *rendererConfig) {
		c.watermark = w
	}
}

// WithDateFormat sets the header date: "auto", "auto:PATTERN" or a literal
// string printed as is.
func WithDateFormat(format string) RendererOption {
	return func(c *rendererConfig) {
		c.dateFormat = format
	}
}

// WithRenderPage sets the page size and margins written into @page.
func WithRenderPage(p PageSettings) RendererOption {
	return func(c *rendererConfig) {
		c.page = p
	}
}

// WithAssetPath loads report.html and report.css from dir when present,
// falling back to the built-in assets.
func WithAssetPath(dir string) RendererOption {
	return func(c *rendererConfig) {
		c.assetPath = dir
	}
}

// WithAssetLoader uses a custom AssetLoader. Takes precedence over
// WithAssetPath.
func WithAssetLoader(l AssetLoader) RendererOption {
	return func(c *rendererConfig) {
		c.assetLoader = l
	}
}

// NewRenderer validates the options and prepares the template.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	cfg := rendererConfig{
		layout:     StandardLayout(),
		branding:   DefaultBranding(),
		watermark:  DefaultWatermark(),
		page:       DefaultPageSettings(),
		dateFormat: dateutil.Auto,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.layout.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.page.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.branding.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.watermark.Validate(); err != nil {
		return nil, err
	}
	if _, err := dateutil.Resolve(cfg.dateFormat, time.Time{}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	loader, err := cfg.resolveLoader()
	if err != nil {
		return nil, err
	}

	src, err := loader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading report template: %w", err)
	}
	tmpl, err := template.New(assets.DefaultTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing template: %v", ErrRender, err)
	}

	baseCSS, err := loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading report style: %w", err)
	}

	branding := cfg.branding.withDefaults()
	brandColor := mustColor(branding.Color)
	markColor := brandColor
	if cfg.watermark.Color != "" {
		markColor = mustColor(cfg.watermark.Color)
	}

	logoURI, err := logo.DataURI(logo.Params{Initial: branding.Initial, Background: brandColor})
	if err != nil {
		return nil, fmt.Errorf("%w: logo: %v", ErrRender, err)
	}

	// Generated rules come after the stylesheet so they win on equal
	// specificity.
	style := baseCSS +
		buildPageCSS(cfg.page) +
		buildLayoutCSS(cfg.layout, brandColor) +
		buildWatermarkCSS(cfg.watermark, markColor)

	return &Renderer{
		tmpl:       tmpl,
		style:      template.CSS(style),   // #nosec G203 -- assembled from trusted assets and validated values
		logoURI:    template.URL(logoURI), // #nosec G203 -- generated data URI
		branding:   branding,
		watermark:  cfg.watermark,
		dateFormat: cfg.dateFormat,
		notes:      notes.NewConverter(),
	}, nil
}

func (c *rendererConfig) resolveLoader() (AssetLoader, error) {
	if c.assetLoader != nil {
		return c.assetLoader, nil
	}
	resolver, err := assets.NewAssetResolver(c.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver, nil
}

// Render produces the HTML document for report, dated at. The same report
// and time always give the same bytes. With the built-in template the only
// failure is notes longer than MaxNotesLength.
func (r *Renderer) Render(report Report, at time.Time) (string, error) {
	data, err := r.view(report, at)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}

// reportView is what the template sees. Values are already joined with
// their units.
type reportView struct {
	Title        string
	Style        template.CSS
	LogoURI      template.URL
	BrandName    string
	BrandInitial string
	Caption      string
	Date         string
	Watermark    string
	FinalResults []rowView
	Sections     []groupView
	HasInputs    bool
	Inputs       []groupView
	Notes        template.HTML
}

type groupView struct {
	Title string
	Rows  []rowView
}

type rowView struct {
	Label       string
	Value       string
	Highlighted bool
}

func (r *Renderer) view(report Report, at time.Time) (*reportView, error) {
	date, err := dateutil.Resolve(r.dateFormat, at)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	notesHTML, err := r.notes.Convert(report.Notes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	v := &reportView{
		Title:        report.Title,
		Style:        r.style,
		LogoURI:      r.logoURI,
		BrandName:    r.branding.Name,
		BrandInitial: r.branding.Initial,
		Caption:      r.branding.Caption,
		Date:         date,
		Watermark:    r.watermark.Text,
		HasInputs:    report.Inputs != nil,
		Notes:        notesHTML,
	}

	for _, res := range report.FinalResults {
		v.FinalResults = append(v.FinalResults, rowView{Label: res.Label, Value: joinValue(res.Value, res.Unit)})
	}

	v.Sections = make([]groupView, 0, len(report.Sections))
	for _, s := range report.Sections {
		g := groupView{Title: s.Title, Rows: make([]rowView, 0, len(s.Items))}
		for _, it := range s.Items {
			g.Rows = append(g.Rows, rowView{
				Label:       it.Label,
				Value:       joinValue(it.Value, it.Unit),
				Highlighted: it.IsHighlighted,
			})
		}
		v.Sections = append(v.Sections, g)
	}

	v.Inputs = make([]groupView, 0, len(report.Inputs))
	for _, in := range report.Inputs {
		g := groupView{Title: in.Title, Rows: make([]rowView, 0, len(in.Items))}
		for _, it := range in.Items {
			g.Rows = append(g.Rows, rowView{Label: it.Label, Value: joinValue(it.Value, it.Unit)})
		}
		v.Inputs = append(v.Inputs, g)
	}

	return v, nil
}
