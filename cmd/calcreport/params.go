package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-calcreport"
	"github.com/alnah/go-calcreport/internal/config"
	"github.com/alnah/go-calcreport/internal/fileutil"
	"github.com/alnah/go-calcreport/internal/hints"
)

// Share modes accepted by --share and share.mode.
const (
	shareOpen = "open"
	shareDir  = "dir"
	shareNone = "none"
)

// resolveConfig loads the config named by --config or CALCREPORT_CONFIG,
// falling back to env.Config, then applies CALCREPORT_* overrides. The
// returned config is a copy the caller may modify.
func resolveConfig(flagConfig string, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configSearchPaths(name)))
		}
		cfg = loaded
	} else {
		base := env.Config
		if base == nil {
			base = config.DefaultConfig()
		}
		c := *base
		cfg = &c
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// configSearchPaths lists where a named config would be looked up, for the
// not-found hint.
func configSearchPaths(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, config.AppDir, name+".yaml"))
	}
	return paths
}

// mergeFlags merges appearance flags into config. CLI values override
// config values.
func mergeFlags(f *appearanceFlags, cfg *config.Config) {
	if f.layout != "" {
		cfg.Layout.Preset = f.layout
	}
	if f.columns != 0 {
		cfg.Layout.Columns = f.columns
	}
	if f.logoStyle != "" {
		cfg.Layout.LogoStyle = f.logoStyle
	}

	if f.pageSize != "" {
		cfg.Page.Size = f.pageSize
	}
	if f.margin != unsetMargin {
		cfg.Page.Margin = f.margin
	}

	if f.date != "" {
		cfg.Date.Format = f.date
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}

	// Brand flags
	if f.brand.name != "" {
		cfg.Brand.Name = f.brand.name
	}
	if f.brand.initial != "" {
		cfg.Brand.Initial = f.brand.initial
	}
	if f.brand.caption != "" {
		cfg.Brand.Caption = f.brand.caption
	}
	if f.brand.color != "" {
		cfg.Brand.Color = f.brand.color
	}

	// Watermark flags
	if f.watermark.text != "" {
		cfg.Watermark.Text = f.watermark.text
		cfg.Watermark.Disabled = false
	}
	if f.watermark.color != "" {
		cfg.Watermark.Color = f.watermark.color
	}
	if f.watermark.opacity != unsetOpacity {
		cfg.Watermark.Opacity = f.watermark.opacity
	}
	if f.watermark.angle != unsetAngle {
		cfg.Watermark.Angle = f.watermark.angle
	}
	if f.watermark.disabled {
		cfg.Watermark.Disabled = true
	}
}

// mergeExportFlags merges every export flag into config, then validates
// the result.
func mergeExportFlags(f *exportFlags, cfg *config.Config) error {
	mergeFlags(&f.appearance, cfg)

	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.workers != 0 {
		cfg.Engine.Workers = f.workers
	}
	if f.timeout != "" {
		cfg.Engine.Timeout = f.timeout
	}
	if f.engine != "" {
		cfg.Engine.Name = f.engine
	}
	if f.share != "" {
		cfg.Share.Mode = f.share
	}
	if f.shareDir != "" {
		cfg.Share.Dir = f.shareDir
		// --share-dir alone implies --share dir.
		if f.share == "" {
			cfg.Share.Mode = shareDir
		}
	}

	return cfg.Validate()
}

// buildPageSettings creates calcreport.PageSettings from config.
func buildPageSettings(cfg *config.Config) (calcreport.PageSettings, error) {
	p := calcreport.DefaultPageSettings()
	if cfg.Page.Size != "" {
		p.Size = strings.ToLower(cfg.Page.Size)
	}
	p.MarginMM = cfg.Page.Margin
	if err := p.Validate(); err != nil {
		return calcreport.PageSettings{}, err
	}
	return p, nil
}

// buildLayout starts from the named preset and applies the non-zero grid
// overrides.
func buildLayout(cfg *config.Config) (calcreport.Layout, error) {
	l, err := calcreport.LayoutByName(cfg.Layout.Preset)
	if err != nil {
		return calcreport.Layout{}, err
	}
	if cfg.Layout.Columns != 0 {
		l.Columns = cfg.Layout.Columns
	}
	if cfg.Layout.HeadlineColumns != 0 {
		l.HeadlineColumns = cfg.Layout.HeadlineColumns
	}
	if cfg.Layout.InputColumns != 0 {
		l.InputColumns = cfg.Layout.InputColumns
	}
	if cfg.Layout.LogoStyle != "" {
		l.LogoStyle = calcreport.LogoStyle(cfg.Layout.LogoStyle)
	}
	return l, l.Validate()
}

// buildWatermark returns the zero Watermark when disabled, which the
// renderer reads as "no watermark".
func buildWatermark(cfg *config.Config) calcreport.Watermark {
	if cfg.Watermark.Disabled {
		return calcreport.Watermark{}
	}
	text := cfg.Watermark.Text
	if text == "" {
		text = calcreport.DefaultWatermarkText
	}
	return calcreport.Watermark{
		Text:    text,
		Color:   cfg.Watermark.Color,
		Opacity: cfg.Watermark.Opacity,
		Angle:   cfg.Watermark.Angle,
	}
}

// buildRendererOptions translates config into renderer options.
func buildRendererOptions(cfg *config.Config) ([]calcreport.RendererOption, error) {
	layout, err := buildLayout(cfg)
	if err != nil {
		return nil, err
	}
	page, err := buildPageSettings(cfg)
	if err != nil {
		return nil, err
	}

	opts := []calcreport.RendererOption{
		calcreport.WithLayout(layout),
		calcreport.WithRenderPage(page),
		calcreport.WithBranding(calcreport.Branding{
			Name:    cfg.Brand.Name,
			Initial: cfg.Brand.Initial,
			Caption: cfg.Brand.Caption,
			Color:   cfg.Brand.Color,
		}),
		calcreport.WithWatermark(buildWatermark(cfg)),
	}
	if cfg.Date.Format != "" {
		opts = append(opts, calcreport.WithDateFormat(cfg.Date.Format))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, calcreport.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts, nil
}

// buildSharer picks the sharer for share.mode. env.Sharer wins when set.
func buildSharer(cfg *config.Config, env *Environment) calcreport.Sharer {
	if env.Sharer != nil {
		return env.Sharer
	}
	switch cfg.Share.Mode {
	case shareDir:
		return &calcreport.DirSharer{Dir: cfg.Share.Dir}
	case shareNone:
		return calcreport.NopSharer{}
	default:
		return calcreport.NewOpenSharer()
	}
}

// buildNotifier prints notices to w. With share mode none an unshared PDF
// is the expected outcome, so that notice is dropped.
func buildNotifier(cfg *config.Config, w io.Writer) calcreport.Notifier {
	out := calcreport.NewWriterNotifier(w)
	if cfg.Share.Mode != shareNone {
		return out
	}
	return calcreport.NotifierFunc(func(kind calcreport.NoticeKind, title, message string) {
		if kind == calcreport.NoticeUnavailable {
			return
		}
		out.Notify(kind, title, message)
	})
}

// buildExporterOptions assembles the options shared by every exporter of
// the pool.
func buildExporterOptions(cfg *config.Config, env *Environment, logger zerolog.Logger) ([]calcreport.ExporterOption, error) {
	ropts, err := buildRendererOptions(cfg)
	if err != nil {
		return nil, err
	}
	page, err := buildPageSettings(cfg)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.Engine.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	opts := []calcreport.ExporterOption{
		calcreport.WithRendererOptions(ropts...),
		calcreport.WithPageSettings(page),
		calcreport.WithOutputDir(cfg.Output.Dir),
		calcreport.WithSharer(buildSharer(cfg, env)),
		calcreport.WithNotifier(buildNotifier(cfg, env.Stderr)),
		calcreport.WithLogger(logger),
	}
	if env.Now != nil {
		opts = append(opts, calcreport.WithClock(env.Now))
	}
	if env.Engine != nil {
		opts = append(opts, calcreport.WithEngine(env.Engine))
	} else {
		opts = append(opts, calcreport.WithEngineName(cfg.Engine.Name))
	}
	if timeout > 0 {
		opts = append(opts, calcreport.WithTimeout(timeout))
	}
	return opts, nil
}
