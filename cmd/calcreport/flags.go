package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// Sentinels mark numeric flags left unset, since 0 is a valid value for
// each of them.
const (
	unsetAngle   = -999.0
	unsetMargin  = -1.0
	unsetOpacity = -1.0
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logJSON bool
}

// brandFlags holds header and footer identity flags.
type brandFlags struct {
	name    string
	initial string
	caption string
	color   string
}

// watermarkFlags holds watermark-related flags.
type watermarkFlags struct {
	text     string
	color    string
	opacity  float64
	angle    float64
	disabled bool
}

// appearanceFlags holds everything that changes the rendered document.
type appearanceFlags struct {
	layout    string
	columns   int
	logoStyle string
	pageSize  string
	margin    float64
	date      string
	assetPath string
	brand     brandFlags
	watermark watermarkFlags
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common     commonFlags
	appearance appearanceFlags
	output     string
	workers    int
	timeout    string
	engine     string
	share      string
	shareDir   string
	html       bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common     commonFlags
	appearance appearanceFlags
	output     string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging and timings")
	fs.BoolVar(&f.logJSON, "log-json", false, "log as JSON lines")
}

func addBrandFlags(fs *flag.FlagSet, f *brandFlags) {
	fs.StringVar(&f.name, "brand-name", "", "header brand title")
	fs.StringVar(&f.initial, "brand-initial", "", "logo letter (default: first letter of name)")
	fs.StringVar(&f.caption, "brand-caption", "", "footer caption")
	fs.StringVar(&f.color, "brand-color", "", "accent colour (#rrggbb)")
}

func addWatermarkFlags(fs *flag.FlagSet, f *watermarkFlags) {
	fs.StringVar(&f.text, "wm-text", "", "watermark text")
	fs.StringVar(&f.color, "wm-color", "", "watermark colour (#rrggbb)")
	fs.Float64Var(&f.opacity, "wm-opacity", unsetOpacity, "watermark opacity (0.0-1.0)")
	fs.Float64Var(&f.angle, "wm-angle", unsetAngle, "watermark angle in degrees (-90-90)")
	fs.BoolVar(&f.disabled, "no-watermark", false, "disable watermark")
}

func addAppearanceFlags(fs *flag.FlagSet, f *appearanceFlags) {
	fs.StringVarP(&f.layout, "layout", "l", "", "layout preset: standard, compact")
	fs.IntVar(&f.columns, "columns", 0, "output section columns (1-4)")
	fs.StringVar(&f.logoStyle, "logo-style", "", "logo shape: square, round")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: a4, letter, legal")
	fs.Float64Var(&f.margin, "margin", unsetMargin, "page margin in mm (0-50)")
	fs.StringVar(&f.date, "date", "", "header date: \"auto\", \"auto:FORMAT\" or literal")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding report.css/report.html")
	addBrandFlags(fs, &f.brand)
	addWatermarkFlags(fs, &f.watermark)
}

// newExportFlagSet registers every export flag on a fresh FlagSet.
func newExportFlagSet(f *exportFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel exports (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF timeout per report (e.g. 30s, 2m)")
	fs.StringVar(&f.engine, "engine", "", "PDF engine: rod, chromedp")
	fs.StringVar(&f.share, "share", "", "share mode: open, dir, none")
	fs.StringVar(&f.shareDir, "share-dir", "", "target directory for --share dir")
	fs.BoolVar(&f.html, "html", false, "also write the HTML next to each PDF")

	addCommonFlags(fs, &f.common)
	addAppearanceFlags(fs, &f.appearance)

	fs.Usage = func() { printExportUsage(usage) }
	return fs
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, usage io.Writer) (*exportFlags, []string, error) {
	f := &exportFlags{}
	fs := newExportFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVarP(&f.output, "output", "o", "", "HTML file (default: stdout)")
	addCommonFlags(fs, &f.common)
	addAppearanceFlags(fs, &f.appearance)

	fs.Usage = func() { printRenderUsage(usage) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
