// Package calcreport renders calculation results into a one-page A4 report
// and exports it as a PDF using headless Chrome.
//
// # Quick Start
//
// Build an exporter, export a report, and close when done:
//
//	exp, err := calcreport.NewExporter(
//	    calcreport.WithOutputDir("reports"),
//	    calcreport.WithNotifier(calcreport.NewWriterNotifier(os.Stderr)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exp.Close()
//
//	res, err := exp.Export(ctx, calcreport.Report{
//	    Title: "Cooling Load",
//	    Sections: []calcreport.Section{{
//	        Title: "Zone A",
//	        Items: []calcreport.Item{{Label: "Sensible Heat", Value: "1200", Unit: "W"}},
//	    }},
//	})
//
// # Pipeline
//
//  1. Report validation (title, field lengths), with WithValidation only
//  2. HTML rendering with html/template (Renderer)
//  3. PDF printing via an Engine (go-rod by default, chromedp as alternative)
//  4. Atomic write to <outputDir>/<slug>-<id>.pdf
//  5. Hand-off to a Sharer (desktop opener, directory copy)
//
// Failures reach the Notifier as one of two notices: MessageUnavailable
// when the PDF exists but no share facility is present, MessageFailure for
// everything else. The returned *ExportError carries the matching Kind.
//
// # Rendering only
//
// Renderer needs no browser and is deterministic for a given report and
// time:
//
//	r, _ := calcreport.NewRenderer(calcreport.WithLayout(calcreport.CompactLayout()))
//	html, err := r.Render(report, time.Now())
//
// # Parallel Processing
//
// ExporterPool bounds the number of browsers for batch exports:
//
//	pool := calcreport.NewExporterPool(calcreport.ResolvePoolSize(0), opts...)
//	defer pool.Close()
//
//	exp, err := pool.Acquire()
//	defer pool.Release(exp)
//
// # Custom Assets
//
// A directory holding styles/report.css or templates/report.html overrides
// the built-in asset of the same name:
//
//	r, err := calcreport.NewRenderer(calcreport.WithAssetPath("./brand"))
package calcreport
