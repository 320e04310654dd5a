package calcreport_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-calcreport"
)

var coolingLoad = calcreport.Report{
	Title: "Cooling Load",
	FinalResults: []calcreport.Result{
		{Label: "Total Load", Value: "2.1", Unit: "kW"},
	},
	Sections: []calcreport.Section{{
		Title: "Zone A",
		Items: []calcreport.Item{
			{Label: "Sensible Heat", Value: "1200", Unit: "W"},
			{Label: "Latent Heat", Value: "900", Unit: "W", IsHighlighted: true},
		},
	}},
}

// Example renders a report to HTML. No browser is involved.
func Example() {
	r, err := calcreport.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	html, err := r.Render(coolingLoad, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(html, "1200 W") && strings.Contains(html, "3/7/2026") {
		fmt.Println("HTML generated successfully")
	}
	// Output: HTML generated successfully
}

// Example_compact uses the compact preset with custom branding.
func Example_compact() {
	layout, err := calcreport.LayoutByName("compact")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	r, err := calcreport.NewRenderer(
		calcreport.WithLayout(layout),
		calcreport.WithBranding(calcreport.Branding{Name: "Nordic Air", Color: "#0f766e"}),
		calcreport.WithWatermark(calcreport.Watermark{}),
		calcreport.WithDateFormat("auto:long"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	html, err := r.Render(coolingLoad, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.Contains(html, "Nordic Air"))
	fmt.Println(strings.Contains(html, "March 7, 2026"))
	fmt.Println(strings.Contains(html, `class="watermark"`))
	// Output:
	// true
	// true
	// false
}

// ExampleReport_Validate shows the payload checks enabled by WithValidation.
func ExampleReport_Validate() {
	r := calcreport.Report{Title: "   "}
	err := r.Validate()
	fmt.Println(errors.Is(err, calcreport.ErrEmptyTitle))
	// Output: true
}

// ExampleNewExporter exports a PDF into ./reports and opens it. Requires
// Chrome, so it has no Output and is compiled but not run.
func ExampleNewExporter() {
	exp, err := calcreport.NewExporter(
		calcreport.WithOutputDir("reports"),
		calcreport.WithNotifier(calcreport.NewWriterNotifier(os.Stderr)),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer exp.Close()

	res, err := exp.Export(context.Background(), coolingLoad)
	switch {
	case calcreport.IsUnavailable(err):
		var ee *calcreport.ExportError
		errors.As(err, &ee)
		fmt.Println("saved, not shared:", ee.Path)
	case err != nil:
		fmt.Println("error:", err)
	default:
		fmt.Println("exported:", res.Path)
	}
}

// ExampleExporterPool exports several reports in parallel. Requires Chrome.
func ExampleExporterPool() {
	pool := calcreport.NewExporterPool(calcreport.ResolvePoolSize(0),
		calcreport.WithSharer(calcreport.NopSharer{}),
		calcreport.WithOutputDir("reports"),
	)
	defer pool.Close()

	titles := []string{"Zone A", "Zone B", "Zone C"}
	var wg sync.WaitGroup
	for _, title := range titles {
		wg.Add(1)
		go func() {
			defer wg.Done()

			exp, err := pool.Acquire()
			if err != nil {
				fmt.Println("error:", err)
				return
			}
			defer pool.Release(exp)

			report := coolingLoad
			report.Title = title
			// NopSharer leaves the PDF in place and reports it as unshared.
			if _, err := exp.Export(context.Background(), report); err != nil && !calcreport.IsUnavailable(err) {
				fmt.Println("error:", err)
			}
		}()
	}
	wg.Wait()
}
