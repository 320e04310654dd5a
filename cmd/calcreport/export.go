package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-calcreport"
	"github.com/alnah/go-calcreport/internal/config"
	"github.com/alnah/go-calcreport/internal/hints"
)

// filePermissions is used for HTML written next to a PDF.
const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// Pool abstracts exporter pool operations for testability.
type Pool interface {
	Acquire() (*calcreport.Exporter, error)
	Release(*calcreport.Exporter)
	Size() int
}

// Compile-time interface implementation check.
var _ Pool = (*calcreport.ExporterPool)(nil)

// exportOutcome holds the result of exporting one payload.
type exportOutcome struct {
	Source   string
	Path     string // written PDF, also set when sharing was unavailable
	HTMLPath string
	Err      error
	Duration time.Duration
}

// runExportCmd parses flags, runs the export and returns an exit code.
func runExportCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	logger := newLogger(env.Stderr, flags.common)
	setMaxProcs(logger)

	outcomes, cfg, err := runExport(ctx, positional, flags, env, logger)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return printResults(outcomes, cfg, flags.common, env)
}

// runExport resolves configuration, builds the pool and exports every
// payload. The returned error covers setup only; per-payload failures are
// in the outcomes.
func runExport(ctx context.Context, positional []string, flags *exportFlags, env *Environment, logger zerolog.Logger) ([]exportOutcome, *config.Config, error) {
	cfg, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return nil, nil, err
	}
	if err := mergeExportFlags(flags, cfg); err != nil {
		return nil, nil, err
	}

	paths, err := discoverPayloads(positional)
	if err != nil {
		return nil, nil, err
	}

	opts, err := buildExporterOptions(cfg, env, logger)
	if err != nil {
		return nil, nil, err
	}

	size := min(calcreport.ResolvePoolSize(cfg.Engine.Workers), len(paths))
	pool := calcreport.NewExporterPool(size, opts...)
	defer pool.Close()

	logger.Debug().Int("payloads", len(paths)).Int("workers", size).Msg("starting export")

	return exportBatch(ctx, pool, paths, flags.html, env), cfg, nil
}

// exportBatch exports payloads concurrently, at most pool.Size() at a time.
// Outcomes keep the order of paths.
func exportBatch(ctx context.Context, pool Pool, paths []string, writeHTML bool, env *Environment) []exportOutcome {
	outcomes := make([]exportOutcome, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(pool.Size())
	for i, path := range paths {
		g.Go(func() error {
			outcomes[i] = exportOne(ctx, pool, path, writeHTML, env)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// exportOne reads one payload and exports it with an exporter from pool.
func exportOne(ctx context.Context, pool Pool, path string, writeHTML bool, env *Environment) exportOutcome {
	start := time.Now()
	out := exportOutcome{Source: displayName(path)}
	finish := func(err error) exportOutcome {
		out.Err = err
		out.Duration = time.Since(start)
		return out
	}

	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	report, err := readPayload(path, env.Stdin)
	if err != nil {
		return finish(err)
	}

	exp, err := pool.Acquire()
	if err != nil {
		return finish(err)
	}
	defer pool.Release(exp)

	var html string
	res, err := exp.Export(ctx, report)
	switch {
	case err == nil:
		out.Path, html = res.Path, res.HTML
	case calcreport.IsUnavailable(err):
		var ee *calcreport.ExportError
		errors.As(err, &ee)
		out.Path, html = ee.Path, ee.HTML
	default:
		return finish(err)
	}

	if writeHTML {
		htmlPath, herr := writeHTMLBeside(html, out.Path)
		if herr != nil {
			return finish(herr)
		}
		out.HTMLPath = htmlPath
	}

	return finish(err)
}

// writeHTMLBeside stores the HTML printed to pdfPath next to it.
func writeHTMLBeside(html, pdfPath string) (string, error) {
	htmlPath := strings.TrimSuffix(pdfPath, ".pdf") + ".html"
	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(htmlPath, []byte(html), filePermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	return htmlPath, nil
}

// printResults reports each outcome and returns the exit code. With share
// mode none an unshared PDF counts as success.
func printResults(outcomes []exportOutcome, cfg *config.Config, f commonFlags, env *Environment) int {
	errs := make([]error, 0, len(outcomes))
	var succeeded, failed int

	for _, o := range outcomes {
		err := o.Err
		if cfg.Share.Mode == shareNone && calcreport.IsUnavailable(err) {
			err = nil
		}
		errs = append(errs, err)

		switch {
		case err == nil:
			succeeded++
			if !f.quiet {
				fmt.Fprintf(env.Stdout, "%s -> %s", o.Source, o.Path)
				if f.verbose {
					fmt.Fprintf(env.Stdout, " (%s)", o.Duration.Round(time.Millisecond))
				}
				fmt.Fprintln(env.Stdout)
			}
		case calcreport.IsUnavailable(err):
			succeeded++
			fmt.Fprintf(env.Stderr, "warning: %s -> %s (not shared)%s\n", o.Source, o.Path, hintFor(err))
		default:
			failed++
			fmt.Fprintf(env.Stderr, "error: %s: %v%s\n", o.Source, err, hintFor(err))
		}
	}

	if len(outcomes) > 1 && !f.quiet {
		fmt.Fprintf(env.Stdout, "\n%d exported, %d failed\n", succeeded, failed)
	}

	return worstExitCode(errs)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case calcreport.IsUnavailable(err):
		return hints.ForShareUnavailable()
	case errors.Is(err, calcreport.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrInvalidPayload):
		return hints.ForPayload()
	default:
		return ""
	}
}
