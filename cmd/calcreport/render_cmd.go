package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-calcreport"
	"github.com/alnah/go-calcreport/internal/config"
)

// ErrWriteHTML reports a failure to store rendered HTML.
var ErrWriteHTML = errors.New("failed to write HTML file")

// runRenderCmd renders one payload to HTML without starting a browser.
func runRenderCmd(args []string, env *Environment) int {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}
	if len(positional) > 1 {
		fmt.Fprintln(env.Stderr, "error: render takes exactly one payload")
		return ExitUsage
	}

	if err := runRender(positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runRender writes the HTML to flags.output, or to stdout when unset.
func runRender(positional []string, flags *renderFlags, env *Environment) error {
	cfg, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeFlags(&flags.appearance, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths, err := discoverPayloads(positional)
	if err != nil {
		return err
	}
	report, err := readPayload(paths[0], env.Stdin)
	if err != nil {
		return err
	}

	html, err := renderHTML(cfg, report, env)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := io.WriteString(env.Stdout, html)
		return err
	}
	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(flags.output, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "%s -> %s\n", displayName(paths[0]), flags.output)
	}
	return nil
}

func renderHTML(cfg *config.Config, report calcreport.Report, env *Environment) (string, error) {
	opts, err := buildRendererOptions(cfg)
	if err != nil {
		return "", err
	}
	r, err := calcreport.NewRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(report, env.now())
}
