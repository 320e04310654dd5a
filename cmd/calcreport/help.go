package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: calcreport <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Export calculation payloads to PDF and share them")
	fmt.Fprintln(w, "  render     Render one payload to HTML (no browser)")
	fmt.Fprintln(w, "  doctor     Check Chrome and the share opener")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'calcreport report.yaml' is short for 'calcreport export report.yaml'.")
	fmt.Fprintln(w, "Run 'calcreport help <command>' for details on a specific command.")
}

// printAppearanceUsage prints the flags shared by export and render.
func printAppearanceUsage(w io.Writer) {
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -l, --layout <s>          Preset: standard, compact")
	fmt.Fprintln(w, "      --columns <n>         Output section columns (1-4)")
	fmt.Fprintln(w, "      --logo-style <s>      Logo shape: square, round")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --margin <f>          Margin in mm (0-50)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Header and Footer:")
	fmt.Fprintln(w, "      --brand-name <s>      Header title")
	fmt.Fprintln(w, "      --brand-initial <s>   Logo letter")
	fmt.Fprintln(w, "      --brand-caption <s>   Footer caption")
	fmt.Fprintln(w, "      --brand-color <s>     Accent colour (#rrggbb)")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watermark:")
	fmt.Fprintln(w, "      --wm-text <s>         Watermark text (default: EXPO)")
	fmt.Fprintln(w, "      --wm-color <s>        Watermark color (hex)")
	fmt.Fprintln(w, "      --wm-opacity <f>      Watermark opacity (0.0-1.0)")
	fmt.Fprintln(w, "      --wm-angle <f>        Watermark angle in degrees")
	fmt.Fprintln(w, "      --no-watermark        Disable watermark")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with report.html / report.css overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging and timings")
	fmt.Fprintln(w, "      --log-json            Log as JSON lines")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: calcreport export <payload...> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export calculation payloads to PDF and share them.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  payload   YAML or JSON file, directory of payloads, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: system temp)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel exports (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF timeout per report (default: 30s)")
	fmt.Fprintln(w, "      --engine <s>          PDF engine: rod, chromedp")
	fmt.Fprintln(w, "      --share <s>           Share mode: open, dir, none")
	fmt.Fprintln(w, "      --share-dir <dir>     Target directory (implies --share dir)")
	fmt.Fprintln(w, "      --html                Also write the HTML next to each PDF")
	fmt.Fprintln(w)
	printAppearanceUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 ok, 1 general, 2 usage, 3 I/O, 4 browser, 5 written but not shared")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: calcreport render <payload> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one payload to HTML. No browser is started.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <file>       HTML file (default: stdout)")
	fmt.Fprintln(w)
	printAppearanceUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: calcreport doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, the share opener and the temp directory.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: calcreport version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: calcreport help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
