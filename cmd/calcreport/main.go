package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "export":
		return runExportCmd(ctx, rest, env)
	case "render":
		return runRenderCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "calcreport %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	}

	// "calcreport report.yaml" is shorthand for "calcreport export report.yaml".
	if looksLikePayload(cmd) {
		return runExportCmd(ctx, args[1:], env)
	}

	fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// looksLikePayload reports whether arg names a payload file or stdin.
func looksLikePayload(arg string) bool {
	if arg == "-" {
		return true
	}
	_, ok := payloadExtensions[strings.ToLower(filepath.Ext(arg))]
	return ok
}

// setMaxProcs aligns GOMAXPROCS with the container CPU quota before the
// pool is sized. maxprocs.Set only fails on an invalid GOMAXPROCS variable,
// in which case the runtime default stays.
func setMaxProcs(logger zerolog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug().Msgf(format, args...)
	}))
}
