// Package hints appends actionable advice to CLI error messages.
// Every hint renders as "\n  hint: <text>".
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-calcreport/internal/fileutil"
)

// IsInContainer detects Docker-like environments through /.dockerenv.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a well-known CI variable is set.
func inCI() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect explains how to get Chrome running for the PDF engine.
func ForBrowserConnect() string {
	var hints []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'calcreport doctor' to diagnose")

	return join(hints)
}

// ForTimeout suggests a longer engine timeout.
func ForTimeout() string {
	return format("large reports may need --timeout 2m")
}

// ForConfigNotFound points at --config and the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-calcreport") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForShareUnavailable names the opener the platform needs and the fallback.
func ForShareUnavailable() string {
	opener := "xdg-open"
	switch runtime.GOOS {
	case "darwin":
		opener = "open"
	case "windows":
		opener = "rundll32"
	}
	return format("install " + opener + " or use --share dir -o <directory>")
}

// ForPayload reminds the user of the accepted payload shape.
func ForPayload() string {
	return format("payload must be YAML or JSON with title and sections keys")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func join(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
