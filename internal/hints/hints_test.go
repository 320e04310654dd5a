package hints

// Notes:
// - ForBrowserConnect tests are not parallel: they use t.Setenv and swap
//   the package-level IsInContainer.

import (
	"runtime"
	"strings"
	"testing"
)

func withContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func clearCI(t *testing.T) {
	t.Helper()
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(name, "")
	}
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		ci          bool
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{name: "ci suggests sandbox and bin", ci: true, wantSandbox: true, wantBin: true},
		{name: "container suggests sandbox", container: true, wantSandbox: true, wantBin: true},
		{name: "sandbox already disabled", container: true, noSandbox: "1", wantBin: true},
		{name: "desktop with custom bin", browserBin: "/usr/bin/chromium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withContainer(t, tt.container)
			clearCI(t)
			if tt.ci {
				t.Setenv("CI", "true")
			}
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", hint)
			}
			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX mentioned = %v, want %v (%q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN mentioned = %v, want %v (%q)", got, tt.wantBin, hint)
			}
			if !strings.Contains(hint, "calcreport doctor") {
				t.Errorf("hint %q does not mention doctor", hint)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	got := ForConfigNotFound([]string{"brand.yaml", "/home/u/.config/go-calcreport/brand.yaml"})
	if !strings.Contains(got, "or create /home/u/.config/go-calcreport/brand.yaml") {
		t.Errorf("hint = %q", got)
	}

	got = ForConfigNotFound(nil)
	if strings.Contains(got, "or create") {
		t.Errorf("hint = %q, want no create suggestion", got)
	}
}

func TestForShareUnavailable(t *testing.T) {
	t.Parallel()

	want := map[string]string{"darwin": "open", "windows": "rundll32"}[runtime.GOOS]
	if want == "" {
		want = "xdg-open"
	}
	got := ForShareUnavailable()
	if !strings.Contains(got, want) || !strings.Contains(got, "--share dir") {
		t.Errorf("hint = %q", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for _, h := range []string{ForTimeout(), ForPayload()} {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint %q missing prefix", h)
		}
	}
	if format("") != "" || join(nil) != "" {
		t.Error("empty hints should render as empty strings")
	}
}
