package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-calcreport/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // CALCREPORT_CONFIG: config file path
	Timeout    time.Duration // CALCREPORT_TIMEOUT: PDF generation timeout
	Engine     string        // CALCREPORT_ENGINE: rod, chromedp

	// Tier 2 - I/O and sharing
	OutputDir string // CALCREPORT_OUTPUT_DIR: where PDFs are written
	Share     string // CALCREPORT_SHARE: open, dir, none
	ShareDir  string // CALCREPORT_SHARE_DIR: target for share mode dir
	Workers   int    // CALCREPORT_WORKERS: parallel exports

	// Tier 3 - Appearance
	Layout        string // CALCREPORT_LAYOUT: standard, compact
	PageSize      string // CALCREPORT_PAGE_SIZE: a4, letter, legal
	BrandName     string // CALCREPORT_BRAND_NAME: header title
	WatermarkText string // CALCREPORT_WATERMARK_TEXT: watermark text
	AssetPath     string // CALCREPORT_ASSET_PATH: template and style overrides
}

// knownEnvVars lists valid CALCREPORT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CALCREPORT_CONFIG":         true,
	"CALCREPORT_TIMEOUT":        true,
	"CALCREPORT_ENGINE":         true,
	"CALCREPORT_OUTPUT_DIR":     true,
	"CALCREPORT_SHARE":          true,
	"CALCREPORT_SHARE_DIR":      true,
	"CALCREPORT_WORKERS":        true,
	"CALCREPORT_LAYOUT":         true,
	"CALCREPORT_PAGE_SIZE":      true,
	"CALCREPORT_BRAND_NAME":     true,
	"CALCREPORT_WATERMARK_TEXT": true,
	"CALCREPORT_ASSET_PATH":     true,
	// Read by doctor only.
	"CALCREPORT_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("CALCREPORT_CONFIG"),
		Engine:        os.Getenv("CALCREPORT_ENGINE"),
		OutputDir:     os.Getenv("CALCREPORT_OUTPUT_DIR"),
		Share:         os.Getenv("CALCREPORT_SHARE"),
		ShareDir:      os.Getenv("CALCREPORT_SHARE_DIR"),
		Layout:        os.Getenv("CALCREPORT_LAYOUT"),
		PageSize:      os.Getenv("CALCREPORT_PAGE_SIZE"),
		BrandName:     os.Getenv("CALCREPORT_BRAND_NAME"),
		WatermarkText: os.Getenv("CALCREPORT_WATERMARK_TEXT"),
		AssetPath:     os.Getenv("CALCREPORT_ASSET_PATH"),
	}

	if timeout := os.Getenv("CALCREPORT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("CALCREPORT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CALCREPORT_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CALCREPORT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig copies every set variable over the loaded config.
// Resulting priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Timeout > 0 {
		cfg.Engine.Timeout = env.Timeout.String()
	}
	if env.Engine != "" {
		cfg.Engine.Name = env.Engine
	}
	if env.Workers > 0 {
		cfg.Engine.Workers = env.Workers
	}

	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Share != "" {
		cfg.Share.Mode = env.Share
	}
	if env.ShareDir != "" {
		cfg.Share.Dir = env.ShareDir
	}

	if env.Layout != "" {
		cfg.Layout.Preset = env.Layout
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.BrandName != "" {
		cfg.Brand.Name = env.BrandName
	}
	// A watermark text re-enables a watermark the file disabled.
	if env.WatermarkText != "" {
		cfg.Watermark.Text = env.WatermarkText
		cfg.Watermark.Disabled = false
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
