package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-calcreport/internal/dateutil"
	"github.com/alnah/go-calcreport/internal/fileutil"
	"github.com/alnah/go-calcreport/internal/yamlutil"
)

// AppDir is the directory name under the user config dir searched for
// named configs.
const AppDir = "go-calcreport"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxBrandNameLength      = 60   // Header brand title
	MaxInitialLength        = 2    // Logo glyphs
	MaxCaptionLength        = 200  // Footer caption
	MaxColorLength          = 7    // "#2563eb"
	MaxPageSizeLength       = 10   // "letter", "a4", "legal"
	MaxWatermarkTextLength  = 50   // "EXPO", "DRAFT"
	MaxPathLength           = 4096 // Output and asset directories
	MaxNameLength           = 20   // Enum-like values
	MaxDurationLength       = 20   // "30s", "2m"
	MaxDateFormatLength     = dateutil.MaxDateFormatLength + len("auto:")
	MaxWorkers              = 8
	MaxMarginMM             = 50.0
	MinColumns, MaxColumns  = 1, 4
	MinGridColumns          = 2
	DefaultEngineName       = "rod"
	DefaultShareMode        = "open"
	DefaultLayoutPreset     = "standard"
	DefaultWatermarkOpacity = 0.08
	DefaultWatermarkAngle   = -45.0
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Config holds all configuration for report generation.
type Config struct {
	Brand     BrandConfig     `yaml:"brand"`
	Layout    LayoutConfig    `yaml:"layout"`
	Page      PageConfig      `yaml:"page"`
	Watermark WatermarkConfig `yaml:"watermark"`
	Date      DateConfig      `yaml:"date"`
	Engine    EngineConfig    `yaml:"engine"`
	Share     ShareConfig     `yaml:"share"`
	Output    OutputConfig    `yaml:"output"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// BrandConfig overrides the report header and footer branding.
type BrandConfig struct {
	Name    string `yaml:"name"`    // Header title (default: "Enzo CoolCalc")
	Initial string `yaml:"initial"` // Logo glyph (default: first letter of name)
	Caption string `yaml:"caption"` // Footer caption
	Color   string `yaml:"color"`   // "#rrggbb" accent colour
}

// LayoutConfig selects a layout preset and optionally overrides its grids.
// Zero values keep the preset's setting.
type LayoutConfig struct {
	Preset          string `yaml:"preset"` // "standard" or "compact"
	Columns         int    `yaml:"columns"`
	HeadlineColumns int    `yaml:"headlineColumns"`
	InputColumns    int    `yaml:"inputColumns"`
	LogoStyle       string `yaml:"logoStyle"` // "square" or "round"
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size   string  `yaml:"size"`   // "a4", "letter", "legal" (default: "a4")
	Margin float64 `yaml:"margin"` // millimetres (default: 10)
}

// WatermarkConfig defines the diagonal background mark.
type WatermarkConfig struct {
	Disabled bool    `yaml:"disabled"`
	Text     string  `yaml:"text"`    // default: "EXPO"
	Color    string  `yaml:"color"`   // default: brand colour
	Opacity  float64 `yaml:"opacity"` // 0.0 to 1.0 (default: 0.08)
	Angle    float64 `yaml:"angle"`   // degrees (default: -45)
}

// DateConfig defines the header date.
type DateConfig struct {
	Format string `yaml:"format"` // "auto", "auto:iso", "auto:DD/MM/YYYY" or a literal date
}

// EngineConfig selects and tunes the PDF engine.
type EngineConfig struct {
	Name    string `yaml:"name"`    // "rod" or "chromedp"
	Timeout string `yaml:"timeout"` // Go duration, e.g. "30s"
	Workers int    `yaml:"workers"` // 0 = auto
}

// ShareConfig defines what happens to a finished PDF.
type ShareConfig struct {
	Mode string `yaml:"mode"` // "open", "dir" or "none"
	Dir  string `yaml:"dir"`  // target directory for mode "dir"
}

// OutputConfig defines where PDFs are written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty = system temp dir
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// TimeoutDuration parses Timeout. An empty value returns zero, meaning the
// library default.
func (e EngineConfig) TimeoutDuration() (time.Duration, error) {
	if e.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: engine.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: engine.timeout: must be positive, got %s", ErrInvalidValue, e.Timeout)
	}
	return d, nil
}

// Validate checks field lengths, enumerations and numeric ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"brand.name", c.Brand.Name, MaxBrandNameLength},
		{"brand.caption", c.Brand.Caption, MaxCaptionLength},
		{"brand.color", c.Brand.Color, MaxColorLength},
		{"layout.preset", c.Layout.Preset, MaxNameLength},
		{"layout.logoStyle", c.Layout.LogoStyle, MaxNameLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"watermark.text", c.Watermark.Text, MaxWatermarkTextLength},
		{"watermark.color", c.Watermark.Color, MaxColorLength},
		{"date.format", c.Date.Format, MaxDateFormatLength},
		{"engine.name", c.Engine.Name, MaxNameLength},
		{"engine.timeout", c.Engine.Timeout, MaxDurationLength},
		{"share.mode", c.Share.Mode, MaxNameLength},
		{"share.dir", c.Share.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	if n := len([]rune(c.Brand.Initial)); n > MaxInitialLength {
		return fmt.Errorf("%w: brand.initial (%d chars, max %d)", ErrFieldTooLong, n, MaxInitialLength)
	}

	if err := validateColor("brand.color", c.Brand.Color); err != nil {
		return err
	}
	if err := validateColor("watermark.color", c.Watermark.Color); err != nil {
		return err
	}

	if err := validateOneOf("layout.preset", c.Layout.Preset, "standard", "compact"); err != nil {
		return err
	}
	if err := validateOneOf("layout.logoStyle", c.Layout.LogoStyle, "square", "round"); err != nil {
		return err
	}
	if err := validateRange("layout.columns", c.Layout.Columns, MinColumns, MaxColumns); err != nil {
		return err
	}
	if err := validateRange("layout.headlineColumns", c.Layout.HeadlineColumns, MinGridColumns, MaxColumns); err != nil {
		return err
	}
	if err := validateRange("layout.inputColumns", c.Layout.InputColumns, MinGridColumns, MaxColumns); err != nil {
		return err
	}

	if err := validateOneOf("page.size", strings.ToLower(c.Page.Size), "a4", "letter", "legal"); err != nil {
		return err
	}
	if c.Page.Margin < 0 || c.Page.Margin > MaxMarginMM {
		return fmt.Errorf("%w: page.margin: must be between 0 and %.0f mm, got %.2f", ErrInvalidValue, MaxMarginMM, c.Page.Margin)
	}

	if c.Watermark.Opacity < 0 || c.Watermark.Opacity > 1 {
		return fmt.Errorf("%w: watermark.opacity: must be between 0 and 1, got %.2f", ErrInvalidValue, c.Watermark.Opacity)
	}
	if c.Watermark.Angle < -90 || c.Watermark.Angle > 90 {
		return fmt.Errorf("%w: watermark.angle: must be between -90 and 90, got %.2f", ErrInvalidValue, c.Watermark.Angle)
	}

	if c.Date.Format != "" {
		if _, err := dateutil.Resolve(c.Date.Format, time.Time{}); err != nil {
			return fmt.Errorf("date.format: %w", err)
		}
	}

	if err := validateOneOf("engine.name", c.Engine.Name, "rod", "chromedp"); err != nil {
		return err
	}
	if _, err := c.Engine.TimeoutDuration(); err != nil {
		return err
	}
	if c.Engine.Workers < 0 || c.Engine.Workers > MaxWorkers {
		return fmt.Errorf("%w: engine.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Engine.Workers)
	}

	if err := validateOneOf("share.mode", c.Share.Mode, "open", "dir", "none"); err != nil {
		return err
	}
	if c.Share.Mode == "dir" && c.Share.Dir == "" {
		return fmt.Errorf("%w: share.dir: required when share.mode is dir", ErrInvalidValue)
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateOneOf accepts the empty string as "use the default".
func validateOneOf(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// validateRange accepts zero as "use the preset".
func validateRange(fieldName string, value, lo, hi int) error {
	if value == 0 {
		return nil
	}
	if value < lo || value > hi {
		return fmt.Errorf("%w: %s: must be between %d and %d, got %d", ErrInvalidValue, fieldName, lo, hi, value)
	}
	return nil
}

func validateColor(fieldName, value string) error {
	if value == "" || hexColorPattern.MatchString(value) {
		return nil
	}
	return fmt.Errorf("%w: %s: %q is not a #rrggbb colour", ErrInvalidValue, fieldName, value)
}

// DefaultConfig returns the configuration used when no file is given: the
// standard layout, A4 with 10 mm margins, the rod engine and the desktop
// opener as share target.
func DefaultConfig() *Config {
	return &Config{
		Layout:    LayoutConfig{Preset: DefaultLayoutPreset},
		Page:      PageConfig{Size: "a4", Margin: 10},
		Watermark: WatermarkConfig{Opacity: DefaultWatermarkOpacity, Angle: DefaultWatermarkAngle},
		Date:      DateConfig{Format: "auto"},
		Engine:    EngineConfig{Name: DefaultEngineName, Timeout: "30s"},
		Share:     ShareConfig{Mode: DefaultShareMode},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in the current directory and
// ~/.config/go-calcreport/. Keys missing from the file keep the values of
// DefaultConfig. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-calcreport/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
