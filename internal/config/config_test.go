package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Layout.Preset != "standard" {
		t.Errorf("Layout.Preset = %q, want %q", cfg.Layout.Preset, "standard")
	}
	if cfg.Page.Size != "a4" || cfg.Page.Margin != 10 {
		t.Errorf("Page = %+v, want a4 with 10mm margin", cfg.Page)
	}
	if cfg.Watermark.Disabled {
		t.Error("Watermark.Disabled = true, want false")
	}
	if cfg.Share.Mode != "open" {
		t.Errorf("Share.Mode = %q, want %q", cfg.Share.Mode, "open")
	}
	if cfg.Engine.Name != "rod" {
		t.Errorf("Engine.Name = %q, want %q", cfg.Engine.Name, "rod")
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr != errors.Is(err, ErrFieldTooLong) {
				t.Errorf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - one mutation per case on top of DefaultConfig
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"zero config", func(c *Config) { *c = Config{} }, nil},
		{"brand colour", func(c *Config) { c.Brand.Color = "#0f766e" }, nil},
		{"compact with overrides", func(c *Config) {
			c.Layout = LayoutConfig{Preset: "compact", Columns: 3, HeadlineColumns: 4, InputColumns: 2, LogoStyle: "round"}
		}, nil},
		{"dir share", func(c *Config) { c.Share = ShareConfig{Mode: "dir", Dir: "/tmp/out"} }, nil},
		{"literal date", func(c *Config) { c.Date.Format = "2026-01-15" }, nil},
		{"auto date preset", func(c *Config) { c.Date.Format = "auto:iso" }, nil},

		{"brand name too long", func(c *Config) { c.Brand.Name = strings.Repeat("a", MaxBrandNameLength+1) }, ErrFieldTooLong},
		{"initial too long", func(c *Config) { c.Brand.Initial = "ABC" }, ErrFieldTooLong},
		{"caption too long", func(c *Config) { c.Brand.Caption = strings.Repeat("a", MaxCaptionLength+1) }, ErrFieldTooLong},
		{"watermark text too long", func(c *Config) { c.Watermark.Text = strings.Repeat("W", MaxWatermarkTextLength+1) }, ErrFieldTooLong},
		{"bad brand colour", func(c *Config) { c.Brand.Color = "blue" }, ErrInvalidValue},
		{"short hex colour", func(c *Config) { c.Watermark.Color = "#fff" }, ErrInvalidValue},
		{"unknown preset", func(c *Config) { c.Layout.Preset = "dense" }, ErrInvalidValue},
		{"unknown logo style", func(c *Config) { c.Layout.LogoStyle = "hexagon" }, ErrInvalidValue},
		{"too many columns", func(c *Config) { c.Layout.Columns = 5 }, ErrInvalidValue},
		{"negative columns", func(c *Config) { c.Layout.Columns = -1 }, ErrInvalidValue},
		{"headline single column", func(c *Config) { c.Layout.HeadlineColumns = 1 }, ErrInvalidValue},
		{"unknown page size", func(c *Config) { c.Page.Size = "a3" }, ErrInvalidValue},
		{"negative margin", func(c *Config) { c.Page.Margin = -1 }, ErrInvalidValue},
		{"huge margin", func(c *Config) { c.Page.Margin = 51 }, ErrInvalidValue},
		{"opacity above one", func(c *Config) { c.Watermark.Opacity = 1.5 }, ErrInvalidValue},
		{"angle out of range", func(c *Config) { c.Watermark.Angle = 120 }, ErrInvalidValue},
		{"unknown engine", func(c *Config) { c.Engine.Name = "wkhtmltopdf" }, ErrInvalidValue},
		{"bad timeout", func(c *Config) { c.Engine.Timeout = "soon" }, ErrInvalidValue},
		{"zero timeout", func(c *Config) { c.Engine.Timeout = "0s" }, ErrInvalidValue},
		{"too many workers", func(c *Config) { c.Engine.Workers = MaxWorkers + 1 }, ErrInvalidValue},
		{"unknown share mode", func(c *Config) { c.Share.Mode = "email" }, ErrInvalidValue},
		{"dir share without dir", func(c *Config) { c.Share.Mode = "dir" }, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_BadDateFormat(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Date.Format = "auto:"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() expected error for empty auto pattern")
	}
}

func TestEngineConfig_TimeoutDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		timeout string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"30s", 30 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{"-5s", 0, true},
		{"later", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			t.Parallel()

			got, err := EngineConfig{Timeout: tt.timeout}.TimeoutDuration()
			if (err != nil) != tt.wantErr {
				t.Fatalf("TimeoutDuration() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - file paths, named configs, defaults merge, strict keys
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file path keeps defaults for missing keys", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "brand.yaml", `
brand:
  name: Acme HVAC
  color: "#0f766e"
layout:
  preset: compact
watermark:
  text: DRAFT
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		want := DefaultConfig()
		want.Brand = BrandConfig{Name: "Acme HVAC", Color: "#0f766e"}
		want.Layout.Preset = "compact"
		want.Watermark.Text = "DRAFT"

		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown key is a parse error", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "brand:\n  logo: x.png\n")

		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value is rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "page:\n  size: tabloid\n")

		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "absent.yaml")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("empty file is a parse error", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "empty.yaml", "")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})
}

// Notes:
//   - These subtests change the working directory and so cannot run in
//     parallel with each other.
func TestLoadConfig_ByName(t *testing.T) {
	t.Run("resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "acme.yaml", "brand:\n  name: From YAML\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("acme")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Brand.Name != "From YAML" {
			t.Errorf("Brand.Name = %q, want %q", cfg.Brand.Name, "From YAML")
		}
	})

	t.Run("resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "acme.yml", "brand:\n  name: From YML\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("acme")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Brand.Name != "From YML" {
			t.Errorf("Brand.Name = %q, want %q", cfg.Brand.Name, "From YML")
		}
	})

	t.Run("not found lists searched paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("nowhere")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nowhere.yaml") || !strings.Contains(err.Error(), "nowhere.yml") {
			t.Errorf("error should list tried paths, got %v", err)
		}
	})
}
