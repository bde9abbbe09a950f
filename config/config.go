// Package config loads docsift configuration from YAML files and the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level docsift configuration.
type Config struct {
	OCR        OCRConfig        `yaml:"ocr"`
	Image      ImageConfig      `yaml:"image"`
	Tables     TablesConfig     `yaml:"tables"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Fallback   FallbackConfig   `yaml:"fallback"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// OCRConfig controls page rendering and the recognizers.
type OCRConfig struct {
	DPI                       float64  `yaml:"dpi"`
	Parallel                  bool     `yaml:"parallel"`
	MaxWorkers                int      `yaml:"max_workers"`
	PrimaryLanguages          []string `yaml:"primary_languages"`
	SecondaryLanguage         string   `yaml:"secondary_language"`
	SecondaryFallbackLanguage string   `yaml:"secondary_fallback_language"`
	MinConfidence             float64  `yaml:"min_confidence"`
	ShortText                 int      `yaml:"short_text"`
}

// ImageConfig controls OCR image enhancement.
type ImageConfig struct {
	TargetMinDimension int     `yaml:"target_min_dimension"`
	Contrast           float64 `yaml:"contrast"`
	Sharpness          float64 `yaml:"sharpness"`
}

// TablesConfig controls both table reconstructors.
type TablesConfig struct {
	MinColumns               int     `yaml:"min_columns"`
	YTolerance               float64 `yaml:"y_tolerance"`
	XBucket                  float64 `yaml:"x_bucket"`
	LineHeight               int     `yaml:"line_height"`
	MinRows                  int     `yaml:"min_rows"`
	ColumnVariationTolerance int     `yaml:"column_variation_tolerance"`
}

// ThresholdsConfig holds the qualification thresholds of the cascade, in
// non-whitespace characters.
type ThresholdsConfig struct {
	NativeProbePages int `yaml:"native_probe_pages"`
	NativeMinChars   int `yaml:"native_min_chars"`
	PDFMinChars      int `yaml:"pdf_min_chars"`
	ImageMinChars    int `yaml:"image_min_chars"`
}

// FallbackConfig controls the generic fallback loader.
type FallbackConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"`

	// Readability enables docconv's readability pass for HTML-like input.
	Readability bool `yaml:"readability"`
}

// ChunkingConfig controls the chunk splitter.
type ChunkingConfig struct {
	ChunkSize      int `yaml:"chunk_size"`
	Overlap        int `yaml:"overlap"`
	TokenRatio     int `yaml:"token_ratio"`
	TokenThreshold int `yaml:"token_threshold"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		OCR: OCRConfig{
			DPI:                       300,
			Parallel:                  true,
			MaxWorkers:                4,
			PrimaryLanguages:          []string{"por", "eng"},
			SecondaryLanguage:         "por",
			SecondaryFallbackLanguage: "eng",
			MinConfidence:             0.3,
			ShortText:                 50,
		},
		Image: ImageConfig{
			TargetMinDimension: 2000,
			Contrast:           2.0,
			Sharpness:          2.0,
		},
		Tables: TablesConfig{
			MinColumns:               3,
			YTolerance:               5,
			XBucket:                  50,
			LineHeight:               20,
			MinRows:                  3,
			ColumnVariationTolerance: 2,
		},
		Thresholds: ThresholdsConfig{
			NativeProbePages: 3,
			NativeMinChars:   50,
			PDFMinChars:      100,
			ImageMinChars:    50,
		},
		Fallback: FallbackConfig{
			Enabled: true,
			Timeout: 60 * time.Second,
		},
		Chunking: ChunkingConfig{
			ChunkSize:      1000,
			Overlap:        100,
			TokenRatio:     4,
			TokenThreshold: 4000,
		},
		Server: ServerConfig{
			Addr:           ":8000",
			MaxUploadBytes: 50 << 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load returns the default configuration merged with the YAML file at path
// (skipped when path is empty) and then with DOCSIFT_* environment
// variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// Validate checks that values are sane.
func (c *Config) Validate() error {
	switch {
	case c.OCR.DPI <= 0:
		return fmt.Errorf("ocr.dpi must be > 0")
	case c.OCR.MaxWorkers <= 0:
		return fmt.Errorf("ocr.max_workers must be > 0")
	case c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 1:
		return fmt.Errorf("ocr.min_confidence must be between 0 and 1")
	case c.OCR.ShortText < 0:
		return fmt.Errorf("ocr.short_text must be >= 0")
	case c.Image.TargetMinDimension < 0:
		return fmt.Errorf("image.target_min_dimension must be >= 0")
	case c.Image.Contrast <= 0 || c.Image.Sharpness < 0:
		return fmt.Errorf("image.contrast must be > 0 and image.sharpness >= 0")
	case c.Tables.MinColumns < 1 || c.Tables.MinRows < 1:
		return fmt.Errorf("tables.min_columns and tables.min_rows must be >= 1")
	case c.Tables.YTolerance <= 0 || c.Tables.XBucket <= 0 || c.Tables.LineHeight <= 0:
		return fmt.Errorf("tables.y_tolerance, tables.x_bucket and tables.line_height must be > 0")
	case c.Tables.ColumnVariationTolerance < 0:
		return fmt.Errorf("tables.column_variation_tolerance must be >= 0")
	case c.Thresholds.NativeProbePages < 1:
		return fmt.Errorf("thresholds.native_probe_pages must be >= 1")
	case c.Thresholds.NativeMinChars < 0 || c.Thresholds.PDFMinChars < 0 || c.Thresholds.ImageMinChars < 0:
		return fmt.Errorf("thresholds must be >= 0")
	case c.Fallback.Enabled && c.Fallback.Timeout <= 0:
		return fmt.Errorf("fallback.timeout must be > 0")
	case c.Chunking.ChunkSize <= 0:
		return fmt.Errorf("chunking.chunk_size must be > 0")
	case c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.ChunkSize:
		return fmt.Errorf("chunking.overlap must be >= 0 and < chunking.chunk_size")
	case c.Chunking.TokenRatio <= 0 || c.Chunking.TokenThreshold <= 0:
		return fmt.Errorf("chunking.token_ratio and chunking.token_threshold must be > 0")
	case c.Server.MaxUploadBytes <= 0:
		return fmt.Errorf("server.max_upload_bytes must be > 0")
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	overrides := []struct {
		name string
		set  func(string) error
	}{
		{"DOCSIFT_OCR_DPI", floatVar(&c.OCR.DPI)},
		{"DOCSIFT_OCR_PARALLEL", boolVar(&c.OCR.Parallel)},
		{"DOCSIFT_OCR_MAX_WORKERS", intVar(&c.OCR.MaxWorkers)},
		{"DOCSIFT_OCR_PRIMARY_LANGUAGES", listVar(&c.OCR.PrimaryLanguages)},
		{"DOCSIFT_OCR_SECONDARY_LANGUAGE", stringVar(&c.OCR.SecondaryLanguage)},
		{"DOCSIFT_FALLBACK_ENABLED", boolVar(&c.Fallback.Enabled)},
		{"DOCSIFT_FALLBACK_TIMEOUT", durationVar(&c.Fallback.Timeout)},
		{"DOCSIFT_FALLBACK_READABILITY", boolVar(&c.Fallback.Readability)},
		{"DOCSIFT_SERVER_ADDR", stringVar(&c.Server.Addr)},
		{"DOCSIFT_LOG_LEVEL", stringVar(&c.Log.Level)},
	}

	for _, o := range overrides {
		v, ok := lookup(o.name)
		if !ok {
			continue
		}
		if err := o.set(strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("%s: %w", o.name, err)
		}
	}
	return nil
}

func stringVar(p *string) func(string) error {
	return func(v string) error {
		*p = v
		return nil
	}
}

func listVar(p *[]string) func(string) error {
	return func(v string) error {
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*p = out
		return nil
	}
}

func intVar(p *int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*p = n
		return nil
	}
}

func floatVar(p *float64) func(string) error {
	return func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*p = f
		return nil
	}
}

func boolVar(p *bool) func(string) error {
	return func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*p = b
		return nil
	}
}

func durationVar(p *time.Duration) func(string) error {
	return func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*p = d
		return nil
	}
}
