package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/casevault/ocrbatch/errx"
)

var configErrors = errx.NewRegistry("CONFIG")

var (
	ErrInvalidEndpoint = configErrors.Register("INVALID_ENDPOINT", errx.TypeValidation, "Invalid OCR endpoint configuration")
	ErrInvalidValue    = configErrors.Register("INVALID_VALUE", errx.TypeValidation, "Invalid configuration value")
)

// OCR holds the settings for the OCR endpoint client.
type OCR struct {
	ServerURL      string
	Model          string
	APIKey         string
	MaxTokens      int
	MaxAttempts    int
	RequestTimeout time.Duration
}

// Raster holds the settings for input normalization.
type Raster struct {
	// MaxImageDim bounds the longest edge of any raster page sent upstream.
	MaxImageDim int
	// PDFRenderDPI is the fixed resolution used when rasterizing PDF pages.
	PDFRenderDPI int
}

// Database holds the connection settings for the blob store.
type Database struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	ConnectTimeout time.Duration
}

// Config is the process-wide configuration, loaded once at startup and passed
// explicitly into constructors.
type Config struct {
	OCR      OCR
	Raster   Raster
	Database Database
}

// Load reads configuration from a .env file (when present) and the process
// environment. Environment variables always win over .env entries.
func Load() (*Config, error) {
	// Missing .env is fine; the environment alone is a valid source.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("OLMOCR_SERVER_URL", "http://localhost:30024/v1")
	v.SetDefault("OLMOCR_MODEL", "allenai/olmOCR-2-7B-1025-FP8")
	v.SetDefault("OLMOCR_MAX_TOKENS", 8000)
	v.SetDefault("OLMOCR_MAX_ATTEMPTS", 3)
	v.SetDefault("OLMOCR_TIMEOUT_SECONDS", 90)
	v.SetDefault("OLMOCR_MAX_IMAGE_DIM", 1280)
	v.SetDefault("OLMOCR_PDF_DPI", 300)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_CONNECT_TIMEOUT_SECONDS", 10)

	cfg := &Config{
		OCR: OCR{
			ServerURL:      strings.TrimRight(v.GetString("OLMOCR_SERVER_URL"), "/"),
			Model:          v.GetString("OLMOCR_MODEL"),
			APIKey:         v.GetString("OLMOCR_API_KEY"),
			MaxTokens:      v.GetInt("OLMOCR_MAX_TOKENS"),
			MaxAttempts:    v.GetInt("OLMOCR_MAX_ATTEMPTS"),
			RequestTimeout: time.Duration(v.GetInt("OLMOCR_TIMEOUT_SECONDS")) * time.Second,
		},
		Raster: Raster{
			MaxImageDim:  v.GetInt("OLMOCR_MAX_IMAGE_DIM"),
			PDFRenderDPI: v.GetInt("OLMOCR_PDF_DPI"),
		},
		Database: Database{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			Name:           v.GetString("DB_NAME"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASS"),
			ConnectTimeout: time.Duration(v.GetInt("DB_CONNECT_TIMEOUT_SECONDS")) * time.Second,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the process cannot start without. Database
// settings are intentionally not validated here: they are only needed in blob
// mode and their absence is reported per item.
func (c *Config) Validate() error {
	u, err := url.Parse(c.OCR.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return configErrors.New(ErrInvalidEndpoint).
			WithDetail("url", c.OCR.ServerURL).
			WithCause(err)
	}
	if c.OCR.Model == "" {
		return configErrors.NewWithMessage(ErrInvalidValue, "OLMOCR_MODEL must not be empty")
	}
	if c.OCR.MaxAttempts < 1 {
		return configErrors.NewWithMessage(ErrInvalidValue,
			fmt.Sprintf("OLMOCR_MAX_ATTEMPTS must be >= 1, got %d", c.OCR.MaxAttempts))
	}
	if c.Raster.MaxImageDim < 256 {
		return configErrors.NewWithMessage(ErrInvalidValue,
			fmt.Sprintf("OLMOCR_MAX_IMAGE_DIM must be >= 256, got %d", c.Raster.MaxImageDim))
	}
	if c.Raster.PDFRenderDPI < 72 {
		return configErrors.NewWithMessage(ErrInvalidValue,
			fmt.Sprintf("OLMOCR_PDF_DPI must be >= 72, got %d", c.Raster.PDFRenderDPI))
	}
	return nil
}

// HasDatabase reports whether every required database setting is present.
func (c *Config) HasDatabase() bool {
	d := c.Database
	return d.Host != "" && d.Port != "" && d.Name != "" && d.User != "" && d.Password != ""
}
