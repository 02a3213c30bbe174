package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the client-side settings for the zodmap browser.
type Config struct {
	BaseURL       string
	ZoomThreshold float64
	FitPaddingPx  int
	PageSize      int
}

const (
	defaultConfigPath    = "~/.config/zodmap/config.toml"
	defaultBaseURL       = "127.0.0.1:8787"
	defaultZoomThreshold = 13.0
	defaultFitPaddingPx  = 48
	defaultPageSize      = 50
)

// Load locates and parses the zodmap config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL       string  `toml:"base_url"`
		ZoomThreshold float64 `toml:"zoom_threshold"`
		FitPaddingPx  int     `toml:"fit_padding_px"`
		PageSize      int     `toml:"page_size"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if trimmed := strings.TrimSpace(raw.BaseURL); trimmed != "" {
		cfg.BaseURL = trimmed
	}
	if raw.ZoomThreshold > 0 {
		cfg.ZoomThreshold = raw.ZoomThreshold
	}
	if raw.FitPaddingPx > 0 {
		cfg.FitPaddingPx = raw.FitPaddingPx
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		BaseURL:       defaultBaseURL,
		ZoomThreshold: defaultZoomThreshold,
		FitPaddingPx:  defaultFitPaddingPx,
		PageSize:      defaultPageSize,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
