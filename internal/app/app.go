package app

import (
	"context"
	"fmt"

	"github.com/adasviz/zodmap/internal/api"
	"github.com/adasviz/zodmap/internal/config"
	"github.com/adasviz/zodmap/internal/prefs"
	"github.com/adasviz/zodmap/internal/state"
	"github.com/adasviz/zodmap/internal/ui"
)

// Options configure the zodmap browser application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/zodmap/prefs.toml
	BaseURL    string // overrides the configured server address
}

// Run boots the zodmap TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	client, err := api.NewClient(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Fetcher:   client,
		Store:     state.NewStore(),
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	})
}
