package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adasviz/zodmap/internal/catalog"
	"github.com/adasviz/zodmap/internal/server"
)

// ServeCommand starts the HTTP catalog service.
type ServeCommand struct {
	Listen string `long:"listen" description:"Listen address" default:"127.0.0.1:8787"`

	globals *GlobalFlags
}

// Execute runs the serve subcommand.
func (c *ServeCommand) Execute(args []string) error {
	configureLogging(c.globals.Verbose)

	store, db, err := openStore(c.globals.DB)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
		_ = db.Close()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := catalog.NewService(store)
	slog.Info("starting catalog service", "listen", c.Listen)
	if err := server.Run(ctx, c.Listen, svc); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
