package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adasviz/zodmap/internal/storage"
)

// IngestCommand loads raw driving log files into the database.
type IngestCommand struct {
	Preview string `long:"preview" description:"Attach a preview image file (single log only)"`

	Args struct {
		Paths []string `positional-arg-name:"path" description:"Log JSON files or directories" required:"1"`
	} `positional-args:"true"`

	globals *GlobalFlags
}

// rawLogFile is the on-disk recording format: an origin coordinate plus
// planar displacement samples in meters.
type rawLogFile struct {
	LogID  string `json:"log_id"`
	Origin struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"origin"`
	Samples []struct {
		DX float64 `json:"dx"`
		DY float64 `json:"dy"`
	} `json:"samples"`
}

// Execute runs the ingest subcommand.
func (c *IngestCommand) Execute(args []string) error {
	configureLogging(c.globals.Verbose)

	store, db, err := openStore(c.globals.DB)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
		_ = db.Close()
	}()

	files, err := collectLogFiles(c.Args.Paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no log files found")
	}
	if c.Preview != "" && len(files) != 1 {
		return fmt.Errorf("--preview requires exactly one log file, got %d", len(files))
	}

	ctx := context.Background()
	for _, path := range files {
		raw, err := readLogFile(path)
		if err != nil {
			return err
		}
		if err := store.InsertLog(ctx, raw); err != nil {
			return fmt.Errorf("insert log %q: %w", raw.ID, err)
		}
		slog.Info("ingested log", "log_id", raw.ID, "samples", len(raw.Samples))

		if c.Preview != "" {
			if err := attachPreview(ctx, store, raw.ID, c.Preview); err != nil {
				return err
			}
		}
	}

	fmt.Printf("Ingested %d log(s).\n", len(files))
	return nil
}

func collectLogFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(path, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("scan %q: %w", path, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

func readLogFile(path string) (*storage.RawLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	var file rawLogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}

	id := strings.TrimSpace(file.LogID)
	if id == "" {
		// Fall back to the file name without extension.
		base := filepath.Base(path)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	raw := &storage.RawLog{
		ID:     id,
		Origin: storage.Origin{Lat: file.Origin.Lat, Lon: file.Origin.Lon},
	}
	for i, s := range file.Samples {
		raw.Samples = append(raw.Samples, storage.Sample{Seq: i, DX: s.DX, DY: s.DY})
	}
	return raw, nil
}

func attachPreview(ctx context.Context, store *storage.SQLiteStore, logID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read preview %q: %w", path, err)
	}
	mime := "image/jpeg"
	if strings.EqualFold(filepath.Ext(path), ".png") {
		mime = "image/png"
	}
	if err := store.InsertPreview(ctx, logID, &storage.Preview{MIME: mime, Data: data}); err != nil {
		return fmt.Errorf("insert preview for %q: %w", logID, err)
	}
	slog.Info("attached preview", "log_id", logID, "bytes", len(data))
	return nil
}
