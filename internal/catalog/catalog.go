package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/adasviz/zodmap/internal/api"
	"github.com/adasviz/zodmap/internal/storage"
)

// ErrNotFound reports a request for a log identifier the catalog does not
// know, or a known log with no preview.
var ErrNotFound = errors.New("unknown log")

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// Service is the server-side core: the catalog index, the trajectory cache,
// and the preview passthrough, all over one storage backend.
type Service struct {
	store storage.Store
	cache *TrajectoryCache

	// The identifier list is loaded once per process: the service is the
	// identifier authority and the catalog is fixed for its lifetime.
	idsOnce sync.Once
	ids     []string
	idSet   map[string]struct{}
	idsErr  error
}

// NewService builds a Service over the given store.
func NewService(store storage.Store) *Service {
	return &Service{
		store: store,
		cache: NewTrajectoryCache(store),
	}
}

func (s *Service) logIDs(ctx context.Context) ([]string, error) {
	s.idsOnce.Do(func() {
		ids, err := s.store.ListLogIDs(ctx)
		if err != nil {
			s.idsErr = fmt.Errorf("enumerate logs: %w", err)
			return
		}
		s.ids = ids
		s.idSet = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			s.idSet[id] = struct{}{}
		}
		slog.Info("catalog loaded", "logs", len(ids))
	})
	return s.ids, s.idsErr
}

func (s *Service) knows(ctx context.Context, logID string) (bool, error) {
	if _, err := s.logIDs(ctx); err != nil {
		return false, err
	}
	_, ok := s.idSet[logID]
	return ok, nil
}

// ListPage returns one catalog page. The limit is clamped to [1, 500] with a
// default of 50; NextOffset is nil once the listing is exhausted. With
// includeDetails, each item carries its point count and bounds, computed
// through the trajectory cache; items whose trajectory fails to load are
// skipped rather than failing the page.
func (s *Service) ListPage(ctx context.Context, offset, limit int, includeDetails bool) (api.ListResponse, error) {
	if offset < 0 {
		return api.ListResponse{}, fmt.Errorf("offset must not be negative")
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	ids, err := s.logIDs(ctx)
	if err != nil {
		return api.ListResponse{}, err
	}

	total := len(ids)
	var sliced []string
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		sliced = ids[offset:end]
	}

	items := make([]api.LogSummary, 0, len(sliced))
	for _, id := range sliced {
		item := api.LogSummary{LogID: id}
		if includeDetails {
			detail, err := s.cache.Get(ctx, id)
			if err != nil {
				slog.Error("failed to load trajectory for listing", "log_id", id, "err", err)
				continue
			}
			n := detail.NumPoints
			item.NumPoints = &n
			item.Bounds = detail.Bounds
		}
		items = append(items, item)
	}

	resp := api.ListResponse{Total: total, Items: items}
	if next := offset + len(sliced); next < total {
		resp.NextOffset = &next
	}
	return resp, nil
}

// GetDetail returns the full trajectory for a known log identifier.
func (s *Service) GetDetail(ctx context.Context, logID string) (*api.LogDetail, error) {
	known, err := s.knows(ctx, logID)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("log id %s: %w", logID, ErrNotFound)
	}
	return s.cache.Get(ctx, logID)
}

// GetPreview returns the pre-rendered preview image for a known log. No
// caching happens here; retrieval is delegated to storage on every call.
func (s *Service) GetPreview(ctx context.Context, logID string) (*api.PreviewImage, error) {
	known, err := s.knows(ctx, logID)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("log id %s: %w", logID, ErrNotFound)
	}

	p, err := s.store.LoadPreview(ctx, logID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("preview not available for %s: %w", logID, ErrNotFound)
		}
		return nil, fmt.Errorf("load preview: %w", err)
	}
	return &api.PreviewImage{Data: p.Data, MIME: p.MIME}, nil
}
