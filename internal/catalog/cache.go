package catalog

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/adasviz/zodmap/internal/api"
	"github.com/adasviz/zodmap/internal/storage"
)

// Flat-earth projection constants: one degree of latitude is ~111.32 km,
// one degree of longitude is cos(latitude) * 40075 km / 360.
const (
	metersPerDegreeLat = 111320.0
	earthCircumference = 40075000.0
)

// entry memoizes one trajectory computation. The once guards the compute so
// concurrent callers for the same key join a single flight and share its
// outcome.
type entry struct {
	once   sync.Once
	detail *api.LogDetail
	err    error
}

// TrajectoryCache lazily computes and memoizes the projected point sequence
// and bounding box per log identifier. Successful results live for the
// process lifetime; there is no eviction.
type TrajectoryCache struct {
	mu      sync.Mutex
	entries map[string]*entry
	load    func(ctx context.Context, logID string) (*storage.RawLog, error)
}

// NewTrajectoryCache builds a cache computing trajectories from the store's
// raw samples.
func NewTrajectoryCache(store storage.Store) *TrajectoryCache {
	return &TrajectoryCache{
		entries: make(map[string]*entry),
		load:    store.LoadSamples,
	}
}

// Get returns the trajectory detail for logID, computing it at most once.
// N concurrent callers for an uncached identifier trigger exactly one
// underlying load and all receive the same result or the same failure.
// Failed computations are shared by the callers that joined the flight but
// are not memoized, so a later request may recompute.
func (c *TrajectoryCache) Get(ctx context.Context, logID string) (*api.LogDetail, error) {
	c.mu.Lock()
	e, ok := c.entries[logID]
	if !ok {
		e = &entry{}
		c.entries[logID] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.detail, e.err = c.compute(ctx, logID)
	})

	if e.err != nil {
		c.mu.Lock()
		if c.entries[logID] == e {
			delete(c.entries, logID)
		}
		c.mu.Unlock()
		return nil, e.err
	}
	return e.detail, nil
}

func (c *TrajectoryCache) compute(ctx context.Context, logID string) (*api.LogDetail, error) {
	raw, err := c.load(ctx, logID)
	if err != nil {
		return nil, err
	}

	points := project(raw.Origin, raw.Samples)
	detail := &api.LogDetail{
		LogID:      logID,
		NumPoints:  len(points),
		Bounds:     computeBounds(points),
		Trajectory: points,
	}
	slog.Info("computed trajectory", "log_id", logID, "points", len(points))
	return detail, nil
}

// project converts metric pose offsets into geographic coordinates relative
// to the recording origin.
func project(origin storage.Origin, samples []storage.Sample) []api.TrajectoryPoint {
	points := make([]api.TrajectoryPoint, 0, len(samples))
	lonScale := earthCircumference * math.Cos(origin.Lat*math.Pi/180) / 360
	for _, s := range samples {
		points = append(points, api.TrajectoryPoint{
			Lat: origin.Lat + s.DY/metersPerDegreeLat,
			Lon: origin.Lon + s.DX/lonScale,
		})
	}
	return points
}

// computeBounds derives the min/max lat/lon rectangle over all points.
// An empty trajectory has no bounds.
func computeBounds(points []api.TrajectoryPoint) *api.BoundingBox {
	if len(points) == 0 {
		return nil
	}
	b := &api.BoundingBox{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
	}
	return b
}
