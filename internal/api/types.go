package api

// BoundingBox is the minimal lat/lon rectangle enclosing a trajectory.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// TrajectoryPoint is one geographic sample of a driving log, in recording order.
type TrajectoryPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LogSummary is the cheap per-log payload returned by the catalog listing.
// NumPoints and Bounds are only present when the listing was requested with
// include_details.
type LogSummary struct {
	LogID     string       `json:"log_id"`
	NumPoints *int         `json:"num_points,omitempty"`
	Bounds    *BoundingBox `json:"bounds,omitempty"`
}

// LogDetail is the full trajectory payload for a single driving log.
// Bounds is absent when the trajectory has zero points.
type LogDetail struct {
	LogID      string            `json:"log_id"`
	NumPoints  int               `json:"num_points"`
	Bounds     *BoundingBox      `json:"bounds,omitempty"`
	Trajectory []TrajectoryPoint `json:"trajectory"`
}

// FirstPoint returns the first trajectory point when one exists.
func (d LogDetail) FirstPoint() (TrajectoryPoint, bool) {
	if len(d.Trajectory) == 0 {
		return TrajectoryPoint{}, false
	}
	return d.Trajectory[0], true
}

// ListResponse mirrors the payload returned by GET /api/logs.
// NextOffset is nil once the listing has been exhausted.
type ListResponse struct {
	Total      int          `json:"total"`
	Items      []LogSummary `json:"items"`
	NextOffset *int         `json:"next_offset"`
}

// PreviewImage carries the raw bytes of a pre-rendered per-log preview.
type PreviewImage struct {
	Data []byte
	MIME string
}

// errorResponse mirrors the {"detail": "..."} body the service attaches to
// failed responses.
type errorResponse struct {
	Detail string `json:"detail"`
}
