package viewport

import (
	"github.com/adasviz/zodmap/internal/api"
)

// View is a focus target for the map layer: a center and a zoom level.
type View struct {
	CenterLat float64
	CenterLon float64
	Zoom      float64
}

// BoundsFitter is the map-projection primitive the render layer supplies: it
// returns the maximal zoom at which the box fits the viewport minus padding.
type BoundsFitter interface {
	FitBounds(b api.BoundingBox, paddingPx int) float64
}

// Gate decides whether trajectories render at the current zoom and computes
// focus viewports. Trajectories and hover interactions are enabled only at
// or above a fixed threshold zoom.
type Gate struct {
	threshold float64
	padding   int
	fitter    BoundsFitter

	zoom    float64
	hovered string
}

// NewGate builds a Gate starting at the threshold zoom.
func NewGate(threshold float64, paddingPx int, fitter BoundsFitter) *Gate {
	return &Gate{
		threshold: threshold,
		padding:   paddingPx,
		fitter:    fitter,
		zoom:      threshold,
	}
}

// Zoom returns the current zoom level.
func (g *Gate) Zoom() float64 { return g.zoom }

// Threshold returns the configured gating threshold.
func (g *Gate) Threshold() float64 { return g.threshold }

// SetZoom updates the current zoom. Falling below the threshold clears any
// hovered identifier.
func (g *Gate) SetZoom(zoom float64) {
	g.zoom = zoom
	if g.zoom < g.threshold {
		g.hovered = ""
	}
}

// ShouldRender reports whether trajectories are rendered at the current zoom.
func (g *Gate) ShouldRender() bool {
	return g.zoom >= g.threshold
}

// SetHovered records the hovered identifier. Ignored while rendering is
// gated off.
func (g *Gate) SetHovered(logID string) {
	if !g.ShouldRender() {
		return
	}
	g.hovered = logID
}

// Hovered returns the hovered identifier, empty when none.
func (g *Gate) Hovered() string { return g.hovered }

// ClearHovered resets the hovered identifier.
func (g *Gate) ClearHovered() { g.hovered = "" }

// Focus computes the viewport for a newly activated trajectory and adopts
// its zoom. With bounds available, the fitter's zoom is floored at the
// threshold, so the focused trajectory is rendered immediately under the
// gating rule. Without bounds, the current zoom (likewise floored) is kept
// and the view centers on the first trajectory point. Returns false when the
// detail offers nothing to focus on.
func (g *Gate) Focus(detail *api.LogDetail) (View, bool) {
	if detail == nil {
		return View{}, false
	}

	if b := detail.Bounds; b != nil {
		zoom := g.fitter.FitBounds(*b, g.padding)
		if zoom < g.threshold {
			zoom = g.threshold
		}
		g.zoom = zoom
		return View{
			CenterLat: (b.MinLat + b.MaxLat) / 2,
			CenterLon: (b.MinLon + b.MaxLon) / 2,
			Zoom:      zoom,
		}, true
	}

	first, ok := detail.FirstPoint()
	if !ok {
		return View{}, false
	}
	zoom := g.zoom
	if zoom < g.threshold {
		zoom = g.threshold
	}
	g.zoom = zoom
	return View{CenterLat: first.Lat, CenterLon: first.Lon, Zoom: zoom}, true
}
