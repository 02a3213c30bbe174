package viewport

import (
	"testing"

	"github.com/adasviz/zodmap/internal/api"
)

// fixedFitter returns a constant zoom regardless of the box.
type fixedFitter float64

func (f fixedFitter) FitBounds(b api.BoundingBox, paddingPx int) float64 {
	return float64(f)
}

func TestGate_RenderGating(t *testing.T) {
	g := NewGate(13, 48, fixedFitter(10))

	if !g.ShouldRender() {
		t.Fatal("gate should start rendering at the threshold zoom")
	}

	g.SetHovered("X")
	if g.Hovered() != "X" {
		t.Fatalf("hovered = %q, want X", g.Hovered())
	}

	g.SetZoom(12.9)
	if g.ShouldRender() {
		t.Fatal("below threshold nothing renders")
	}
	if g.Hovered() != "" {
		t.Fatal("falling below threshold must clear hover state")
	}

	// Hover is ignored while gated off.
	g.SetHovered("Y")
	if g.Hovered() != "" {
		t.Fatal("hover must be disabled below threshold")
	}

	g.SetZoom(13)
	if !g.ShouldRender() {
		t.Fatal("at threshold trajectories render again")
	}
}

func TestGate_FocusZoomFlooredAtThreshold(t *testing.T) {
	boxes := []api.BoundingBox{
		{MinLat: 57.70, MinLon: 11.97, MaxLat: 57.71, MaxLon: 11.98},
		{MinLat: -10, MinLon: -10, MaxLat: 10, MaxLon: 10},
		{MinLat: 57.7, MinLon: 11.9, MaxLat: 57.7, MaxLon: 11.9},
	}
	fitters := []BoundsFitter{fixedFitter(2), fixedFitter(13), fixedFitter(18), MercatorFitter{WidthPx: 800, HeightPx: 600}}

	for _, fitter := range fitters {
		for _, box := range boxes {
			g := NewGate(13, 48, fitter)
			b := box
			view, ok := g.Focus(&api.LogDetail{Bounds: &b})
			if !ok {
				t.Fatalf("Focus with bounds %v should succeed", b)
			}
			if view.Zoom < 13 {
				t.Fatalf("focus zoom %v below threshold for bounds %v", view.Zoom, b)
			}
			if !g.ShouldRender() {
				t.Fatal("gate must render immediately after focus")
			}
			if wantLat := (b.MinLat + b.MaxLat) / 2; view.CenterLat != wantLat {
				t.Fatalf("center lat = %v, want %v", view.CenterLat, wantLat)
			}
		}
	}
}

func TestGate_FocusAboveThresholdUsesFitterZoom(t *testing.T) {
	g := NewGate(13, 48, fixedFitter(16.5))
	view, ok := g.Focus(&api.LogDetail{Bounds: &api.BoundingBox{MinLat: 1, MinLon: 1, MaxLat: 2, MaxLon: 2}})
	if !ok || view.Zoom != 16.5 {
		t.Fatalf("focus = (%v, %v), want fitter zoom 16.5", view, ok)
	}
	if g.Zoom() != 16.5 {
		t.Fatalf("gate zoom = %v, want adopted 16.5", g.Zoom())
	}
}

func TestGate_FocusFallbackWithoutBounds(t *testing.T) {
	g := NewGate(13, 48, fixedFitter(16))
	g.SetZoom(15)

	detail := &api.LogDetail{Trajectory: []api.TrajectoryPoint{{Lat: 57.7, Lon: 11.9}, {Lat: 57.8, Lon: 12.0}}}
	view, ok := g.Focus(detail)
	if !ok {
		t.Fatal("fallback focus should succeed with a first point")
	}
	if view.CenterLat != 57.7 || view.CenterLon != 11.9 {
		t.Fatalf("fallback center = (%v, %v), want first point", view.CenterLat, view.CenterLon)
	}
	if view.Zoom != 15 {
		t.Fatalf("fallback keeps current zoom, got %v", view.Zoom)
	}

	// Current zoom below threshold: fallback floors it.
	g.SetZoom(8)
	view, ok = g.Focus(detail)
	if !ok || view.Zoom != 13 {
		t.Fatalf("fallback zoom = %v, want floored threshold 13", view.Zoom)
	}

	// Nothing to focus on at all.
	if _, ok := g.Focus(&api.LogDetail{}); ok {
		t.Fatal("focus with no bounds and no points should fail")
	}
	if _, ok := g.Focus(nil); ok {
		t.Fatal("focus on nil detail should fail")
	}
}

func TestMercatorFitter_Deterministic(t *testing.T) {
	fitter := MercatorFitter{WidthPx: 800, HeightPx: 600}
	box := api.BoundingBox{MinLat: 57.70, MinLon: 11.97, MaxLat: 57.72, MaxLon: 12.00}

	z1 := fitter.FitBounds(box, 48)
	z2 := fitter.FitBounds(box, 48)
	if z1 != z2 {
		t.Fatalf("FitBounds not deterministic: %v vs %v", z1, z2)
	}
}

func TestMercatorFitter_LargerBoxesFitAtLowerZoom(t *testing.T) {
	fitter := MercatorFitter{WidthPx: 800, HeightPx: 600}
	small := api.BoundingBox{MinLat: 57.70, MinLon: 11.97, MaxLat: 57.71, MaxLon: 11.98}
	large := api.BoundingBox{MinLat: 50, MinLon: 5, MaxLat: 60, MaxLon: 20}

	zSmall := fitter.FitBounds(small, 48)
	zLarge := fitter.FitBounds(large, 48)
	if zSmall <= zLarge {
		t.Fatalf("small box zoom %v should exceed large box zoom %v", zSmall, zLarge)
	}
}

func TestMercatorFitter_DegenerateBoxHitsMaxZoom(t *testing.T) {
	fitter := MercatorFitter{WidthPx: 800, HeightPx: 600}
	point := api.BoundingBox{MinLat: 57.7, MinLon: 11.9, MaxLat: 57.7, MaxLon: 11.9}

	if z := fitter.FitBounds(point, 48); z != defaultMaxZoom {
		t.Fatalf("degenerate box zoom = %v, want max %v", z, defaultMaxZoom)
	}

	// Padding larger than the viewport still yields a sane value.
	huge := MercatorFitter{WidthPx: 50, HeightPx: 50}
	if z := huge.FitBounds(api.BoundingBox{MinLat: 0, MinLon: 0, MaxLat: 50, MaxLon: 50}, 100); z < 0 {
		t.Fatalf("zoom should clamp at 0, got %v", z)
	}
}
