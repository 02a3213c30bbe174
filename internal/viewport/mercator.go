package viewport

import (
	"math"

	"github.com/adasviz/zodmap/internal/api"
)

const (
	tileSize       = 256.0
	defaultMaxZoom = 19.0
)

// MercatorFitter is a deterministic Web-Mercator implementation of
// BoundsFitter for a fixed-size viewport.
type MercatorFitter struct {
	WidthPx  int
	HeightPx int
	MaxZoom  float64 // zero means the default of 19
}

// FitBounds returns the maximal zoom at which the box fits the viewport
// minus padding on each side. Degenerate boxes (zero span) fit at any zoom
// and yield the maximum.
func (f MercatorFitter) FitBounds(b api.BoundingBox, paddingPx int) float64 {
	maxZoom := f.MaxZoom
	if maxZoom <= 0 {
		maxZoom = defaultMaxZoom
	}

	usableW := float64(f.WidthPx - 2*paddingPx)
	usableH := float64(f.HeightPx - 2*paddingPx)
	if usableW < 1 {
		usableW = 1
	}
	if usableH < 1 {
		usableH = 1
	}

	lonFrac := math.Abs(b.MaxLon-b.MinLon) / 360
	latFrac := math.Abs(mercatorY(b.MinLat) - mercatorY(b.MaxLat))

	zoom := maxZoom
	if lonFrac > 0 {
		zoom = math.Min(zoom, math.Log2(usableW/(tileSize*lonFrac)))
	}
	if latFrac > 0 {
		zoom = math.Min(zoom, math.Log2(usableH/(tileSize*latFrac)))
	}
	if zoom < 0 {
		zoom = 0
	}
	return zoom
}

// mercatorY maps latitude onto the [0,1] Web-Mercator world span.
func mercatorY(lat float64) float64 {
	// Clamp away from the poles where the projection diverges.
	lat = math.Max(-85.05112878, math.Min(85.05112878, lat))
	rad := lat * math.Pi / 180
	return (1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2
}
