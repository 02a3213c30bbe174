package storage

import "errors"

// ErrNotFound reports a log identifier (or preview) with no stored data.
var ErrNotFound = errors.New("not found in storage")

// Origin is the geodetic anchor of a recording. Raw samples are expressed as
// metric offsets relative to this point.
type Origin struct {
	Lat float64
	Lon float64
}

// Sample is one raw pose offset of a driving log, in meters east (DX) and
// north (DY) of the origin. Seq carries the temporal recording order.
type Sample struct {
	Seq int
	DX  float64
	DY  float64
}

// RawLog bundles a log's origin with its ordered samples.
type RawLog struct {
	ID      string
	Origin  Origin
	Samples []Sample
}

// Preview is a pre-rendered preview image blob for one log.
type Preview struct {
	MIME string
	Data []byte
}
