// Package catalog implements the server-side core of zodmap: the catalog
// index, the trajectory cache, and the preview asset store.
//
// # Catalog Index
//
// The identifier list is enumerated from storage exactly once per process
// and held for the service lifetime; the service is the identifier authority
// and the catalog does not change while it runs. ListPage slices that list
// with offset/limit pagination and reports the next-page cursor, nil once
// exhausted.
//
// # Trajectory Cache
//
// Trajectories are expensive: raw metric pose offsets are loaded from
// storage, projected to lat/lon around the recording origin, and reduced to
// a bounding box. TrajectoryCache memoizes this per identifier with a
// single-flight guarantee: the "compute or join in-flight" decision is
// atomic (map mutex plus a per-key sync.Once), so N concurrent requests for
// a cold identifier run exactly one computation and share its outcome.
//
// Successful results are immutable and kept for the process lifetime: the
// cache is unbounded and never evicted or invalidated short of a restart.
// Failures are shared by the callers that joined the flight but are dropped
// from the map afterwards, so a later request may try again.
//
// # Preview Asset Store
//
// GetPreview is a pure passthrough to storage with not-found mapping. Any
// caching is the storage engine's concern.
//
// # Error Handling
//
// Unknown identifiers (and known logs without a preview) surface as wrapped
// ErrNotFound; everything else propagates as a wrapped storage or
// computation failure. Nothing is retried here.
package catalog
