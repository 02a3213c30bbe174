// Package viewport computes whether trajectories render at the current map
// zoom and where the view should move when one is focused.
//
// Rendering is gated on a fixed threshold zoom: below it no trajectory is
// drawn and hover state is cleared. Focusing a trajectory fits its bounding
// box into the viewport (minus a fixed pixel padding) through a
// BoundsFitter and floors the result at the threshold, so a freshly focused
// trajectory is always rendered. MercatorFitter is a self-contained
// Web-Mercator fitter for environments without an external map widget; both
// computations are deterministic given the same inputs.
package viewport
