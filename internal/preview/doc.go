// Package preview manages the lifecycle of the one logically current
// preview-image request.
//
// # Supersession Protocol
//
// The Manager keeps a monotonic sequence counter, incremented on every
// activation and every explicit close. Activating a log stamps the new
// session with the fresh counter value; the fetch completion later presents
// that stamp to Resolve. If the counter has moved on, the completion is
// stale: its resource is released unseen and nothing changes. If it
// matches, the result commits.
//
// The underlying transport is never aborted. A superseded fetch may still
// be physically in flight; the protocol only guarantees its result can
// never be observed. This is the required fallback where true cancellation
// isn't available, and it is preserved exactly even though the fetches here
// do carry contexts.
//
// # Resource Ownership
//
// Each committed session exclusively owns its image Handle until a
// subsequent activation or close releases it. Handles release idempotently,
// so every discard path releases defensively: stale arrival, supersession
// at activation, the mandatory release step at commit, and close.
package preview
