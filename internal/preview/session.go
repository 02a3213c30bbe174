package preview

import (
	"sync"
)

// Handle wraps a preview image resource with explicit ownership. Exactly one
// live session may own a handle; Release is idempotent so defensive release
// on every discard path is safe.
type Handle struct {
	Data []byte
	MIME string

	mu        sync.Mutex
	released  bool
	onRelease func()
}

// NewHandle wraps image bytes. onRelease, when non-nil, runs once on the
// first Release call.
func NewHandle(data []byte, mime string, onRelease func()) *Handle {
	return &Handle{Data: data, MIME: mime, onRelease: onRelease}
}

// Release frees the underlying resource. Further calls are no-ops.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return
	}
	h.released = true
	h.Data = nil
	if h.onRelease != nil {
		h.onRelease()
	}
}

// Released reports whether the handle has been released.
func (h *Handle) Released() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Session is the one logically current preview request and its outcome.
type Session struct {
	LogID   string
	Seq     uint64
	Loading bool
	Image   *Handle
	Err     error
}

// Manager owns the preview session lifecycle. A monotonically increasing
// sequence counter, incremented on every activation and every close, makes
// every superseded fetch result provably unobservable: completions carry the
// sequence they were issued under and are discarded on mismatch. This gives
// cooperative cancellation without aborting the underlying transport.
type Manager struct {
	mu      sync.Mutex
	seq     uint64
	session *Session
}

// NewManager returns a Manager with no session.
func NewManager() *Manager {
	return &Manager{}
}

// Activate starts a new preview session for logID, superseding any previous
// session in full, and returns the sequence the caller must present when the
// fetch completes. The resource held by the superseded session is released
// here, before the new one can be adopted.
func (m *Manager) Activate(logID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	if m.session != nil {
		m.session.Image.Release()
	}
	m.session = &Session{LogID: logID, Seq: m.seq, Loading: true}
	return m.seq
}

// Resolve delivers a fetch completion issued under seq. A stale completion
// (counter has moved on) is discarded: its resource, if any, is released
// immediately without ever being exposed, and no state changes. A current
// completion commits: any resource held by the prior committed session is
// released, then the new handle or error is stored. The return value reports
// whether the completion was committed.
func (m *Manager) Resolve(seq uint64, img *Handle, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.seq || m.session == nil {
		img.Release()
		return false
	}

	// There should be no outstanding resource here, since every activation
	// increments first, but the release step is mandatory under the
	// ownership rules.
	m.session.Image.Release()

	m.session.Loading = false
	if err != nil {
		m.session.Image = nil
		m.session.Err = err
		return true
	}
	m.session.Image = img
	m.session.Err = nil
	return true
}

// Close invalidates any outstanding fetch, releases the held resource, and
// clears the session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	if m.session != nil {
		m.session.Image.Release()
	}
	m.session = nil
}

// Current returns a copy of the active session, if any. The returned Image
// pointer stays owned by the manager.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}
