package api

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced by the client. Callers classify failures with
// errors.Is rather than by inspecting messages.
var (
	// ErrNotFound reports an unknown log identifier or a missing preview.
	ErrNotFound = errors.New("not found")
	// ErrServer reports a computation or storage failure on the service side.
	ErrServer = errors.New("server failure")
	// ErrTransport reports a network or connection level failure.
	ErrTransport = errors.New("transport failure")
	// ErrDecode reports a malformed response body.
	ErrDecode = errors.New("decode failure")
)

// StatusError is returned for any response with a failing status code. It
// preserves the status and the human-readable detail the service attached.
type StatusError struct {
	Status int
	Path   string
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Detail)
}

// Unwrap maps the status onto a sentinel kind: 404 is ErrNotFound, every
// other failing status is ErrServer.
func (e *StatusError) Unwrap() error {
	if e.Status == 404 {
		return ErrNotFound
	}
	return ErrServer
}
