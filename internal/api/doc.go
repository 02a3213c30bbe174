// Package api provides the wire types and HTTP client for the zodmap data
// service.
//
// # Overview
//
// The data service exposes three read-only endpoints over JSON (plus raw
// bytes for images):
//
//   - GET /api/logs: Paginated catalog of driving logs with optional
//     summary metadata (offset/limit/include_details query parameters)
//   - GET /api/logs/{id}: Full ordered trajectory for one log
//   - GET /api/logs/{id}/image: Pre-rendered JPEG preview for one log
//
// The same structs are used by the server package to encode responses, so
// client and server cannot drift apart on field names.
//
// # Client Usage
//
// Create a client using the base URL from configuration:
//
//	client, err := api.NewClient("127.0.0.1:8787")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	page, err := client.ListLogs(ctx, api.ListQuery{Offset: 0, Limit: 50})
//	detail, err := client.FetchDetail(ctx, "000042")
//	img, err := client.FetchPreview(ctx, "000042")
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept and User-Agent headers
//   - Have a 10-second timeout (configurable via http.Client)
//   - Return wrapped errors with context about what failed
//
// # Error Handling
//
// Failures are classified into four sentinel kinds checked with errors.Is:
//
//   - ErrNotFound: Unknown log identifier, or no preview for the log (404)
//   - ErrServer: Any other failing status code from the service
//   - ErrTransport: Connection refused, timeout, DNS failure
//   - ErrDecode: Malformed JSON in a successful response
//
// Failing statuses are carried as *StatusError, preserving the status code
// and the human-readable "detail" message from the response body.
//
// # URL Construction
//
// The client accepts several base URL formats:
//
//   - "127.0.0.1:8787" → http://127.0.0.1:8787
//   - "http://mapbox.internal:9000" → used as-is
//   - "" → built-in default endpoint
//
// The scheme defaults to "http://" if not specified. Path, query, and
// fragment components are stripped from the base URL.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
//
// # Design Rationale
//
// The client is intentionally minimal:
//   - No caching (the state layer owns what is retained)
//   - No retries (errors surface as localized state, never retried here)
//   - No mutations (the service is read-only)
package api
