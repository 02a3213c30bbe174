// Package server exposes the catalog service over HTTP.
//
// Endpoints:
//
//   - GET /api/logs?offset&limit&include_details: paginated catalog listing
//   - GET /api/logs/{id}: full trajectory detail (404 for unknown ids)
//   - GET /api/logs/{id}/image: preview bytes with the stored Content-Type
//   - GET /healthcheck: liveness probe
//
// Success, not-found, and server failure are distinguished by status code
// (200/404/500, plus 400 for malformed query parameters); failed responses
// carry a {"detail": "<message>"} body. Run serves until its context is
// cancelled, then drains in-flight requests with a bounded shutdown.
package server
