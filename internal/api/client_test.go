package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultBaseURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultBaseURL)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var gotListQuery url.Values
	var gotUserAgent string

	two := 2
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")

		switch r.URL.Path {
		case "/api/logs":
			gotListQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(ListResponse{
				Total:      3,
				Items:      []LogSummary{{LogID: "X"}, {LogID: "Y"}},
				NextOffset: &two,
			})
		case "/api/logs/000042":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(LogDetail{
				LogID:     "000042",
				NumPoints: 1,
				Bounds:    &BoundingBox{MinLat: 1, MinLon: 2, MaxLat: 3, MaxLon: 4},
				Trajectory: []TrajectoryPoint{
					{Lat: 57.7, Lon: 11.9},
				},
			})
		case "/api/logs/000042/image":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.ListLogs(ctx, ListQuery{Offset: 0, Limit: 2, IncludeDetails: true})
	if err != nil {
		t.Fatalf("ListLogs returned error: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 || page.NextOffset == nil || *page.NextOffset != 2 {
		t.Fatalf("ListLogs payload = %#v, want total=3 2 items next=2", page)
	}
	if gotListQuery.Get("offset") != "0" || gotListQuery.Get("limit") != "2" || gotListQuery.Get("include_details") != "true" {
		t.Fatalf("list query = %v", gotListQuery)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("user agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}

	detail, err := c.FetchDetail(ctx, "000042")
	if err != nil {
		t.Fatalf("FetchDetail returned error: %v", err)
	}
	if detail.LogID != "000042" || detail.NumPoints != 1 || detail.Bounds == nil {
		t.Fatalf("FetchDetail payload = %#v", detail)
	}

	img, err := c.FetchPreview(ctx, "000042")
	if err != nil {
		t.Fatalf("FetchPreview returned error: %v", err)
	}
	if img.MIME != "image/jpeg" || len(img.Data) != 3 {
		t.Fatalf("FetchPreview payload = mime %q, %d bytes", img.MIME, len(img.Data))
	}
}

func TestClient_ClassifiesErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/logs/missing":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(errorResponse{Detail: "Unknown log id: missing"})
		case "/api/logs/broken":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(errorResponse{Detail: "samples unreadable"})
		case "/api/logs/garbled":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.FetchDetail(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id error = %v, want ErrNotFound", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Detail != "Unknown log id: missing" {
		t.Fatalf("missing id error = %v, want StatusError with detail", err)
	}

	_, err = c.FetchDetail(ctx, "broken")
	if !errors.Is(err, ErrServer) {
		t.Fatalf("server error = %v, want ErrServer", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("server error = %v, should not be ErrNotFound", err)
	}

	_, err = c.FetchDetail(ctx, "garbled")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("garbled body error = %v, want ErrDecode", err)
	}

	// Transport failure: nothing is listening on the closed server's port.
	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()
	c2, err := NewClient(closedURL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c2.ListLogs(ctx, ListQuery{Limit: 1})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("connection error = %v, want ErrTransport", err)
	}
}
