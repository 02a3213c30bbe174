package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// LogFetcher defines the interface for fetching catalog, detail, and preview
// data. This interface is implemented by *Client and can be used for testing.
type LogFetcher interface {
	ListLogs(ctx context.Context, query ListQuery) (ListResponse, error)
	FetchDetail(ctx context.Context, logID string) (*LogDetail, error)
	FetchPreview(ctx context.Context, logID string) (PreviewImage, error)
}

// Ensure Client implements LogFetcher at compile time.
var _ LogFetcher = (*Client)(nil)

// Client talks to the zodmap data service HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "127.0.0.1:8787"
	defaultUserAgent = "zodmap/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. An empty value falls back
// to the built-in default endpoint.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListQuery configures /api/logs requests.
type ListQuery struct {
	Offset         int
	Limit          int
	IncludeDetails bool
}

// ListLogs retrieves one catalog page.
func (c *Client) ListLogs(ctx context.Context, query ListQuery) (ListResponse, error) {
	if c == nil {
		return ListResponse{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("offset", strconv.Itoa(query.Offset))
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.IncludeDetails {
		values.Set("include_details", "true")
	}
	rel := &url.URL{Path: "/api/logs", RawQuery: values.Encode()}
	var payload ListResponse
	if err := c.getJSON(ctx, rel, &payload); err != nil {
		return ListResponse{}, err
	}
	return payload, nil
}

// FetchDetail retrieves the full trajectory for a single log.
func (c *Client) FetchDetail(ctx context.Context, logID string) (*LogDetail, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(logID) == "" {
		return nil, fmt.Errorf("log id required")
	}
	rel := &url.URL{Path: "/api/logs/" + url.PathEscape(logID)}
	var payload LogDetail
	if err := c.getJSON(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchPreview retrieves the pre-rendered preview image for a single log.
func (c *Client) FetchPreview(ctx context.Context, logID string) (PreviewImage, error) {
	if c == nil {
		return PreviewImage{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(logID) == "" {
		return PreviewImage{}, fmt.Errorf("log id required")
	}
	rel := &url.URL{Path: "/api/logs/" + url.PathEscape(logID) + "/image"}

	resp, err := c.get(ctx, rel, "image/*, */*")
	if err != nil {
		return PreviewImage{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return PreviewImage{}, statusError(rel, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return PreviewImage{}, fmt.Errorf("read preview body: %w: %w", ErrTransport, err)
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}
	return PreviewImage{Data: data, MIME: mime}, nil
}

func (c *Client) getJSON(ctx context.Context, rel *url.URL, dest any) error {
	resp, err := c.get(ctx, rel, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return statusError(rel, resp)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w: %w", ErrDecode, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rel *url.URL, accept string) (*http.Response, error) {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w: %w", ErrTransport, err)
	}
	return resp, nil
}

// statusError drains the failed response and extracts the service's detail
// message when the body carries one.
func statusError(rel *url.URL, resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)
	return &StatusError{Status: resp.StatusCode, Path: rel.Path, Detail: body.Detail}
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
