package server

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adasviz/zodmap/internal/api"
	"github.com/adasviz/zodmap/internal/catalog"
	"github.com/adasviz/zodmap/internal/storage"
)

// startTestServer seeds an in-memory store with the logs X, Y, Z (one sample
// each, X carrying a preview) and serves the full API over it.
func startTestServer(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.NewMigrationRunner(db).Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, id := range []string{"X", "Y", "Z"} {
		require.NoError(t, store.InsertLog(ctx, &storage.RawLog{
			ID:     id,
			Origin: storage.Origin{Lat: 57.7, Lon: 11.9},
			Samples: []storage.Sample{
				{Seq: 0, DX: 0, DY: 0},
				{Seq: 1, DX: 4, DY: 2},
			},
		}))
	}
	require.NoError(t, store.InsertPreview(ctx, "X", &storage.Preview{MIME: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF}}))

	ts := httptest.NewServer(New(catalog.NewService(store)).Routes())
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL)
	require.NoError(t, err)
	return ts, client
}

func TestServer_PaginationScenario(t *testing.T) {
	_, client := startTestServer(t)
	ctx := context.Background()

	page, err := client.ListLogs(ctx, api.ListQuery{Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "X", page.Items[0].LogID)
	assert.Equal(t, "Y", page.Items[1].LogID)
	require.NotNil(t, page.NextOffset)
	assert.Equal(t, 2, *page.NextOffset)

	page, err = client.ListLogs(ctx, api.ListQuery{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Z", page.Items[0].LogID)
	assert.Nil(t, page.NextOffset)
}

func TestServer_ListWithDetails(t *testing.T) {
	_, client := startTestServer(t)

	page, err := client.ListLogs(context.Background(), api.ListQuery{Limit: 10, IncludeDetails: true})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	for _, item := range page.Items {
		require.NotNil(t, item.NumPoints, "include_details should fill point counts")
		assert.Equal(t, 2, *item.NumPoints)
		require.NotNil(t, item.Bounds)
		assert.LessOrEqual(t, item.Bounds.MinLat, item.Bounds.MaxLat)
	}
}

func TestServer_DetailAndNotFound(t *testing.T) {
	_, client := startTestServer(t)
	ctx := context.Background()

	detail, err := client.FetchDetail(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, "X", detail.LogID)
	assert.Equal(t, 2, detail.NumPoints)
	require.Len(t, detail.Trajectory, 2)
	require.NotNil(t, detail.Bounds)

	_, err = client.FetchDetail(ctx, "missing")
	assert.True(t, errors.Is(err, api.ErrNotFound), "unknown id should be 404, got %v", err)
	var se *api.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Unknown log id: missing", se.Detail)
}

func TestServer_Preview(t *testing.T) {
	_, client := startTestServer(t)
	ctx := context.Background()

	img, err := client.FetchPreview(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIME)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, img.Data)

	// Known log without a stored preview is still a 404.
	_, err = client.FetchPreview(ctx, "Y")
	assert.True(t, errors.Is(err, api.ErrNotFound))

	_, err = client.FetchPreview(ctx, "missing")
	assert.True(t, errors.Is(err, api.ErrNotFound))
}

func TestServer_BadQueryParameters(t *testing.T) {
	ts, _ := startTestServer(t)

	for _, path := range []string{
		"/api/logs?offset=-1",
		"/api/logs?offset=abc",
		"/api/logs?limit=0",
		"/api/logs?limit=abc",
	} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%s -> %s", path, body)
	}
}

func TestServer_Healthcheck(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := http.Get(ts.URL + "/healthcheck")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}
