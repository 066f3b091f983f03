package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/store"
	"github.com/raphaelgruber/ctxkeep-go/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	st, err := store.Open(t.TempDir(), nil, nil)
	require.NoError(t, err)

	handler := web.NewHandler(st, metrics.NewCollector(), "test-project", nil)
	mux, err := handler.Routes()
	require.NoError(t, err)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, st
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := getJSON(t, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatsEndpoint(t *testing.T) {
	srv, st := newTestServer(t)

	_, _, err := st.AddEntry("The cache layer keeps a ninety second TTL on session lookups", "assistant", nil, nil, nil)
	require.NoError(t, err)

	var got struct {
		Project string `json:"project"`
		Stats   struct {
			EntryCount int `json:"entry_count"`
		} `json:"stats"`
	}
	resp := getJSON(t, srv.URL+"/api/stats", &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "test-project", got.Project)
	assert.Equal(t, 1, got.Stats.EntryCount)
}

func TestEntriesEndpoint(t *testing.T) {
	srv, st := newTestServer(t)

	_, _, err := st.AddEntry("Auth entries carry the auth topic", "assistant", []string{"auth"}, nil, nil)
	require.NoError(t, err)
	_, _, err = st.AddEntry("Database entries carry the database topic", "assistant", []string{"database"}, nil, nil)
	require.NoError(t, err)

	var got struct {
		Count int `json:"count"`
	}
	getJSON(t, srv.URL+"/api/entries?topic=auth", &got)
	assert.Equal(t, 1, got.Count)

	getJSON(t, srv.URL+"/api/entries", &got)
	assert.Equal(t, 2, got.Count)
}

func TestGraphEndpoint(t *testing.T) {
	srv, st := newTestServer(t)

	id, _, err := st.AddEntry("A single entry projects to a single node", "assistant", nil, nil, nil)
	require.NoError(t, err)
	_, err = st.CreateSummary([]string{id}, "one node")
	require.NoError(t, err)

	var got struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	getJSON(t, srv.URL+"/api/graph", &got)
	assert.Len(t, got.Nodes, 2)
	assert.Len(t, got.Edges, 1)
}

func TestRecallEndpoint(t *testing.T) {
	srv, st := newTestServer(t)

	_, _, err := st.AddEntry("Recall over HTTP returns the same compressed result shape as the engine", "assistant", nil, nil, nil)
	require.NoError(t, err)

	var got struct {
		Text          string `json:"text"`
		Included      int    `json:"included"`
		TokenEstimate int    `json:"token_estimate"`
	}
	resp := getJSON(t, srv.URL+"/api/recall?max_tokens=500", &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, got.Included)
	assert.Contains(t, got.Text, "Recall over HTTP")

	t.Run("bad params rejected", func(t *testing.T) {
		resp := getJSON(t, srv.URL+"/api/recall?max_tokens=nope", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp = getJSON(t, srv.URL+"/api/recall?min_quality=7", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	var got struct {
		UptimeSeconds float64 `json:"uptime_seconds"`
	}
	resp := getJSON(t, srv.URL+"/api/metrics", &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSPAFallback(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/", "/some/client/route"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "path %s", path)
	}
}
