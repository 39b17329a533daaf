package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"grafanagraphs/internal/config"
	"grafanagraphs/internal/grafana"
	"grafanagraphs/internal/graph"
	"grafanagraphs/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// brokenBackend loads fine but refuses to persist.
type brokenBackend struct{}

func (brokenBackend) Name() string { return "broken" }

func (brokenBackend) Load(ctx context.Context) (store.Sections, error) {
	return store.Sections{"svc1": {graph.KeyDashboard: "Hosts", graph.KeyPanelID: "1"}}, nil
}

func (brokenBackend) Persist(ctx context.Context, sections store.Sections) error {
	return errors.New("read-only filesystem")
}

func (brokenBackend) Close() error { return nil }

func newTestServer(t *testing.T, backend store.Backend, rateLimit int) (*Server, *store.Config) {
	t.Helper()

	cfg, err := store.New(context.Background(), backend)
	require.NoError(t, err)

	grafanaCfg := config.GetDefaultConfig().Grafana
	grafanaCfg.BaseURL = "https://grafana.example.com"
	renderer, err := grafana.NewRenderer(grafanaCfg)
	require.NoError(t, err)

	return New(Options{
		Form:      graph.NewForm(cfg, "http"),
		Renderer:  renderer,
		RateLimit: rateLimit,
	}), cfg
}

func newINIServer(t *testing.T) (*Server, *store.Config) {
	t.Helper()
	return newTestServer(t, store.NewINIBackend(filepath.Join(t.TempDir(), "graphs.ini")), 0)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestServer_CRUD(t *testing.T) {
	s, cfg := newINIServer(t)

	rec := do(t, s, http.MethodPost, "/api/graphs", `{"name":"svc1","dashboard":"Hosts","panelId":"1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[graphResponse](t, rec)
	assert.Equal(t, graph.MessageSaved, created.Message)

	rec = do(t, s, http.MethodGet, "/api/graphs/svc1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, graph.Graph{Name: "svc1", Dashboard: "Hosts", PanelID: "1"}, decode[graphResponse](t, rec).Graph)

	rec = do(t, s, http.MethodPut, "/api/graphs/svc1", `{"name":"svc2","dashboard":"Net"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[graphResponse](t, rec)
	assert.Equal(t, graph.Graph{Name: "svc2", Dashboard: "Net", PanelID: "1"}, updated.Graph)
	assert.Equal(t, graph.MessageUpdated, updated.Message)
	assert.False(t, cfg.HasSection("svc1"))

	rec = do(t, s, http.MethodGet, "/api/graphs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []graph.Graph{{Name: "svc2", Dashboard: "Net", PanelID: "1"}}, decode[listResponse](t, rec).Graphs)

	rec = do(t, s, http.MethodDelete, "/api/graphs/svc2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/graphs/svc2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Can't remove graph 'svc2'. Graph does not exist", decode[errorResponse](t, rec).Error)
}

func TestServer_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"get missing", http.MethodGet, "/api/graphs/ghost", "", http.StatusNotFound},
		{"update missing", http.MethodPut, "/api/graphs/ghost", `{"panelId":"2"}`, http.StatusNotFound},
		{"add existing", http.MethodPost, "/api/graphs", `{"name":"svc1","dashboard":"X","panelId":"2"}`, http.StatusConflict},
		{"rename onto existing", http.MethodPut, "/api/graphs/svc1", `{"name":"svc2"}`, http.StatusConflict},
		{"missing fields", http.MethodPost, "/api/graphs", `{"name":"svc3"}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/graphs", `{"name":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/graphs", `{"name":"a","dash":"b"}`, http.StatusBadRequest},
		{"url missing", http.MethodGet, "/api/graphs/ghost/url", "", http.StatusNotFound},
		{"fractional panel id", http.MethodPost, "/api/graphs", `{"name":"svc3","dashboard":"X","panelId":1.5}`, http.StatusBadRequest},
		{"boolean panel id", http.MethodPost, "/api/graphs", `{"name":"svc3","dashboard":"X","panelId":true}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newINIServer(t)
			require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/graphs", `{"name":"svc1","dashboard":"Hosts","panelId":"1"}`).Code)
			require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/graphs", `{"name":"svc2","dashboard":"Net","panelId":"2"}`).Code)

			rec := do(t, s, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[errorResponse](t, rec).RequestID)
		})
	}
}

func TestServer_NumericPanelID(t *testing.T) {
	s, cfg := newINIServer(t)

	rec := do(t, s, http.MethodPost, "/api/graphs", `{"name":"svc1","dashboard":"Hosts","panelId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "1", decode[graphResponse](t, rec).Graph.PanelID)

	rec = do(t, s, http.MethodPut, "/api/graphs/svc1", `{"panelId":42}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "42", decode[graphResponse](t, rec).Graph.PanelID)

	values, ok := cfg.GetSection("svc1")
	require.True(t, ok)
	assert.Equal(t, "42", values[graph.KeyPanelID])
}

func TestServer_SaveFailure(t *testing.T) {
	s, cfg := newTestServer(t, brokenBackend{}, 0)

	rec := do(t, s, http.MethodPost, "/api/graphs", `{"name":"svc2","dashboard":"Net","panelId":"2"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "read-only filesystem")
	assert.False(t, cfg.HasSection("svc2"))
	assert.False(t, cfg.Dirty())
}

func TestServer_URL(t *testing.T) {
	s, _ := newINIServer(t)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/graphs", `{"name":"svc1","dashboard":"Hosts","panelId":"1"}`).Code)

	rec := do(t, s, http.MethodGet, "/api/graphs/svc1/url?host=web01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, urlResponse{
		Name: "svc1",
		URL:  "https://grafana.example.com/d-solo/Hosts?panelId=1&var-hostname=web01&var-service=svc1&from=now-6h&to=now",
	}, decode[urlResponse](t, rec))
}

func TestServer_RequestID(t *testing.T) {
	s, _ := newINIServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = do(t, s, http.MethodGet, "/healthz", "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestServer_Metrics(t *testing.T) {
	s, _ := newINIServer(t)
	do(t, s, http.MethodGet, "/api/graphs/ghost", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "grafanagraphs_graphs_configured")
}

func TestServer_RateLimit(t *testing.T) {
	s, _ := newTestServer(t, store.NewINIBackend(filepath.Join(t.TempDir(), "graphs.ini")), 2)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/graphs", "").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/graphs", "").Code)
	rec := do(t, s, http.MethodGet, "/api/graphs", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// Probes are not limited.
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz", "").Code)
}

func TestServer_MCPMount(t *testing.T) {
	cfg, err := store.New(context.Background(), store.NewINIBackend(filepath.Join(t.TempDir(), "graphs.ini")))
	require.NoError(t, err)

	s := New(Options{
		Form: graph.NewForm(cfg, "http"),
		MCP: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}),
	})

	assert.Equal(t, http.StatusAccepted, do(t, s, http.MethodPost, "/mcp", "{}").Code)
	assert.Equal(t, http.StatusNotImplemented, do(t, s, http.MethodGet, "/api/graphs/any/url", "").Code)
}

func TestServer_ServeShutdown(t *testing.T) {
	s, _ := newINIServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(ctx, ln)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve didn't return after cancel")
	}
}
