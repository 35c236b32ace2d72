package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/careergraph"
	cghttp "github.com/aretw0/careergraph/pkg/adapters/http"
	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*cghttp.Server, *session.Manager) {
	t.Helper()
	eng, err := careergraph.New(context.Background())
	require.NoError(t, err)
	m := eng.Sessions()
	t.Cleanup(func() { m.CloseAll(context.Background()) })
	return cghttp.NewServer(eng, m), m
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetSwagger(t *testing.T) {
	doc, err := cghttp.GetSwagger()
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.NotNil(t, doc.Paths.Value("/sessions/{id}/intents"))
}

func TestHealthAndInfo(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()

	w := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.Equal(t, careergraph.Version, info["version"])

	w = do(t, h, http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestGetGraph(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()

	w := do(t, h, http.MethodGet, "/graph", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var g domain.Graph
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	root, ok := g.Root()
	require.True(t, ok)
	assert.Equal(t, "Mannan", root.ID)

	w = do(t, h, http.MethodGet, "/graph?format=mermaid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))

	w = do(t, h, http.MethodGet, "/report", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetLayout(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()

	w := do(t, h, http.MethodGet, "/layout?width=1280&height=720", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var nodes []domain.PositionedNode
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nodes))
	assert.Len(t, nodes, 14)

	w = do(t, h, http.MethodGet, "/layout?width=-1&height=720", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/layout", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	srv, m := newServer(t)
	h := srv.Handler()

	w := do(t, h, http.MethodPost, "/sessions", domain.Viewport{Width: 1280, Height: 720})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var info session.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	require.NotEmpty(t, info.ID)
	assert.Equal(t, 1, info.Visible)
	assert.Equal(t, "/sessions/"+info.ID, w.Header().Get("Location"))
	assert.Equal(t, 1, m.Len())

	base := "/sessions/" + info.ID
	w = do(t, h, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, base+"/intents", session.Intent{Type: session.IntentPointerEnterGraph})
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = do(t, h, http.MethodPost, base+"/intents", session.Intent{Type: session.IntentClickNode, NodeID: "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, base+"/intents", session.Intent{Type: "wave"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, base+"/viewport", domain.Viewport{Width: 0, Height: 720})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, base+"/viewport", domain.Viewport{Width: 1920, Height: 1080})
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = do(t, h, http.MethodGet, base+"/canvas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap domain.CanvasSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, info.ID, snap.SessionID)
	assert.NotEmpty(t, snap.Nodes)

	w = do(t, h, http.MethodGet, "/sessions", nil)
	assert.JSONEq(t, `["`+info.ID+`"]`, w.Body.String())

	w = do(t, h, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSession_BadViewport(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()

	w := do(t, h, http.MethodPost, "/sessions", domain.Viewport{Width: 100, Height: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// readEvents streams SSE event names from resp until it ends.
func readEvents(resp *http.Response) <-chan string {
	out := make(chan string, 64)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if name, ok := strings.CutPrefix(scanner.Text(), "event: "); ok {
				out <- name
			}
		}
	}()
	return out
}

func waitFor(t *testing.T, events <-chan string, want string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got, ok := <-events:
			require.True(t, ok, "stream ended before %q", want)
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestStreamSession(t *testing.T) {
	srv, m := newServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	view, err := m.Create(context.Background(), domain.Viewport{Width: 1280, Height: 720})
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/sessions/" + view.ID + "/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := readEvents(resp)
	waitFor(t, events, "ping")
	waitFor(t, events, "diff")

	require.NoError(t, m.Dispatch(context.Background(), view.ID, session.Intent{Type: session.IntentPointerEnterGraph}))
	waitFor(t, events, "diff")
	waitFor(t, events, "fit")

	require.NoError(t, m.Close(context.Background(), view.ID))
	waitFor(t, events, "closed")
}

func TestStreamSession_Unknown(t *testing.T) {
	srv, _ := newServer(t)
	w := do(t, srv.Handler(), http.MethodGet, "/sessions/nope/stream", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeEvents_Reload(t *testing.T) {
	srv, _ := newServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	events := readEvents(resp)
	waitFor(t, events, "ping")

	require.Eventually(t, func() bool {
		return srv.Streams.Subscribers(cghttp.ReloadTopic) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, srv.Streams.Broadcast(cghttp.ReloadTopic, "intenseye"))
	waitFor(t, events, "reload")
}

func TestStreamManager_UnsubscribeTwice(t *testing.T) {
	sm := cghttp.NewStreamManager(nil)
	_, cancel := sm.Subscribe("t")
	assert.Equal(t, 1, sm.Subscribers("t"))
	cancel()
	cancel()
	assert.Equal(t, 0, sm.Subscribers("t"))
	assert.Equal(t, 0, sm.Broadcast("t", "x"))
}

func TestMetricsHandler(t *testing.T) {
	eng, err := careergraph.New(context.Background())
	require.NoError(t, err)
	h := cghttp.NewHandler(eng, eng.Sessions(), cghttp.WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("careergraph_up 1\n"))
	})))

	w := do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "careergraph_up")
}
