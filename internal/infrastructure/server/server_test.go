package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/FakeOS/backend/internal/infrastructure/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	return cfg
}

func startServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	srv, err := NewServer(cfg, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		ts.Close()
	})
	return ts
}

func get(t *testing.T, client *http.Client, url string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRoutes(t *testing.T) {
	ts := startServer(t, testConfig())

	for _, path := range []string{"/", "/health", "/profile", "/sessions", "/metrics/json"} {
		t.Run(path, func(t *testing.T) {
			resp, _ := get(t, http.DefaultClient, ts.URL+path, nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
		})
	}
}

func TestPrometheusEndpoint(t *testing.T) {
	ts := startServer(t, testConfig())

	get(t, http.DefaultClient, ts.URL+"/health", nil)
	resp, body := get(t, http.DefaultClient, ts.URL+"/metrics", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "fakeos_http_requests_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestGzip(t *testing.T) {
	ts := startServer(t, testConfig())
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}

	resp, _ := get(t, client, ts.URL+"/metrics", http.Header{"Accept-Encoding": {"gzip"}})
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	resp, body := get(t, client, ts.URL+"/profile", nil)
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
	assert.True(t, strings.HasPrefix(body, "{"))
}

func TestDesktopUpgradeBypassesGzip(t *testing.T) {
	ts := startServer(t, testConfig())
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + DesktopPath

	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Accept-Encoding": {"gzip"}})
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"snapshot"`)
}

func TestProfileFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: lab\n"), 0o644))

	cfg := testConfig()
	cfg.Desktop.ProfilePath = path
	ts := startServer(t, cfg)

	_, body := get(t, http.DefaultClient, ts.URL+"/health", nil)
	assert.Contains(t, body, `"profile":"lab"`)
}

func TestBadProfileFailsStartup(t *testing.T) {
	cfg := testConfig()
	cfg.Desktop.ProfilePath = filepath.Join(t.TempDir(), "missing.toml")

	_, err := NewServer(cfg, nil)
	assert.ErrorContains(t, err, "failed to load desktop profile")
}

func TestServeAndShutdown(t *testing.T) {
	srv, err := NewServer(testConfig(), nil)
	require.NoError(t, err)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- srv.Serve(l) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + l.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-served)
}
