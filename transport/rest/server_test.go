package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/testing/suite"
)

func newTestServer(t *testing.T, checks map[string]HealthCheck) *httptest.Server {
	t.Helper()

	logger := suite.NewLogger()

	page, err := NewPageHandler(logger, "9191")
	require.NoError(t, err)

	srv := httptest.NewServer(New(logger, NewPingHandler(logger, checks), page).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint: noctx // test request
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestServer_Ping(t *testing.T) {
	t.Run("Answers pong", func(t *testing.T) {
		// Given: a running server without checks
		srv := newTestServer(t, nil)

		// When: /ping is requested
		resp, body := get(t, srv.URL+"/ping")

		// Then: pong is returned
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "pong", body)
	})

	t.Run("Answers pong while checks pass", func(t *testing.T) {
		// Given: a server with a healthy dependency
		srv := newTestServer(t, map[string]HealthCheck{
			"redis": func(context.Context) error { return nil },
		})

		// When: /ping is requested
		resp, body := get(t, srv.URL+"/ping")

		// Then: pong is returned
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "pong", body)
	})

	t.Run("Reports a failing check", func(t *testing.T) {
		// Given: a server whose storage is down
		srv := newTestServer(t, map[string]HealthCheck{
			"redis": func(context.Context) error { return errors.New("connection refused") },
		})

		// When: /ping is requested
		resp, body := get(t, srv.URL+"/ping")

		// Then: the failing dependency is named
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "redis unavailable\n", body)
	})
}

func TestServer_Index(t *testing.T) {
	t.Run("Serves the game page", func(t *testing.T) {
		// Given: a running server
		srv := newTestServer(t, nil)

		// When: the root is requested
		resp, body := get(t, srv.URL+"/")

		// Then: the page points at the socket port
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, body, `const socketPort = "9191";`)
		assert.Contains(t, body, "League Table")
	})

	t.Run("Unknown paths return 404", func(t *testing.T) {
		// Given: a running server
		srv := newTestServer(t, nil)

		// When: an unknown path is requested
		resp, _ := get(t, srv.URL+"/missing")

		// Then: not found is returned
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
