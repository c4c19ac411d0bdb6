package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, path string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	rec := httptest.NewRecorder()
	NewRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]string
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, body := get(t, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, ServiceName, body["service"])
}

func TestStatusAliases(t *testing.T) {
	for _, path := range []string{"/status", "/api/status"} {
		rec, body := get(t, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "Property monitoring service is active", body["message"], path)
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	rec, _ := get(t, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	NewRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewServerAddr(t *testing.T) {
	assert.Equal(t, ":10000", NewServer(10000).httpServer.Addr)
}
