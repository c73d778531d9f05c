package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func pingReturning(err error) func(context.Context) error {
	return func(context.Context) error { return err }
}

func newHealth(dbErr, redisErr error) *HealthHandler {
	return NewHealthHandler("v1.0.0",
		Check{Name: "database", Ping: pingReturning(dbErr)},
		Check{Name: "redis", Ping: pingReturning(redisErr)},
	)
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := newHealth(errors.New("down"), errors.New("down"))

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dbErr      error
		redisErr   error
		wantCode   int
		wantStatus string
	}{
		{"all up", nil, nil, http.StatusOK, "ok"},
		{"database down", errors.New("connection refused"), nil, http.StatusServiceUnavailable, "down"},
		{"redis down", nil, errors.New("connection refused"), http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			newHealth(tt.dbErr, tt.redisErr).Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if resp := decodeHealth(t, rec); resp.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, resp.Status)
			}
		})
	}
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newHealth(nil, nil).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decodeHealth(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Version != "v1.0.0" {
		t.Errorf("expected version 'v1.0.0', got %q", resp.Version)
	}
	for _, name := range []string{"database", "redis"} {
		comp, ok := resp.Components[name]
		if !ok {
			t.Fatalf("expected %q component in response", name)
		}
		if comp.Status != "ok" {
			t.Errorf("expected %s status 'ok', got %q", name, comp.Status)
		}
		if comp.Latency == "" {
			t.Errorf("expected non-empty latency for %s", name)
		}
	}
}

func TestHealth_RedisDown(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newHealth(nil, errors.New("connection refused")).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	resp := decodeHealth(t, rec)
	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}
	if resp.Components["database"].Status != "ok" {
		t.Errorf("expected database 'ok', got %q", resp.Components["database"].Status)
	}
	if got := resp.Components["redis"]; got.Status != "down" || got.Latency != "" {
		t.Errorf("expected redis 'down' without latency, got %+v", got)
	}
}
