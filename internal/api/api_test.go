package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgrid/pkg/pipeline"
)

func newTestServer() *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewServer(pipeline.NewRunner(nil, nil, logger), logger)
}

func postLayout(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/layout", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a request ID")
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer()
	rec := postLayout(t, s, `{
		"width": 800, "height": 600, "spacing": 10,
		"elements": [
			{"width": 16, "height": 9, "source": "a.jpg", "kind": "image"},
			{"width": 4, "height": 3},
			{"width": 1, "height": 1}
		]
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Height      float64 `json:"height"`
		Evaluations int     `json:"evaluations"`
		Fallback    bool    `json:"fallback"`
		Rows        [][]struct {
			X      float64 `json:"x"`
			Width  float64 `json:"width"`
			Source string  `json:"source"`
			Kind   string  `json:"kind"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Height <= 0 {
		t.Errorf("height = %v, want > 0", resp.Height)
	}
	if resp.Evaluations == 0 {
		t.Error("evaluations should be reported")
	}
	if resp.Fallback {
		t.Error("feasible request should not fall back")
	}

	total := 0
	var sourced bool
	for _, row := range resp.Rows {
		total += len(row)
		for _, b := range row {
			if b.Source == "a.jpg" && b.Kind == "image" {
				sourced = true
			}
		}
	}
	if total != 3 {
		t.Errorf("blocks = %d, want 3", total)
	}
	if !sourced {
		t.Error("media element should keep source and kind in the response")
	}
}

func TestLayoutFallback(t *testing.T) {
	s := newTestServer()
	rec := postLayout(t, s, `{
		"width": 300, "height": 300, "spacing": 10,
		"elements": [{"width": 100000, "height": 9}]
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Fallback bool   `json:"fallback"`
		Warning  string `json:"warning"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Fallback || resp.Warning == "" {
		t.Errorf("degraded layout should set fallback and warning, got %+v", resp)
	}
}

func TestLayoutNoFallback(t *testing.T) {
	s := newTestServer()
	rec := postLayout(t, s, `{
		"width": 300, "height": 300, "spacing": 10, "no_fallback": true,
		"elements": [{"width": 100000, "height": 9}]
	}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body: %s", rec.Code, rec.Body)
	}
}

func TestLayoutBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"no elements", `{"width": 100, "height": 100, "elements": []}`},
		{"zero dimensions", `{"width": 100, "height": 100, "elements": [{"width": 0, "height": 9}]}`},
		{"negative frame", `{"width": -5, "height": 100, "elements": [{"width": 16, "height": 9}]}`},
		{"negative spacing", `{"width": 100, "height": 100, "spacing": -1, "elements": [{"width": 16, "height": 9}]}`},
		{"bad kind", `{"width": 100, "height": 100, "elements": [{"width": 16, "height": 9, "kind": "audio", "source": "x"}]}`},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postLayout(t, s, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body)
			}
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error body should be JSON: %v", err)
			}
			if resp.Error == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("request ID = %q, want upstream value preserved", got)
	}
}
