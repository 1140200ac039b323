package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestHandler_ServesThroughRouter(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/global":
			_, _ = w.Write([]byte(`{"data":{"active_cryptocurrencies":1}}`))
		case "/simple/price":
			_, _ = w.Write([]byte(`{"bitcoin":{"usd":1},"ethereum":{"usd":1},"ripple":{"usd":1},"solana":{"usd":1},"stellar":{"usd":1}}`))
		case "/coins/bitcoin/market_chart":
			_, _ = w.Write([]byte(`{"prices":[[1,1]]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	t.Setenv("COINGECKO_BASE_URL", upstream.URL)
	t.Setenv("FALLBACK_MODE", "error")

	w := httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodOptions, "/api/crypto-data", nil))
	if w.Code != http.StatusOK || w.Body.Len() != 0 || calls.Load() != 0 {
		t.Fatalf("preflight: code=%d body=%q calls=%d", w.Code, w.Body.String(), calls.Load())
	}

	w = httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodGet, "/api/crypto-data", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get: code=%d body=%s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["cached"] != false || calls.Load() != 3 {
		t.Fatalf("unexpected body=%v calls=%d", body, calls.Load())
	}

	// Warm instance reuses the cache.
	w = httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodGet, "/api/crypto-data", nil))
	if calls.Load() != 3 {
		t.Fatalf("warm invocation must hit the cache, calls=%d", calls.Load())
	}
}

func TestInitialize_InvalidConfigIsNotFatal(t *testing.T) {
	t.Setenv("FALLBACK_MODE", "retry")

	h, err := initialize()
	if err == nil || h != nil {
		t.Fatalf("expected init error, got handler=%v err=%v", h, err)
	}

	w := httptest.NewRecorder()
	writeInitError(w, err)
	if w.Code != http.StatusInternalServerError || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("unexpected response code=%d headers=%v", w.Code, w.Header())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["error"] != "Failed to fetch data" || !strings.Contains(body["message"].(string), "FALLBACK_MODE") {
		t.Fatalf("unexpected body %v", body)
	}
}
