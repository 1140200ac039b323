package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/internal/domain/models"
	"github.com/guttosm/coinpulse/internal/service"
)

type mockDataService struct {
	resp  *models.AggregatedData
	err   error
	calls int
}

func (m *mockDataService) GetCryptoData(_ context.Context) (*models.AggregatedData, error) {
	m.calls++
	return m.resp, m.err
}

func (m *mockDataService) Ready() error { return nil }

var _ service.CryptoDataService = (*mockDataService)(nil)

func setupRouterWithMock(s service.CryptoDataService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(s))
}

func samplePayload() *models.AggregatedData {
	return &models.AggregatedData{
		Global:       json.RawMessage(`{"active_cryptocurrencies":17000}`),
		Prices:       map[string]json.RawMessage{"bitcoin": json.RawMessage(`{"usd":64000}`)},
		BitcoinChart: json.RawMessage(`{"prices":[[1,2]]}`),
		Timestamp:    1760428800000,
	}
}

func TestGetCryptoData_TableDriven(t *testing.T) {
	age := int64(1200)
	cached := samplePayload()
	cached.Cached, cached.CacheAge = true, &age
	stale := samplePayload()
	stale.Cached, stale.Error = true, service.StaleCacheMessage
	mock := samplePayload()
	mock.Mock = true

	cases := []struct {
		name      string
		svc       *mockDataService
		method    string
		status    int
		wantCalls int
		assert    func(t *testing.T, body []byte)
	}{
		{
			name:      "fresh",
			svc:       &mockDataService{resp: samplePayload()},
			method:    http.MethodGet,
			status:    http.StatusOK,
			wantCalls: 1,
			assert: func(t *testing.T, body []byte) {
				var out map[string]any
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out["cached"] != false {
					t.Fatalf("cached must be false: %v", out)
				}
				for _, absent := range []string{"cacheAge", "error", "mock"} {
					if _, ok := out[absent]; ok {
						t.Fatalf("%s must be absent: %v", absent, out)
					}
				}
				if _, ok := out["bitcoinChart"].(map[string]any)["prices"]; !ok {
					t.Fatalf("missing bitcoinChart.prices: %v", out)
				}
			},
		},
		{
			name:      "cache hit",
			svc:       &mockDataService{resp: cached},
			method:    http.MethodGet,
			status:    http.StatusOK,
			wantCalls: 1,
			assert: func(t *testing.T, body []byte) {
				var out models.AggregatedData
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if !out.Cached || out.CacheAge == nil || *out.CacheAge != 1200 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:      "stale",
			svc:       &mockDataService{resp: stale},
			method:    http.MethodGet,
			status:    http.StatusOK,
			wantCalls: 1,
			assert: func(t *testing.T, body []byte) {
				var out models.AggregatedData
				_ = json.Unmarshal(body, &out)
				if !out.Cached || out.Error != service.StaleCacheMessage {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:      "mock",
			svc:       &mockDataService{resp: mock},
			method:    http.MethodGet,
			status:    http.StatusOK,
			wantCalls: 1,
			assert: func(t *testing.T, body []byte) {
				var out models.AggregatedData
				_ = json.Unmarshal(body, &out)
				if !out.Mock {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:      "no fallback",
			svc:       &mockDataService{err: errors.New("coingecko /global: status 503")},
			method:    http.MethodGet,
			status:    http.StatusInternalServerError,
			wantCalls: 1,
			assert: func(t *testing.T, body []byte) {
				var out map[string]any
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out["error"] != FetchFailedMessage || out["message"] != "coingecko /global: status 503" {
					t.Fatalf("unexpected body: %v", out)
				}
			},
		},
		{
			name:      "preflight",
			svc:       &mockDataService{resp: samplePayload()},
			method:    http.MethodOptions,
			status:    http.StatusOK,
			wantCalls: 0,
			assert: func(t *testing.T, body []byte) {
				if len(body) != 0 {
					t.Fatalf("preflight body must be empty, got %q", body)
				}
			},
		},
		{
			name:      "other methods fall through",
			svc:       &mockDataService{resp: samplePayload()},
			method:    http.MethodPost,
			status:    http.StatusOK,
			wantCalls: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(tc.method, CryptoDataPath, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.svc.calls != tc.wantCalls {
				t.Fatalf("expected %d service calls, got %d", tc.wantCalls, tc.svc.calls)
			}
			if w.Header().Get("Access-Control-Allow-Origin") != "*" || w.Header().Get("Content-Type") != "application/json" {
				t.Fatalf("missing cors/content-type headers: %v", w.Header())
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

func TestCacheStatus(t *testing.T) {
	cases := []struct {
		in   models.AggregatedData
		want string
	}{
		{models.AggregatedData{}, "fresh"},
		{models.AggregatedData{Cached: true}, "hit"},
		{models.AggregatedData{Cached: true, Error: "x"}, "stale"},
		{models.AggregatedData{Mock: true}, "mock"},
	}
	for _, c := range cases {
		if got := cacheStatus(&c.in); got != c.want {
			t.Fatalf("cacheStatus(%+v)=%q, want %q", c.in, got, c.want)
		}
	}
}
