package models

import (
	"encoding/json"
	"time"
)

// CoinPrice is the typed view of a simple price entry when the 24h change,
// 24h volume and market cap flags are enabled. Served payloads keep the
// upstream entry as raw JSON; this view builds synthetic entries.
//
// swagger:model CoinPrice
type CoinPrice struct {
	USD          float64 `json:"usd" example:"64250.12"`
	USD24hChange float64 `json:"usd_24h_change" example:"-1.84"`
	USD24hVol    float64 `json:"usd_24h_vol" example:"28140000000"`
	USDMarketCap float64 `json:"usd_market_cap" example:"1265000000000"`
}

// ChartPoint is a [timestampMs, value] pair as returned by the market chart endpoint.
type ChartPoint [2]float64

// Time returns the point timestamp.
func (p ChartPoint) Time() time.Time { return time.UnixMilli(int64(p[0])) }

// Value returns the point value (price, market cap or volume in USD).
func (p ChartPoint) Value() float64 { return p[1] }

// MarketChart is the typed view of the market chart body, oldest point first.
//
// swagger:model MarketChart
type MarketChart struct {
	Prices       []ChartPoint `json:"prices"`
	MarketCaps   []ChartPoint `json:"market_caps,omitempty"`
	TotalVolumes []ChartPoint `json:"total_volumes,omitempty"`
}

// AggregatedData is the merged payload served by /api/crypto-data.
//
// Fields:
//   - Global: the upstream global market snapshot, passed through untouched.
//   - Prices: coin id -> upstream price entry, byte for byte. Only keys are renamed.
//   - BitcoinChart: the upstream hourly bitcoin chart over the last 24h, passed through.
//   - Timestamp: Unix milliseconds of the fetch that produced this payload.
//   - Cached: true when served from the in-memory cache (fresh or stale).
//   - CacheAge: milliseconds since the payload was stored; only on fresh cache hits.
//   - Error: set when stale data is served because the live fetch failed.
//   - Mock: set when the payload is synthetic.
//
// swagger:model AggregatedData
type AggregatedData struct {
	Global       json.RawMessage            `json:"global" swaggertype:"object"`
	Prices       map[string]json.RawMessage `json:"prices" swaggertype:"object"`
	BitcoinChart json.RawMessage            `json:"bitcoinChart" swaggertype:"object"`
	Timestamp    int64                      `json:"timestamp" example:"1760428800000"`
	Cached       bool                       `json:"cached"`
	CacheAge     *int64                     `json:"cacheAge,omitempty" example:"12500"`
	Error        string                     `json:"error,omitempty"`
	Mock         bool                       `json:"mock,omitempty"`
}

// CacheEntry wraps the last successfully fetched payload and the moment it was stored.
// Entries are replaced as a whole and never mutated after being stored.
type CacheEntry struct {
	Payload  *AggregatedData
	StoredAt time.Time
}

// Age returns how long ago the entry was stored, relative to now.
func (e CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}
