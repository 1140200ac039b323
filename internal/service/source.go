package service

import (
	"context"
	"encoding/json"

	"github.com/guttosm/coinpulse/internal/coingecko"
)

// MarketSource is the upstream market data provider.
// *coingecko.Client satisfies it.
type MarketSource interface {
	Global(ctx context.Context) (json.RawMessage, error)
	SimplePrice(ctx context.Context, params coingecko.PriceParams) (map[string]json.RawMessage, error)
	MarketChart(ctx context.Context, coinID string, params coingecko.ChartParams) (json.RawMessage, error)
}

var _ MarketSource = (*coingecko.Client)(nil)

// CoinRenames maps upstream coin ids to the ids exposed to clients.
var CoinRenames = map[string]string{
	"pi-network-defi": "pi-network",
}

// applyRenames returns a copy of prices with every upstream id found in table moved to its canonical id.
// Only keys change; entries are carried over untouched.
func applyRenames(prices map[string]json.RawMessage, table map[string]string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(prices))
	for id, p := range prices {
		out[id] = p
	}
	for from, to := range table {
		if p, ok := out[from]; ok {
			out[to] = p
			delete(out, from)
		}
	}
	return out
}

// requiredCoins returns the ids that must be present in every price map:
// the requested ids, minus those that only exist through a rename.
func requiredCoins(ids []string, table map[string]string) []string {
	var out []string
	for _, id := range ids {
		if _, renamed := table[id]; !renamed {
			out = append(out, id)
		}
	}
	return out
}

// canonicalCoins returns every id a client may see, renames applied.
func canonicalCoins(ids []string, table map[string]string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if to, ok := table[id]; ok {
			out = append(out, to)
			continue
		}
		out = append(out, id)
	}
	return out
}
