package coingecko

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PriceParams are the query options of the simple price endpoint.
type PriceParams struct {
	IDs               []string
	VsCurrency        string
	Include24hrChange bool
	Include24hrVol    bool
	IncludeMarketCap  bool
}

// ChartParams are the query options of the market chart endpoint.
type ChartParams struct {
	VsCurrency string
	Days       int
	Interval   string
}

func (p PriceParams) values() url.Values {
	q := url.Values{}
	q.Set("ids", strings.Join(p.IDs, ","))
	q.Set("vs_currencies", p.VsCurrency)
	q.Set("include_24hr_change", strconv.FormatBool(p.Include24hrChange))
	q.Set("include_24hr_vol", strconv.FormatBool(p.Include24hrVol))
	q.Set("include_market_cap", strconv.FormatBool(p.IncludeMarketCap))
	return q
}

func (p ChartParams) values() url.Values {
	q := url.Values{}
	q.Set("vs_currency", p.VsCurrency)
	q.Set("days", strconv.Itoa(p.Days))
	if p.Interval != "" {
		q.Set("interval", p.Interval)
	}
	return q
}

// Global returns the data member of GET /global, undecoded.
func (c *Client) Global(ctx context.Context) (json.RawMessage, error) {
	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.get(ctx, "/global", nil, &body); err != nil {
		return nil, err
	}
	if !isObject(body.Data) {
		return nil, fmt.Errorf("coingecko /global: %w: missing data object", ErrMalformed)
	}
	return body.Data, nil
}

// SimplePrice calls GET /simple/price and returns the price map keyed by upstream coin id.
// Entries are kept as the upstream sent them, nulls and extra members included.
func (c *Client) SimplePrice(ctx context.Context, params PriceParams) (map[string]json.RawMessage, error) {
	if len(params.IDs) == 0 {
		return nil, fmt.Errorf("coingecko /simple/price: no coin ids")
	}
	out := map[string]json.RawMessage{}
	if err := c.get(ctx, "/simple/price", params.values(), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("coingecko /simple/price: %w: empty price map", ErrMalformed)
	}
	for id, entry := range out {
		if !isObject(entry) {
			return nil, fmt.Errorf("coingecko /simple/price: %w: entry %s is not an object", ErrMalformed, id)
		}
	}
	return out, nil
}

// MarketChart calls GET /coins/{id}/market_chart and returns the body undecoded.
// The body must carry at least one price point.
func (c *Client) MarketChart(ctx context.Context, coinID string, params ChartParams) (json.RawMessage, error) {
	path := "/coins/" + url.PathEscape(coinID) + "/market_chart"
	var raw json.RawMessage
	if err := c.get(ctx, path, params.values(), &raw); err != nil {
		return nil, err
	}
	var series struct {
		Prices []json.RawMessage `json:"prices"`
	}
	if !isObject(raw) {
		return nil, fmt.Errorf("coingecko %s: %w: body is not an object", path, ErrMalformed)
	}
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, fmt.Errorf("coingecko %s: %w: %v", path, ErrMalformed, err)
	}
	if len(series.Prices) == 0 {
		return nil, fmt.Errorf("coingecko %s: %w: no price points", path, ErrMalformed)
	}
	return raw, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
