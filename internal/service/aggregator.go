package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/coinpulse/internal/cache"
	"github.com/guttosm/coinpulse/internal/coingecko"
	"github.com/guttosm/coinpulse/internal/domain/models"
	"github.com/guttosm/coinpulse/internal/logger"
)

const (
	// StaleCacheMessage is set in the error field when stale data is served.
	StaleCacheMessage = "Using stale cache due to API error"

	// DefaultTTL is the freshness window of the cache.
	DefaultTTL = 60 * time.Second

	chartCoin  = "bitcoin"
	vsCurrency = "usd"
	flightKey  = "crypto-data"
)

// ErrNotReady is reported by Ready when the last fetch failed and no data is cached.
var ErrNotReady = errors.New("no market data available")

// CryptoDataService returns the aggregated market payload.
type CryptoDataService interface {
	// GetCryptoData serves the cached payload while fresh, otherwise fetches it.
	// On fetch failure it degrades to stale cache, then to the configured empty-cache policy.
	// An error is only returned when no fallback applies.
	GetCryptoData(ctx context.Context) (*models.AggregatedData, error)
	// Ready returns ErrNotReady when the service has nothing to serve.
	Ready() error
}

// Options configures the aggregator.
type Options struct {
	CoinIDs       []string          // ids requested from the simple price endpoint
	Renames       map[string]string // upstream id -> canonical id; defaults to CoinRenames
	TTL           time.Duration     // freshness window; defaults to DefaultTTL
	MockWhenEmpty bool              // serve synthetic data instead of an error when nothing is cached
	Now           func() time.Time  // clock; defaults to time.Now
	RandFloat     func() float64    // [0,1) source for synthetic data; defaults to math/rand
}

type aggregator struct {
	source MarketSource
	store  cache.Store
	opts   Options
	group  singleflight.Group
	failed atomic.Bool
	log    zerolog.Logger
}

// NewCryptoDataService wires a source and a store into a CryptoDataService.
func NewCryptoDataService(source MarketSource, store cache.Store, opts Options) CryptoDataService {
	if opts.Renames == nil {
		opts.Renames = CoinRenames
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RandFloat == nil {
		opts.RandFloat = rand.Float64
	}
	return &aggregator{
		source: source,
		store:  store,
		opts:   opts,
		log:    logger.Component("aggregator"),
	}
}

func (a *aggregator) GetCryptoData(ctx context.Context) (*models.AggregatedData, error) {
	now := a.opts.Now()

	if entry, ok := a.store.Load(); ok {
		age := entry.Age(now)
		if age < 0 {
			age = 0
		}
		if age < a.opts.TTL {
			a.log.Info().Int64("cache_age_ms", age.Milliseconds()).Msg("serving from cache")
			return fromCache(entry.Payload, age), nil
		}
	}

	data, err := a.refresh(ctx, now)
	if err == nil {
		return data, nil
	}

	a.log.Error().Err(err).Msg("upstream fetch failed")

	if entry, ok := a.store.Load(); ok {
		a.log.Warn().Int64("timestamp", entry.Payload.Timestamp).Msg("serving stale cache")
		return stale(entry.Payload), nil
	}

	if a.opts.MockWhenEmpty {
		a.log.Warn().Msg("serving mock data")
		return a.mock(now), nil
	}

	return nil, err
}

func (a *aggregator) Ready() error {
	if _, ok := a.store.Load(); ok {
		return nil
	}
	if a.failed.Load() {
		return ErrNotReady
	}
	return nil
}

// refresh fetches a new payload and stores it. Concurrent callers share one in-flight fetch.
// The fetch is detached from the caller's cancellation so a departing client cannot fail it for the others.
func (a *aggregator) refresh(ctx context.Context, now time.Time) (*models.AggregatedData, error) {
	v, err, shared := a.group.Do(flightKey, func() (any, error) {
		a.log.Info().Msg("fetching fresh data")
		data, err := a.fetch(context.WithoutCancel(ctx), now)
		if err != nil {
			a.failed.Store(true)
			return nil, err
		}
		a.store.Save(data, now)
		a.failed.Store(false)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		a.log.Debug().Msg("joined in-flight fetch")
	}
	out := *v.(*models.AggregatedData)
	return &out, nil
}

// fetch issues the three upstream calls concurrently and waits for all of them.
// Any single failure fails the whole fetch.
func (a *aggregator) fetch(ctx context.Context, now time.Time) (*models.AggregatedData, error) {
	var (
		g      errgroup.Group
		global json.RawMessage
		prices map[string]json.RawMessage
		chart  json.RawMessage
	)

	g.Go(func() error {
		var err error
		global, err = a.source.Global(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		prices, err = a.source.SimplePrice(ctx, coingecko.PriceParams{
			IDs:               a.opts.CoinIDs,
			VsCurrency:        vsCurrency,
			Include24hrChange: true,
			Include24hrVol:    true,
			IncludeMarketCap:  true,
		})
		return err
	})
	g.Go(func() error {
		var err error
		chart, err = a.source.MarketChart(ctx, chartCoin, coingecko.ChartParams{
			VsCurrency: vsCurrency,
			Days:       1,
			Interval:   "hourly",
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	prices = applyRenames(prices, a.opts.Renames)
	for _, id := range requiredCoins(a.opts.CoinIDs, a.opts.Renames) {
		if _, ok := prices[id]; !ok {
			return nil, fmt.Errorf("%w: missing price for %s", coingecko.ErrMalformed, id)
		}
	}

	return &models.AggregatedData{
		Global:       global,
		Prices:       prices,
		BitcoinChart: chart,
		Timestamp:    now.UnixMilli(),
		Cached:       false,
	}, nil
}

// fromCache copies a stored payload and annotates it as a fresh cache hit.
func fromCache(p *models.AggregatedData, age time.Duration) *models.AggregatedData {
	out := *p
	ms := age.Milliseconds()
	out.Cached = true
	out.CacheAge = &ms
	return &out
}

// stale copies a stored payload and annotates it as served after a failed fetch.
func stale(p *models.AggregatedData) *models.AggregatedData {
	out := *p
	out.Cached = true
	out.CacheAge = nil
	out.Error = StaleCacheMessage
	return &out
}
