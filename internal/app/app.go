package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/config"
	"github.com/guttosm/coinpulse/internal/api"
	"github.com/guttosm/coinpulse/internal/cache"
	"github.com/guttosm/coinpulse/internal/coingecko"
	"github.com/guttosm/coinpulse/internal/service"
)

// sourceFactory builds the upstream client; overridden in tests to point at a fake provider.
var sourceFactory = func(cfg config.UpstreamConfig) service.MarketSource {
	return coingecko.NewClient(cfg.BaseURL,
		coingecko.WithAPIKey(cfg.APIKey),
		coingecko.WithTimeout(cfg.Timeout),
	)
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the CoinGecko client from config.AppConfig.Upstream.
//   - Creates the process-wide cache slot.
//   - Creates the aggregation service with the configured TTL and fallback policy.
//   - Configures the Gin router and registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	if problems := config.Validate(cfg); len(problems) > 0 {
		return nil, nil, fmt.Errorf("invalid configuration: %v", problems)
	}

	source := sourceFactory(cfg.Upstream)
	store := cache.NewStore()

	svc := service.NewCryptoDataService(source, store, service.Options{
		CoinIDs:       cfg.Upstream.CoinIDs,
		TTL:           cfg.Cache.TTL,
		MockWhenEmpty: cfg.Fallback.Mode == config.FallbackMock,
	})

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	api.NewHealthHandler(svc.Ready).Register(router)

	// Nothing to release: the cache is in memory and the HTTP client holds no dedicated resources.
	cleanup := func() {}

	return router, cleanup, nil
}
