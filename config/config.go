package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fallback modes applied when a live fetch fails and nothing is cached.
const (
	FallbackError = "error" // HTTP 500 with {"error","message"}
	FallbackMock  = "mock"  // HTTP 200 with a synthetic payload flagged mock=true
)

// DefaultCoinIDs is the tracked coin list requested from the simple price endpoint.
// "pi-network-defi" is the upstream id of Pi Network and is renamed after fetch.
const DefaultCoinIDs = "bitcoin,ethereum,ripple,solana,stellar,pi-network-defi"

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	COINGECKO_BASE_URL=https://api.coingecko.com/api/v3
//	COINGECKO_API_KEY=
//	COIN_IDS=bitcoin,ethereum,ripple,solana,stellar,pi-network-defi
//	UPSTREAM_TIMEOUT=8s
//	CACHE_TTL=60s
//	FALLBACK_MODE=error
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Upstream UpstreamConfig // Market data provider settings
	Cache    CacheConfig    // In-memory cache settings
	Fallback FallbackConfig // Degraded response policy
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// UpstreamConfig defines how the CoinGecko API is reached.
//
// Fields:
//   - BaseURL: API root, without trailing slash.
//   - APIKey: optional demo key, sent as x-cg-demo-api-key.
//   - Timeout: deadline applied to each upstream call individually.
//   - CoinIDs: ids requested from the simple price endpoint.
type UpstreamConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	CoinIDs []string
}

// CacheConfig controls the freshness window of the in-memory cache.
type CacheConfig struct {
	TTL time.Duration
}

// FallbackConfig selects what is served when a fetch fails and no cache exists.
type FallbackConfig struct {
	Mode string // FallbackError or FallbackMock
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app.
func LoadConfig() {
	readConfig()
	validateConfig()
}

// Load populates AppConfig like LoadConfig but reports invalid settings as an error
// instead of exiting. Used where the process must keep serving, such as serverless instances.
func Load() error {
	readConfig()
	if problems := Validate(AppConfig); len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

func readConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3")
	viper.SetDefault("COINGECKO_API_KEY", "")
	viper.SetDefault("COIN_IDS", DefaultCoinIDs)
	viper.SetDefault("UPSTREAM_TIMEOUT", "8s")

	viper.SetDefault("CACHE_TTL", "60s")
	viper.SetDefault("FALLBACK_MODE", FallbackError)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Upstream: UpstreamConfig{
			BaseURL: strings.TrimRight(viper.GetString("COINGECKO_BASE_URL"), "/"),
			APIKey:  viper.GetString("COINGECKO_API_KEY"),
			Timeout: viper.GetDuration("UPSTREAM_TIMEOUT"),
			CoinIDs: splitList(viper.GetString("COIN_IDS")),
		},
		Cache: CacheConfig{
			TTL: viper.GetDuration("CACHE_TTL"),
		},
		Fallback: FallbackConfig{
			Mode: strings.ToLower(strings.TrimSpace(viper.GetString("FALLBACK_MODE"))),
		},
	}
}

// splitList parses a comma separated list, dropping blanks.
// viper's GetStringSlice splits env values on whitespace, not commas.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing or out of range.
func validateConfig() {
	if problems := Validate(AppConfig); len(problems) > 0 {
		log.Fatalf("invalid configuration: %v\n", problems)
	}
}

// Validate reports every missing or invalid setting in cfg.
func Validate(cfg Config) []string {
	var problems []string

	if cfg.Server.Port == "" {
		problems = append(problems, "SERVER_PORT")
	}
	if cfg.Upstream.BaseURL == "" {
		problems = append(problems, "COINGECKO_BASE_URL")
	}
	if len(cfg.Upstream.CoinIDs) == 0 {
		problems = append(problems, "COIN_IDS")
	}
	if cfg.Upstream.Timeout <= 0 {
		problems = append(problems, "UPSTREAM_TIMEOUT")
	}
	if cfg.Cache.TTL <= 0 {
		problems = append(problems, "CACHE_TTL")
	}
	if cfg.Fallback.Mode != FallbackError && cfg.Fallback.Mode != FallbackMock {
		problems = append(problems, "FALLBACK_MODE")
	}

	return problems
}
