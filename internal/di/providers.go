package di

import (
	"fmt"

	"CryptoVision/internal/domain/repository"
	"CryptoVision/internal/handler/api"
	"CryptoVision/internal/service/cache"
	"CryptoVision/internal/service/coingecko"
	"CryptoVision/internal/service/gradio"
	"CryptoVision/internal/service/ratelimit"
	"CryptoVision/internal/service/yahoo"
	"CryptoVision/internal/usecase"
	"CryptoVision/pkg/config"
	xhttp "CryptoVision/pkg/http"
	"CryptoVision/pkg/logger"
	"CryptoVision/pkg/metrics"
	"CryptoVision/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideBytesCache creates the snapshot cache backend chosen by config.
func ProvideBytesCache(cfg *config.Config) cache.BytesCache {
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return cache.NewTTLCache()
}

// ProvideSnapshotFetcher wires the snapshot source chain: CoinGecko, then
// the scraped Yahoo listing, then the built-in static list.
func ProvideSnapshotFetcher(
	cfg *config.Config,
	log *logger.Logger,
	m repository.Metrics,
	store cache.BytesCache,
) *usecase.SnapshotFetcher {
	limiter := ratelimit.New()

	primary := coingecko.New(
		cfg.CoinGecko.BaseURL,
		cfg.Snapshot.MaxCoins,
		xhttp.NewClient(xhttp.WithTimeout(cfg.CoinGecko.Timeout)),
		coingecko.WithLimiter(limiter, cfg.CoinGecko.RateCapacity, cfg.CoinGecko.RatePerSec),
	)
	secondary := yahoo.NewScraper(
		cfg.YahooScrape.URL,
		cfg.Snapshot.MaxCoins,
		xhttp.NewClient(xhttp.WithTimeout(cfg.YahooScrape.Timeout)),
	)

	return usecase.NewSnapshotFetcher(
		log, m, store, cfg.Snapshot.CacheTTL,
		[]repository.SnapshotSource{primary, secondary},
	)
}

// ProvideHistoricalFetcher wires the chart API client.
func ProvideHistoricalFetcher(cfg *config.Config, log *logger.Logger, m repository.Metrics) *usecase.HistoricalFetcher {
	chart := yahoo.NewChartClient(
		cfg.YahooChart.BaseURL,
		xhttp.NewClient(xhttp.WithTimeout(cfg.YahooChart.Timeout)),
	)
	return usecase.NewHistoricalFetcher(log, m, chart, cfg.YahooChart.LookbackMonths, cfg.YahooChart.MaxPoints)
}

// ProvidePredictionRunner wires the inference client.
func ProvidePredictionRunner(cfg *config.Config, log *logger.Logger, m repository.Metrics) *usecase.PredictionRunner {
	predictor := gradio.New(
		cfg.Predictor.BaseURL,
		cfg.Predictor.PollDelay,
		xhttp.NewClient(xhttp.WithTimeout(cfg.Predictor.Timeout)),
	)
	return usecase.NewPredictionRunner(log, m, predictor)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	log *logger.Logger,
	snapshots *usecase.SnapshotFetcher,
	historical *usecase.HistoricalFetcher,
	predictor *usecase.PredictionRunner,
) xhttp.Handler {
	return api.NewMarketHandler(log, snapshots, historical, predictor)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *logger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, log, handler)
}
