package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"CryptoVision/internal/domain/models"
	"CryptoVision/internal/domain/repository"
	"CryptoVision/pkg/logger"
	"CryptoVision/pkg/util"
)

// Caller input errors, surfaced as 400-class responses before any network
// activity happens.
var (
	ErrNoAssets        = errors.New("no cryptocurrencies selected")
	ErrInvalidDuration = errors.New("invalid duration")
)

// Fixed fallback series for the two flagship assets. Any other asset that
// fails gets a synthetic series around a random base price.
var (
	bitcoinFallbackPast = []float64{
		45000, 46000, 45500, 47000, 48000, 47500, 49000, 50000, 49500, 51000,
		50500, 52000, 52500, 51500, 53000, 53500, 52800, 54000, 53200, 55000,
	}
	ethereumFallbackPast = []float64{
		3800, 3900, 3850, 4000, 4100, 4050, 4200, 4250, 4150, 4300,
		4350, 4200, 4400, 4300, 4500, 4450, 4350, 4600, 4550, 4700,
	}
)

const fallbackSeriesLen = 20

// HistoricalFetcher assembles the historical bundle: one daily closing-price
// series per requested asset over a fixed lookback window. Per-asset
// failures are replaced with fallback series and recorded, never aborting
// the batch.
type HistoricalFetcher struct {
	log            *logger.Logger
	metrics        repository.Metrics
	chart          repository.ChartAPI
	lookbackMonths int
	maxPoints      int
	now            func() time.Time
}

// HistoricalOption configures HistoricalFetcher.
type HistoricalOption func(*HistoricalFetcher)

// WithHistoricalClock overrides the time source for the lookback window.
func WithHistoricalClock(now func() time.Time) HistoricalOption {
	return func(f *HistoricalFetcher) { f.now = now }
}

// NewHistoricalFetcher builds the fetcher. lookbackMonths fixes the window
// length; duration is carried through as forecast metadata only.
func NewHistoricalFetcher(
	log *logger.Logger,
	metrics repository.Metrics,
	chart repository.ChartAPI,
	lookbackMonths, maxPoints int,
	opts ...HistoricalOption,
) *HistoricalFetcher {
	f := &HistoricalFetcher{
		log:            log,
		metrics:        metrics,
		chart:          chart,
		lookbackMonths: lookbackMonths,
		maxPoints:      maxPoints,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchHistorical returns a bundle keyed "<asset>_past" with one series per
// requested symbol. Input errors return before any network call; per-symbol
// fetch failures substitute fallback data and land in the bundle's Errors.
func (f *HistoricalFetcher) FetchHistorical(ctx context.Context, symbols []string, duration int) (models.HistoricalBundle, error) {
	if len(symbols) == 0 {
		return models.HistoricalBundle{}, ErrNoAssets
	}
	if duration <= 0 {
		return models.HistoricalBundle{}, ErrInvalidDuration
	}

	start := time.Now()
	defer func() {
		f.metrics.RecordLatency("historical_fetch", time.Since(start).Seconds())
	}()

	to := f.now()
	from := to.AddDate(0, -f.lookbackMonths, 0)

	bundle := models.HistoricalBundle{
		Duration: duration,
		Series:   make(map[string][]float64, len(symbols)),
	}

	for _, symbol := range symbols {
		key := seriesKey(symbol)
		closes, err := f.fetchOne(ctx, symbol, from, to)
		if err != nil {
			f.log.Warn("historical fetch failed, using fallback",
				logger.String("symbol", symbol),
				logger.Error(err),
			)
			f.metrics.RecordFallback("historical", "synthetic")
			bundle.Errors = append(bundle.Errors, fmt.Sprintf("%s: %v", symbol, err))
			bundle.Series[key] = fallbackSeries(key)
			continue
		}
		bundle.Series[key] = closes
	}

	return bundle, nil
}

func (f *HistoricalFetcher) fetchOne(ctx context.Context, symbol string, from, to time.Time) ([]float64, error) {
	ticker := symbol
	if !strings.Contains(ticker, "-USD") {
		ticker += "-USD"
	}

	closes, err := f.chart.DailyCloses(ctx, ticker, from, to)
	if err != nil {
		f.metrics.RecordSourceFetch("yahoo-chart", "error")
		return nil, err
	}
	f.metrics.RecordSourceFetch("yahoo-chart", "ok")

	return util.LastN(closes, f.maxPoints), nil
}

// seriesKey lowers the symbol and strips the market suffix: "DOGE-USD"
// becomes "doge_past".
func seriesKey(symbol string) string {
	return strings.ToLower(strings.Replace(symbol, "-USD", "", 1)) + models.PastSuffix
}

// fallbackSeries picks the substitute for a failed asset: fixed series for
// bitcoin and ethereum, otherwise synthetic points perturbed within 5% of a
// random base price in [100, 1100).
func fallbackSeries(key string) []float64 {
	clean := strings.TrimSuffix(key, models.PastSuffix)
	switch {
	case strings.Contains(clean, "btc") || strings.Contains(clean, "bitcoin"):
		return append([]float64(nil), bitcoinFallbackPast...)
	case strings.Contains(clean, "eth") || strings.Contains(clean, "ethereum"):
		return append([]float64(nil), ethereumFallbackPast...)
	default:
		base := rand.Float64()*1000 + 100
		series := make([]float64, fallbackSeriesLen)
		for i := range series {
			series[i] = util.Round2(base + (rand.Float64()-0.5)*base*0.1)
		}
		return series
	}
}
