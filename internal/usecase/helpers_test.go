package usecase

import (
	"context"
	"time"

	"CryptoVision/internal/domain/models"
)

type nopMetrics struct{}

func (nopMetrics) RecordSourceFetch(source, outcome string) {}
func (nopMetrics) RecordFallback(operation, tier string) {}
func (nopMetrics) RecordCacheLookup(result string) {}
func (nopMetrics) RecordLatency(operation string, seconds float64) {}

type fakeSource struct {
	name  string
	calls int
	fetch func() ([]models.AssetQuote, error)
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Fetch(ctx context.Context) ([]models.AssetQuote, error) {
	s.calls++
	return s.fetch()
}

type fakeChart struct {
	calls  int
	closes func(symbol string) ([]float64, error)
}

func (c *fakeChart) DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]float64, error) {
	c.calls++
	return c.closes(symbol)
}

type fakePredictor struct {
	submitted models.HistoricalBundle
	predict   func(bundle models.HistoricalBundle) (models.PredictionBundle, error)
}

func (p *fakePredictor) Predict(ctx context.Context, bundle models.HistoricalBundle) (models.PredictionBundle, error) {
	p.submitted = bundle
	return p.predict(bundle)
}
