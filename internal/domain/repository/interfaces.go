package repository

import (
	"context"
	"errors"
	"time"

	"CryptoVision/internal/domain/models"
)

// ErrNoPrediction reports that the inference stream completed without a data
// event. Callers substitute illustrative predictions instead of failing.
var ErrNoPrediction = errors.New("no prediction payload in result stream")

// SnapshotSource is one tier of the market snapshot chain.
type SnapshotSource interface {
	Name() string
	Fetch(ctx context.Context) ([]models.AssetQuote, error)
}

// ChartAPI provides daily closing prices for one ticker over a window.
type ChartAPI interface {
	DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]float64, error)
}

// Predictor submits a historical bundle to the external model and returns
// the predicted bundle, or ErrNoPrediction when the job produced no payload.
type Predictor interface {
	Predict(ctx context.Context, bundle models.HistoricalBundle) (models.PredictionBundle, error)
}

// Metrics records pipeline health signals.
type Metrics interface {
	RecordSourceFetch(source, outcome string)
	RecordFallback(operation, tier string)
	RecordCacheLookup(result string)
	RecordLatency(operation string, seconds float64)
}
