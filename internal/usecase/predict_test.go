package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"CryptoVision/internal/domain/models"
	"CryptoVision/internal/domain/repository"
	"CryptoVision/pkg/logger"
)

func predictFixture(p repository.Predictor) *PredictionRunner {
	return NewPredictionRunner(logger.Nop(), nopMetrics{}, p)
}

func TestPredictSuccessPassesHistoryThrough(t *testing.T) {
	predictor := &fakePredictor{predict: func(bundle models.HistoricalBundle) (models.PredictionBundle, error) {
		series := map[string][]float64{
			"bitcoin" + models.FutureSuffix: {51000, 52000},
		}
		for k, v := range bundle.Series {
			series[k] = v
		}
		return models.PredictionBundle{Duration: bundle.Duration, Series: series}, nil
	}}
	r := predictFixture(predictor)

	input := models.HistoricalBundle{
		Duration: 30,
		Series:   map[string][]float64{"bitcoin" + models.PastSuffix: {50000, 51000, 50500}},
	}
	result := r.Predict(context.Background(), input)

	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	if result.Message != "Prediction completed successfully" {
		t.Fatalf("message = %q", result.Message)
	}
	past := result.Data.Series["bitcoin"+models.PastSuffix]
	if len(past) != 3 || past[0] != 50000 || past[2] != 50500 {
		t.Fatalf("history not passed through: %v", past)
	}
	if future := result.Data.Series["bitcoin"+models.FutureSuffix]; len(future) != 2 {
		t.Fatalf("missing future series: %v", result.Data.Series)
	}
}

func TestPredictRoundsSubmittedHistory(t *testing.T) {
	predictor := &fakePredictor{predict: func(bundle models.HistoricalBundle) (models.PredictionBundle, error) {
		return models.PredictionBundle{Duration: bundle.Duration, Series: bundle.Series}, nil
	}}
	r := predictFixture(predictor)

	input := models.HistoricalBundle{
		Duration: 30,
		Series:   map[string][]float64{"bitcoin" + models.PastSuffix: {50000.4, 51000.6, 50499.5}},
	}
	r.Predict(context.Background(), input)

	got := predictor.submitted.Series["bitcoin"+models.PastSuffix]
	want := []float64{50000, 51001, 50500}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("submitted[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	// the caller's bundle keeps its precision
	if input.Series["bitcoin"+models.PastSuffix][0] != 50000.4 {
		t.Fatalf("caller bundle was mutated: %v", input.Series)
	}
}

func TestPredictEmptyStreamMergesMockFutures(t *testing.T) {
	predictor := &fakePredictor{predict: func(models.HistoricalBundle) (models.PredictionBundle, error) {
		return models.PredictionBundle{}, fmt.Errorf("poll: %w", repository.ErrNoPrediction)
	}}
	r := predictFixture(predictor)

	input := models.HistoricalBundle{
		Duration: 14,
		Series:   map[string][]float64{"doge" + models.PastSuffix: {0.12, 0.13}},
	}
	result := r.Predict(context.Background(), input)

	if !result.Success {
		t.Fatalf("an empty stream still counts as success, got %+v", result)
	}
	if result.Data.Duration != 14 {
		t.Fatalf("duration = %d, want 14", result.Data.Duration)
	}
	if _, ok := result.Data.Series["doge"+models.PastSuffix]; !ok {
		t.Fatalf("submitted history dropped: %v", result.Data.Series)
	}
	btc := result.Data.Series["bitcoin"+models.FutureSuffix]
	if len(btc) != len(bitcoinMockFuture) || btc[0] != 50938.82 {
		t.Fatalf("bitcoin mock future = %v", btc)
	}
	if len(result.Data.Series["ethereum"+models.FutureSuffix]) != len(ethereumMockFuture) {
		t.Fatalf("ethereum mock future missing: %v", result.Data.Series)
	}
}

func TestPredictTransportFailureReturnsMockBundle(t *testing.T) {
	predictor := &fakePredictor{predict: func(models.HistoricalBundle) (models.PredictionBundle, error) {
		return models.PredictionBundle{}, errors.New("connection refused")
	}}
	r := predictFixture(predictor)

	input := models.HistoricalBundle{
		Duration: 21,
		Series:   map[string][]float64{"bitcoin" + models.PastSuffix: {60000, 61000}},
	}
	result := r.Predict(context.Background(), input)

	if result.Success {
		t.Fatalf("transport failure must not report success: %+v", result)
	}
	if result.Message != "Prediction failed, using mock data" {
		t.Fatalf("message = %q", result.Message)
	}
	if result.Details != "connection refused" {
		t.Fatalf("details = %q", result.Details)
	}
	if result.Data.Duration != 21 {
		t.Fatalf("duration = %d, want 21", result.Data.Duration)
	}
	// real history survives into the mock bundle, defaults fill the rest
	if got := result.Data.Series["bitcoin"+models.PastSuffix]; len(got) != 2 || got[0] != 60000 {
		t.Fatalf("bitcoin past = %v", got)
	}
	if got := result.Data.Series["ethereum"+models.PastSuffix]; len(got) != len(ethereumDefaultPast) {
		t.Fatalf("ethereum default past = %v", got)
	}
	for _, key := range []string{"bitcoin" + models.FutureSuffix, "ethereum" + models.FutureSuffix} {
		if len(result.Data.Series[key]) == 0 {
			t.Fatalf("missing %s in mock bundle", key)
		}
	}
}

func TestPredictNeverPanics(t *testing.T) {
	predictor := &fakePredictor{predict: func(models.HistoricalBundle) (models.PredictionBundle, error) {
		panic("malformed response")
	}}
	r := predictFixture(predictor)

	result := r.Predict(context.Background(), models.HistoricalBundle{Duration: 0})
	if result.Success {
		t.Fatalf("panic path must report failure: %+v", result)
	}
	if result.Data.Duration != defaultForecastDays {
		t.Fatalf("duration = %d, want the %d-day default", result.Data.Duration, defaultForecastDays)
	}
	if result.Details != "malformed response" {
		t.Fatalf("details = %q", result.Details)
	}
}
