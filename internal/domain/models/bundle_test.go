package models

import (
	"encoding/json"
	"testing"
)

func TestHistoricalBundleMarshalFlat(t *testing.T) {
	b := HistoricalBundle{
		Duration: 30,
		Series: map[string][]float64{
			"ethereum_past": {4000, 4100},
			"bitcoin_past":  {50000, 51000, 50500},
		},
		Errors: []string{"DOGE-USD: no chart data"},
	}

	got, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"duration":30,"bitcoin_past":[50000,51000,50500],"ethereum_past":[4000,4100],"errors":["DOGE-USD: no chart data"]}`
	if string(got) != want {
		t.Fatalf("marshal = %s, want %s", got, want)
	}
}

func TestHistoricalBundleMarshalOmitsEmptyErrors(t *testing.T) {
	b := HistoricalBundle{
		Duration: 7,
		Series:   map[string][]float64{"sol_past": {178}},
	}

	got, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"duration":7,"sol_past":[178]}`
	if string(got) != want {
		t.Fatalf("marshal = %s, want %s", got, want)
	}
}

func TestHistoricalBundleUnmarshalFlat(t *testing.T) {
	in := `{"duration":30.0,"bitcoin_past":[50000,51000],"errors":["SOL: outage"],"model_version":"v2"}`

	var b HistoricalBundle
	if err := json.Unmarshal([]byte(in), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.Duration != 30 {
		t.Fatalf("duration = %d, want 30", b.Duration)
	}
	if len(b.Series) != 1 {
		t.Fatalf("series = %v, unknown keys must be ignored", b.Series)
	}
	past, ok := b.Past("bitcoin")
	if !ok || len(past) != 2 || past[0] != 50000 {
		t.Fatalf("bitcoin past = %v, ok=%v", past, ok)
	}
	if len(b.Errors) != 1 || b.Errors[0] != "SOL: outage" {
		t.Fatalf("errors = %v", b.Errors)
	}
}

func TestPredictionBundleRoundTrip(t *testing.T) {
	b := PredictionBundle{
		Duration: 14,
		Series: map[string][]float64{
			"bitcoin_past":   {50000, 51000},
			"bitcoin_future": {51500.25, 52000.5},
		},
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back PredictionBundle
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Duration != 14 {
		t.Fatalf("duration = %d", back.Duration)
	}
	if got := back.Series["bitcoin_future"]; len(got) != 2 || got[0] != 51500.25 {
		t.Fatalf("future = %v", got)
	}
}

func TestHistoricalBundleUnmarshalRejectsBadSeries(t *testing.T) {
	var b HistoricalBundle
	if err := json.Unmarshal([]byte(`{"duration":30,"bitcoin_past":"oops"}`), &b); err == nil {
		t.Fatal("expected an error for a non-array series")
	}
}
