package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PastSuffix and FutureSuffix name the per-asset series keys in the flat
// bundle shape consumed by the chart and the inference service.
const (
	PastSuffix   = "_past"
	FutureSuffix = "_future"
)

// HistoricalBundle holds one historical series per requested asset plus the
// forecast horizon in days. Duration is metadata for the predictor, not the
// series length. It marshals to a flat object:
//
//	{"duration":30,"bitcoin_past":[50000,51000],"errors":["DOGE-USD: ..."]}
//
// Errors is omitted when empty.
type HistoricalBundle struct {
	Duration int
	Series   map[string][]float64
	Errors   []string
}

// PredictionBundle is a HistoricalBundle extended with "_future" series for
// the same assets. It shares the flat wire shape.
type PredictionBundle struct {
	Duration int
	Series   map[string][]float64
}

// Past returns the series stored under "<asset>_past", if present.
func (b *HistoricalBundle) Past(asset string) ([]float64, bool) {
	s, ok := b.Series[asset+PastSuffix]
	return s, ok
}

func (b HistoricalBundle) MarshalJSON() ([]byte, error) {
	return marshalFlat(b.Duration, b.Series, b.Errors)
}

func (b *HistoricalBundle) UnmarshalJSON(data []byte) error {
	d, series, errs, err := unmarshalFlat(data)
	if err != nil {
		return err
	}
	b.Duration, b.Series, b.Errors = d, series, errs
	return nil
}

func (b PredictionBundle) MarshalJSON() ([]byte, error) {
	return marshalFlat(b.Duration, b.Series, nil)
}

func (b *PredictionBundle) UnmarshalJSON(data []byte) error {
	d, series, _, err := unmarshalFlat(data)
	if err != nil {
		return err
	}
	b.Duration, b.Series = d, series
	return nil
}

// marshalFlat writes the bundle as a single flat JSON object: duration first,
// then series keys in sorted order, then errors when non-empty. Deterministic
// key order keeps responses diffable and tests simple.
func marshalFlat(duration int, series map[string][]float64, errs []string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`{"duration":%d`, duration))

	keys := make([]string, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(series[k])
		if err != nil {
			return nil, err
		}
		sb.WriteByte(',')
		sb.Write(kb)
		sb.WriteByte(':')
		sb.Write(vb)
	}

	if len(errs) > 0 {
		eb, err := json.Marshal(errs)
		if err != nil {
			return nil, err
		}
		sb.WriteString(`,"errors":`)
		sb.Write(eb)
	}

	sb.WriteByte('}')
	return []byte(sb.String()), nil
}

// unmarshalFlat reads the flat object form. Keys ending in "_past" or
// "_future" become series; "duration" and "errors" are lifted out; anything
// else is ignored so the codec tolerates upstream additions.
func unmarshalFlat(data []byte) (int, map[string][]float64, []string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, nil, nil, fmt.Errorf("bundle: %w", err)
	}

	duration := 0
	series := make(map[string][]float64)
	var errs []string

	for k, v := range raw {
		switch {
		case k == "duration":
			// Some producers send duration as a float.
			var f float64
			if err := json.Unmarshal(v, &f); err != nil {
				return 0, nil, nil, fmt.Errorf("bundle duration: %w", err)
			}
			duration = int(f)
		case k == "errors":
			if err := json.Unmarshal(v, &errs); err != nil {
				return 0, nil, nil, fmt.Errorf("bundle errors: %w", err)
			}
		case strings.HasSuffix(k, PastSuffix) || strings.HasSuffix(k, FutureSuffix):
			var s []float64
			if err := json.Unmarshal(v, &s); err != nil {
				return 0, nil, nil, fmt.Errorf("bundle series %q: %w", k, err)
			}
			series[k] = s
		}
	}

	return duration, series, errs, nil
}
