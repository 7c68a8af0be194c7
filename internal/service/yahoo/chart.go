package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	xhttp "CryptoVision/pkg/http"
	"CryptoVision/pkg/util"
)

// ChartClient fetches daily closing prices from the Yahoo Finance v8 chart
// API for a single ticker over a time window.
type ChartClient struct {
	baseURL string
	client  *xhttp.Client
}

// NewChartClient creates a chart API client.
func NewChartClient(baseURL string, client *xhttp.Client) *ChartClient {
	return &ChartClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// chartEnvelope is the chart.result[0].indicators.quote[0].close shape.
// Close entries may be null on market holidays; pointers keep those visible
// so the caller can drop them instead of reading zeros.
type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyCloses returns the closing prices for symbol between from and to,
// daily granularity, pre/post market included, dividend and split events
// requested. Null closes are dropped and the remaining values rounded to 2
// decimal places. An empty result after filtering is an error.
func (c *ChartClient) DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]float64, error) {
	var envelope chartEnvelope
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/" + url.PathEscape(symbol),
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		},
		QueryParams: map[string][]string{
			"period1":        {strconv.FormatInt(from.Unix(), 10)},
			"period2":        {strconv.FormatInt(to.Unix(), 10)},
			"interval":       {"1d"},
			"includePrePost": {"true"},
			"events":         {"div|split"},
		},
	}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	if envelope.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s", symbol, envelope.Chart.Error.Description)
	}
	if len(envelope.Chart.Result) == 0 || len(envelope.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: invalid data structure", symbol)
	}

	raw := envelope.Chart.Result[0].Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, p := range raw {
		if p == nil {
			continue
		}
		closes = append(closes, util.Round2(*p))
	}

	if len(closes) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no valid price data", symbol)
	}

	return closes, nil
}
