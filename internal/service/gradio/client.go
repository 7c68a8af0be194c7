// Package gradio speaks the asynchronous job protocol of the external
// inference service: POST the payload to the call endpoint, receive an
// event id, wait out the job's minimum latency, then GET the result stream
// and pick the first data event.
package gradio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"CryptoVision/internal/domain/models"
	"CryptoVision/internal/domain/repository"
	xhttp "CryptoVision/pkg/http"
)

const dataPrefix = "data: "

// Client submits historical bundles for prediction.
type Client struct {
	baseURL   string
	pollDelay time.Duration
	client    *xhttp.Client
}

// New creates an inference client. pollDelay is the fixed wait between
// submission and the single result poll; the upstream job has no status
// endpoint, so there is no retry loop to tune.
func New(baseURL string, pollDelay time.Duration, client *xhttp.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), pollDelay: pollDelay, client: client}
}

type callResponse struct {
	EventID string `json:"event_id"`
}

// Predict runs the submit/wait/poll protocol and returns the prediction
// payload. The bundle is serialized as a single JSON string argument, the
// shape the model endpoint expects. A missing data event in the stream is
// an error; the caller decides what to substitute.
func (c *Client) Predict(ctx context.Context, bundle models.HistoricalBundle) (models.PredictionBundle, error) {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return models.PredictionBundle{}, fmt.Errorf("gradio marshal bundle: %w", err)
	}

	var call callResponse
	err = c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     c.baseURL + "/gradio_api/call/predict",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    map[string][]string{"data": {string(payload)}},
	}, &call)
	if err != nil {
		return models.PredictionBundle{}, fmt.Errorf("gradio submit: %w", err)
	}
	if call.EventID == "" {
		return models.PredictionBundle{}, fmt.Errorf("gradio submit: no event id in response")
	}

	select {
	case <-time.After(c.pollDelay):
	case <-ctx.Done():
		return models.PredictionBundle{}, ctx.Err()
	}

	var stream []byte
	err = c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/gradio_api/call/predict/" + call.EventID,
	}, &stream)
	if err != nil {
		return models.PredictionBundle{}, fmt.Errorf("gradio result: %w", err)
	}

	result, ok := parseEventStream(stream)
	if !ok {
		return models.PredictionBundle{}, fmt.Errorf("gradio result: %w", repository.ErrNoPrediction)
	}

	return result, nil
}

// parseEventStream scans the newline-delimited result body for "data: "
// lines. The first line whose remainder parses as a non-empty JSON array
// yields the payload: the array's first element. Unparseable lines are
// skipped.
func parseEventStream(stream []byte) (models.PredictionBundle, bool) {
	for _, line := range strings.Split(string(stream), "\n") {
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(line[len(dataPrefix):]), &arr); err != nil || len(arr) == 0 {
			continue
		}
		var bundle models.PredictionBundle
		if err := json.Unmarshal(arr[0], &bundle); err != nil {
			continue
		}
		return bundle, true
	}
	return models.PredictionBundle{}, false
}
