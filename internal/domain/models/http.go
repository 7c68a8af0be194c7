package models

// HistoricalRequest is the body of POST /api/historical-prices.
type HistoricalRequest struct {
	Cryptos  []string `json:"cryptos" validate:"required,min=1,dive,required"`
	Duration int      `json:"duration" validate:"required,gt=0"`
}

// HistoricalResponse is the success envelope of the historical endpoint.
// Errors carries per-asset failures alongside degraded-but-successful data.
type HistoricalResponse struct {
	Success bool             `json:"success"`
	Data    HistoricalBundle `json:"data"`
	Errors  []string         `json:"errors,omitempty"`
	Message string           `json:"message"`
}

// PredictRequest is the body of POST /api/predict.
type PredictRequest struct {
	HistoricalData *HistoricalBundle `json:"historicalData" validate:"required"`
}

// PredictResponse is the envelope of the prediction endpoint. It is always
// served with HTTP 200; Success reports whether the live inference path
// produced Data or a mock substitute did.
type PredictResponse struct {
	Success bool             `json:"success"`
	Data    PredictionBundle `json:"data"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
	Details string           `json:"details,omitempty"`
}

// ErrorResponse is the failure envelope for caller input errors and
// unexpected internal failures.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
