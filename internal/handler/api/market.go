package api

import (
	"errors"
	"fmt"
	"net/http"

	"CryptoVision/internal/domain/models"
	"CryptoVision/internal/usecase"
	xhttp "CryptoVision/pkg/http"
	"CryptoVision/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketHandler exposes the pipeline over HTTP: the asset snapshot for the
// selection UI, the historical bundle builder, and the prediction runner.
type MarketHandler struct {
	log        *logger.Logger
	snapshots  *usecase.SnapshotFetcher
	historical *usecase.HistoricalFetcher
	predictor  *usecase.PredictionRunner
}

func NewMarketHandler(
	log *logger.Logger,
	snapshots *usecase.SnapshotFetcher,
	historical *usecase.HistoricalFetcher,
	predictor *usecase.PredictionRunner,
) *MarketHandler {
	return &MarketHandler{
		log:        log,
		snapshots:  snapshots,
		historical: historical,
		predictor:  predictor,
	}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/cryptos", h.Cryptos)
	g.POST("/historical-prices", h.HistoricalPrices)
	g.POST("/predict", h.Predict)
}

// Cryptos returns the current asset list. Always 200: the snapshot fetcher
// absorbs every upstream failure. The max-age matches the snapshot TTL so
// front caches revalidate on the same cadence.
func (h *MarketHandler) Cryptos(c echo.Context) error {
	quotes := h.snapshots.GetSnapshot(c.Request().Context())
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=300")
	return c.JSON(http.StatusOK, quotes)
}

// HistoricalPrices builds the historical bundle for the requested assets.
// Caller input errors get a 400; per-asset upstream failures degrade to
// fallback series and are listed in the errors field of a 200 response.
func (h *MarketHandler) HistoricalPrices(c echo.Context) error {
	req := &models.HistoricalRequest{}
	if verrs := xhttp.ReadAndValidateRequest(c, req); verrs != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   "Invalid request",
			Details: xhttp.JoinValidationErrors(verrs),
		})
	}

	bundle, err := h.historical.FetchHistorical(c.Request().Context(), req.Cryptos, req.Duration)
	if err != nil {
		if errors.Is(err, usecase.ErrNoAssets) || errors.Is(err, usecase.ErrInvalidDuration) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		h.log.Error("historical fetch failed", logger.Error(err))
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   "Failed to fetch historical data",
			Details: err.Error(),
		})
	}

	// errors ride alongside data, not inside it
	data := bundle
	data.Errors = nil

	return c.JSON(http.StatusOK, models.HistoricalResponse{
		Success: true,
		Data:    data,
		Errors:  bundle.Errors,
		Message: fmt.Sprintf("Successfully fetched historical data for %d cryptocurrencies", len(bundle.Series)),
	})
}

// Predict runs the inference protocol. The response is always 200 with a
// renderable bundle; Success tells the client whether it is live or mock.
func (h *MarketHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verrs := xhttp.ReadAndValidateRequest(c, req); verrs != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   "No historical data provided",
			Details: xhttp.JoinValidationErrors(verrs),
		})
	}

	result := h.predictor.Predict(c.Request().Context(), *req.HistoricalData)

	resp := models.PredictResponse{
		Success: result.Success,
		Data:    result.Data,
	}
	if result.Success {
		resp.Message = result.Message
	} else {
		resp.Error = result.Message
		resp.Details = result.Details
	}
	return c.JSON(http.StatusOK, resp)
}
