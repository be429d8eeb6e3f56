package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/wickardo/darksky-forecast-api/internal/config"
	"github.com/wickardo/darksky-forecast-api/internal/model"
	"github.com/wickardo/darksky-forecast-api/internal/service"
)

type ForecastHandler struct {
	ForecastService service.ForecastServiceInterface
}

func NewForecastHandler(svc ...service.ForecastServiceInterface) *ForecastHandler {
	var forecastService service.ForecastServiceInterface
	if len(svc) > 0 && svc[0] != nil {
		forecastService = svc[0]
	} else {
		forecastService = service.NewForecastService()
	}
	return &ForecastHandler{
		ForecastService: forecastService,
	}
}

func (h *ForecastHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

// HandleForecast serves GET /forecast?lat=<decimal>&lng=<decimal>. The
// coordinates are parsed as exact decimals so the values echoed upstream
// match what the caller sent digit for digit.
func (h *ForecastHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errMsg := "Method not allowed"
		w.Header().Set("Allow", http.MethodGet)
		h.writeJSONResponse(w, http.StatusMethodNotAllowed, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		errMsg := "Missing 'lat' or 'lng' query parameter"
		h.writeJSONResponse(w, http.StatusBadRequest, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	lat, err := decimal.NewFromString(latStr)
	if err != nil {
		errMsg := "Invalid 'lat' query parameter"
		h.writeJSONResponse(w, http.StatusBadRequest, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}
	lng, err := decimal.NewFromString(lngStr)
	if err != nil {
		errMsg := "Invalid 'lng' query parameter"
		h.writeJSONResponse(w, http.StatusBadRequest, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	forecast, err := h.ForecastService.GetForecast(r.Context(), lat, lng)
	if err != nil {
		errMsg := "Failed to fetch forecast data"
		h.writeJSONResponse(w, http.StatusBadGateway, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	// Summarize the forecast already in hand rather than going through
	// ForecastService.CurrentConditions, which would fetch a second time.
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data: model.ForecastResponse{
			Summary:  forecast.CurrentSummary(),
			Forecast: forecast,
		},
		Message: "Success",
	})
}
