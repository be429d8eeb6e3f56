package model

// Response is a generic struct for API responses
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Error   *string     `json:"error,omitempty"`
	Message string      `json:"message"`
}

// ForecastResponse pairs a parsed forecast with its rendered
// current-conditions line for the HTTP surface.
type ForecastResponse struct {
	Summary  string          `json:"summary"`
	Forecast *ForecastResult `json:"forecast"`
}
