package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/wickardo/darksky-forecast-api/internal/config"
	"github.com/wickardo/darksky-forecast-api/internal/model"
)

// Custom error types
var (
	ErrTransport      = errors.New("forecast request failed")
	ErrUpstreamStatus = errors.New("forecast provider returned an error status")
)

// ForecastRepository defines the interface for forecast data access
type ForecastRepository interface {
	GetForecast(ctx context.Context, apiKey string, lat, lng decimal.Decimal) (*model.ForecastResult, error)
}

// forecastRepository implements ForecastRepository against the Dark Sky API
type forecastRepository struct {
	httpClient *http.Client
}

// NewForecastRepository creates a new forecast repository instance
func NewForecastRepository(httpClient ...*http.Client) ForecastRepository {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &forecastRepository{
		httpClient: client,
	}
}

// ForecastURL builds the request URL for one coordinate query:
// <base>/<api-key>/<lat>,<lng>. The API key is percent-encoded as a path
// segment; the coordinates are interpolated as their exact decimal strings,
// comma and sign included, since those need no encoding.
func ForecastURL(apiKey string, lat, lng decimal.Decimal) string {
	return fmt.Sprintf("%s/%s/%s,%s",
		config.GetDarkSkyForecastURL(), url.PathEscape(apiKey), lat.String(), lng.String())
}

// GetForecast issues exactly one GET against the forecast endpoint and
// parses the body into the forecast model. The API key is opaque and passed
// through unvalidated; the provider rejects bad keys at the HTTP layer.
// There are no retries and no caching; cancellation comes from ctx.
func (r *forecastRepository) GetForecast(ctx context.Context, apiKey string, lat, lng decimal.Decimal) (*model.ForecastResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ForecastURL(apiKey, lat, lng), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return model.ParseForecast(body)
}
