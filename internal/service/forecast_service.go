package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/wickardo/darksky-forecast-api/internal/config"
	"github.com/wickardo/darksky-forecast-api/internal/model"
	"github.com/wickardo/darksky-forecast-api/internal/repository"
)

// ErrAPIKeyMissing is returned when no Dark Sky API key is configured.
var ErrAPIKeyMissing = errors.New("DARKSKY_API_KEY environment variable not set")

// ForecastServiceInterface defines the forecast operations exposed to the
// HTTP layer.
type ForecastServiceInterface interface {
	GetForecast(ctx context.Context, lat, lng decimal.Decimal) (*model.ForecastResult, error)
	CurrentConditions(ctx context.Context, lat, lng decimal.Decimal) (string, error)
}

// ForecastService resolves the API key from configuration and delegates to
// the repository.
type ForecastService struct {
	ForecastRepo repository.ForecastRepository
}

func NewForecastService(repo ...repository.ForecastRepository) *ForecastService {
	var forecastRepo repository.ForecastRepository
	if len(repo) > 0 && repo[0] != nil {
		forecastRepo = repo[0]
	} else {
		forecastRepo = repository.NewForecastRepository()
	}
	return &ForecastService{
		ForecastRepo: forecastRepo,
	}
}

func (s *ForecastService) GetForecast(ctx context.Context, lat, lng decimal.Decimal) (*model.ForecastResult, error) {
	apiKey := config.GetDarkSkyAPIKey()
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}
	return s.ForecastRepo.GetForecast(ctx, apiKey, lat, lng)
}

// CurrentConditions fetches the forecast and renders the one-line
// current-conditions summary, for callers that only want the line. It issues
// its own upstream request; callers that already hold a ForecastResult
// should use its CurrentSummary instead of paying for a second fetch.
// Formatting never fails; any error comes from the fetch.
func (s *ForecastService) CurrentConditions(ctx context.Context, lat, lng decimal.Decimal) (string, error) {
	forecast, err := s.GetForecast(ctx, lat, lng)
	if err != nil {
		return "", err
	}
	return forecast.CurrentSummary(), nil
}
