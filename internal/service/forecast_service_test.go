package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wickardo/darksky-forecast-api/internal/model"
	"github.com/wickardo/darksky-forecast-api/internal/repository"
)

// Mock repository for testing
type mockForecastRepository struct {
	shouldError bool
	mockData    *model.ForecastResult
	gotAPIKey   string
	gotLat      decimal.Decimal
	gotLng      decimal.Decimal
}

func (m *mockForecastRepository) GetForecast(ctx context.Context, apiKey string, lat, lng decimal.Decimal) (*model.ForecastResult, error) {
	m.gotAPIKey = apiKey
	m.gotLat = lat
	m.gotLng = lng
	if m.shouldError {
		return nil, repository.ErrTransport
	}
	return m.mockData, nil
}

func foggyForecast() *model.ForecastResult {
	return &model.ForecastResult{
		Latitude:  "37.8267",
		Longitude: "-122.4233",
		Timezone:  "America/Los_Angeles",
		Currently: model.Weather{
			Temperature: 61.2,
			Icon:        "fog",
			Summary:     "Foggy",
		},
		Flags:  model.Flags{Units: "us"},
		Offset: -8,
	}
}

func TestForecastService_GetForecast(t *testing.T) {
	tests := []struct {
		name        string
		shouldError bool
		mockData    *model.ForecastResult
		expectError bool
	}{
		{
			name:        "Successful forecast retrieval",
			shouldError: false,
			mockData:    foggyForecast(),
			expectError: false,
		},
		{
			name:        "Repository error",
			shouldError: true,
			mockData:    nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DARKSKY_API_KEY", "testkey")

			mockRepo := &mockForecastRepository{
				shouldError: tt.shouldError,
				mockData:    tt.mockData,
			}
			service := &ForecastService{
				ForecastRepo: mockRepo,
			}

			lat, _ := decimal.NewFromString("37.8267")
			lng, _ := decimal.NewFromString("-122.4233")
			result, err := service.GetForecast(context.Background(), lat, lng)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if result == nil {
				t.Fatal("Expected result but got nil")
			}
			if result.Timezone != tt.mockData.Timezone {
				t.Errorf("Expected timezone %s, got %s", tt.mockData.Timezone, result.Timezone)
			}
			if mockRepo.gotAPIKey != "testkey" {
				t.Errorf("Expected API key to pass through unvalidated, got %q", mockRepo.gotAPIKey)
			}
			if mockRepo.gotLat.String() != "37.8267" || mockRepo.gotLng.String() != "-122.4233" {
				t.Errorf("Expected coordinates to pass through exactly, got %s,%s",
					mockRepo.gotLat.String(), mockRepo.gotLng.String())
			}
		})
	}
}

func TestForecastService_GetForecast_MissingAPIKey(t *testing.T) {
	t.Setenv("DARKSKY_API_KEY", "")

	mockRepo := &mockForecastRepository{mockData: foggyForecast()}
	service := &ForecastService{ForecastRepo: mockRepo}

	lat, _ := decimal.NewFromString("10.5")
	lng, _ := decimal.NewFromString("-20.25")
	_, err := service.GetForecast(context.Background(), lat, lng)
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Errorf("Expected ErrAPIKeyMissing, got %v", err)
	}
}

func TestForecastService_CurrentConditions(t *testing.T) {
	t.Setenv("DARKSKY_API_KEY", "testkey")

	mockRepo := &mockForecastRepository{mockData: foggyForecast()}
	service := &ForecastService{ForecastRepo: mockRepo}

	lat, _ := decimal.NewFromString("37.8267")
	lng, _ := decimal.NewFromString("-122.4233")
	summary, err := service.CurrentConditions(context.Background(), lat, lng)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary != "61.2°F 🌫 Foggy" {
		t.Errorf("Expected %q, got %q", "61.2°F 🌫 Foggy", summary)
	}
}

func TestForecastService_CurrentConditions_Error(t *testing.T) {
	t.Setenv("DARKSKY_API_KEY", "testkey")

	mockRepo := &mockForecastRepository{shouldError: true}
	service := &ForecastService{ForecastRepo: mockRepo}

	lat, _ := decimal.NewFromString("37.8267")
	lng, _ := decimal.NewFromString("-122.4233")
	summary, err := service.CurrentConditions(context.Background(), lat, lng)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if summary != "" {
		t.Errorf("Expected empty summary on error, got %q", summary)
	}
}

func TestNewForecastService(t *testing.T) {
	service := NewForecastService()
	if service == nil {
		t.Error("Expected service to be created")
	}
}

func TestNewForecastService_NilRepo(t *testing.T) {
	service := NewForecastService(nil)
	if service == nil {
		t.Error("Expected service to be created with nil repo")
	}
}
