package main

import (
	"net/http"
	"time"

	"github.com/wickardo/darksky-forecast-api/internal/config"
	"github.com/wickardo/darksky-forecast-api/internal/handler"
	"github.com/wickardo/darksky-forecast-api/internal/middleware"
)

func serverTimeout(key string, fallback time.Duration) time.Duration {
	dur, err := time.ParseDuration(config.GetServerTimeout(key))
	if err != nil {
		return fallback
	}
	return dur
}

func main() {
	log := config.GetLogger()

	forecastHandler := handler.NewForecastHandler()
	mux := http.NewServeMux()
	mux.Handle("/forecast", middleware.RateLimitMiddleware(http.HandlerFunc(forecastHandler.HandleForecast)))

	middleware.StartRateLimiterCleanup()

	port := config.GetServerPort()
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  serverTimeout("read_timeout", 5*time.Second),
		WriteTimeout: serverTimeout("write_timeout", 10*time.Second),
	}

	log.Infow("Dark Sky forecast API server running", "port", port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}
