// Package handler exposes the aggregator as a single serverless function.
// Platforms that mount api/*.go as functions route /api/crypto-data here.
package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/coinpulse/config"
	"github.com/guttosm/coinpulse/internal/api"
	"github.com/guttosm/coinpulse/internal/app"
	"github.com/guttosm/coinpulse/internal/domain/dto"
	"github.com/guttosm/coinpulse/internal/logger"
)

var (
	once    sync.Once
	engine  http.Handler
	initErr error
)

// Handler serves /api/crypto-data. The router and its cache are built on the first
// invocation and reused for as long as the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		engine, initErr = initialize()
	})

	if initErr != nil {
		writeInitError(w, initErr)
		return
	}

	engine.ServeHTTP(w, r)
}

// initialize builds the router. Invalid configuration is returned, never fatal:
// the instance stays up and answers every request with a 500.
func initialize() (http.Handler, error) {
	logger.Init()
	gin.SetMode(gin.ReleaseMode)

	if err := config.Load(); err != nil {
		logger.L().Error().Err(err).Msg("serverless init failed")
		return nil, err
	}
	router, _, err := app.InitializeApp()
	if err != nil {
		logger.L().Error().Err(err).Msg("serverless init failed")
		return nil, err
	}
	return router, nil
}

func writeInitError(w http.ResponseWriter, err error) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(dto.NewErrorResponse(api.FetchFailedMessage, err))
}
