package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/AliMaskar96/Red-Tetris-sub000/internal/config"
	"github.com/AliMaskar96/Red-Tetris-sub000/internal/history"
	"github.com/AliMaskar96/Red-Tetris-sub000/internal/httpapi"
	"github.com/AliMaskar96/Red-Tetris-sub000/internal/session"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var store *history.Store
	var recorder history.Recorder
	if cfg.DatabaseURL != "" {
		store, err = history.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("open match history", zap.Error(err))
		}
		recorder = store
		logger.Info("match history enabled")
	}

	ctx := context.Background()
	h := session.NewHub(ctx, recorder, logger)

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, store, logger)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
