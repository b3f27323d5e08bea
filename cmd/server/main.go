// Package main is the entry point for the SpaceX portfolio tracker.
// It aggregates the SPACEX token price from two exchanges, computes
// P&L against the fixed cost bases, serves the result over HTTP, and
// on demand pushes the current P&L into a YouTube video title.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aristath/spacefolio/internal/clients/jarsy"
	"github.com/aristath/spacefolio/internal/clients/jupiter"
	"github.com/aristath/spacefolio/internal/clients/youtube"
	"github.com/aristath/spacefolio/internal/config"
	"github.com/aristath/spacefolio/internal/domain"
	"github.com/aristath/spacefolio/internal/modules/portfolio"
	portfoliohandlers "github.com/aristath/spacefolio/internal/modules/portfolio/handlers"
	"github.com/aristath/spacefolio/internal/modules/title"
	"github.com/aristath/spacefolio/internal/scheduler"
	"github.com/aristath/spacefolio/internal/server"
	"github.com/aristath/spacefolio/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting SpaceX portfolio tracker")

	// Emit decimals as JSON numbers, matching what the dashboard and
	// the original API consumers expect.
	decimal.MarshalJSONWithoutQuotes = true

	// Price fetchers, one per exchange
	fetchers := map[string]domain.PriceFetcher{
		domain.ExchangeJarsy:   jarsy.NewClient(log),
		domain.ExchangeJupiter: jupiter.NewClient(log),
	}

	// Aggregation + cache
	service := portfolio.NewService(domain.DefaultHoldings(), fetchers, log)
	cache := portfolio.NewCache(service, log)

	// Title publisher
	youtubeClient := youtube.NewClient(youtube.Config{
		ClientID:     cfg.YouTubeClientID,
		ClientSecret: cfg.YouTubeClientSecret,
		RefreshToken: cfg.YouTubeRefreshToken,
	}, log)
	publisher := title.NewPublisher(youtubeClient, cfg.YouTubeVideoID, log)

	// HTTP server
	handlers := portfoliohandlers.NewHandler(cache, service, publisher, cfg.CronSecret, log)
	srv := server.New(server.Config{
		Port:              cfg.Port,
		Log:               log,
		PortfolioHandlers: handlers,
		Cache:             cache,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Background cache refresh: once now, then on the fixed period.
	// A failed run only logs; the cache keeps its previous summary and
	// the read path falls back to on-demand computation while empty.
	sched := scheduler.New(log)
	refreshJob := scheduler.NewRefreshPortfolioJob(cache)
	if err := sched.AddJob(fmt.Sprintf("@every %dm", cfg.RefreshMinutes), refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register refresh job")
	}
	sched.Start()

	if err := sched.RunNow(refreshJob); err != nil {
		log.Warn().Err(err).Msg("Initial portfolio refresh failed, cache starts empty")
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
