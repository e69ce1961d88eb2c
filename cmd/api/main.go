package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"avatarstudio/internal/http/handlers"
	"avatarstudio/internal/http/httpapi"
	"avatarstudio/internal/infra"
	"avatarstudio/internal/metrics"
	"avatarstudio/internal/pipio"
	"avatarstudio/internal/session"
	"avatarstudio/internal/studio"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	client := pipio.NewClient(pipio.Options{
		GenerateURL:     cfg.PipioGenerateURL,
		StatusURL:       cfg.PipioStatusURL,
		GenerateTimeout: cfg.GenerateTimeout,
		StatusTimeout:   cfg.StatusTimeout,
		PollInterval:    cfg.PollInterval,
		PollTimeout:     cfg.PollTimeout,
		Logger:          &logger,
	})
	orchestrator := studio.NewOrchestrator(client, &logger)
	sessions := session.NewStore(cfg.HistoryCap)
	m := metrics.New()

	app := handlers.NewApp(orchestrator, sessions, m, logger, cfg.PipioAPIKey)
	router := httpapi.NewRouter(app, cfg, m.Handler())
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
