package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/scrim/internal/adapters/http/api"
	app "github.com/okian/scrim/internal/app"
	"github.com/okian/scrim/internal/config"
	"github.com/okian/scrim/internal/domain/balance"
	"github.com/okian/scrim/internal/domain/glicko"
	"github.com/okian/scrim/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(ctx, "failed to load config", logger.Error(err))
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log level, using info", logger.String("level", cfg.LogLevel))
	}

	params := glicko.NewParams(
		glicko.WithBaseRating(cfg.BaseRating),
		glicko.WithDefaults(cfg.BaseRating, cfg.DefaultRD, cfg.DefaultVolatility),
		glicko.WithTau(cfg.Tau),
		glicko.WithBeta(cfg.Beta),
		glicko.WithScalingBounds(cfg.ScaleMin, cfg.ScaleMax),
		glicko.WithRatingClamp(cfg.ClampRatingChange, cfg.MaxRatingChange),
	)
	weights := glicko.PerfWeights{
		Kill:      cfg.KillWeight,
		Death:     cfg.DeathWeight,
		Damage:    cfg.DamageWeight,
		Objective: cfg.ObjectiveWeight,
	}
	balanceCfg := balance.NewConfig(
		balance.WithLambda(cfg.Lambda),
		balance.WithSeparateTopPlayers(cfg.SeparateTopPlayers),
		balance.WithTopPlayerInSmallerTeam(cfg.PutTopPlayerInSmallerTeam),
		balance.WithMaxCombinations(cfg.MaxCombinations),
	)

	svc := app.New(
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithParams(params),
		app.WithPerfWeights(weights),
		app.WithBalanceConfig(balanceCfg),
	)
	if err := svc.Start(ctx); err != nil {
		log.Fatal(ctx, "failed to start service", logger.Error(err))
	}
	defer svc.Stop()

	mux := http.NewServeMux()
	server := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
	server.Register(ctx, mux)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "http server listening", logger.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "http server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "http shutdown failed", logger.Error(err))
	}
}
