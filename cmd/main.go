package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/aldeia/rankboard/internal/adapters/feed"
	"github.com/aldeia/rankboard/internal/adapters/http/api"
	"github.com/aldeia/rankboard/internal/app"
	"github.com/aldeia/rankboard/internal/config"
	"github.com/aldeia/rankboard/internal/domain/period"
	"github.com/aldeia/rankboard/internal/domain/ranking"
	"github.com/aldeia/rankboard/internal/domain/roster"
	"github.com/aldeia/rankboard/pkg/logger"
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
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

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
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	resolver := roster.New(
		roster.WithTeams(cfg.Teams),
		roster.WithBrokerMap(cfg.BrokerMap),
	)
	svc := app.New(
		app.WithLogger(log.Named("app")),
		app.WithResolver(resolver),
		app.WithFilter(period.NewFilter(period.WithMinDate(cfg.MinDateTime()))),
		app.WithEngine(ranking.New(resolver, ranking.WithWeights(cfg.DepositWeight, cfg.ActivationWeight))),
		app.WithMaxLeaderboardLimit(cfg.MaxLeaderboardLimit),
		app.WithChartTopN(cfg.ChartTopN),
	)

	poller := feed.New(svc,
		feed.WithURL(cfg.WebhookURL),
		feed.WithInterval(cfg.RefreshInterval()),
		feed.WithLogger(log.Named("feed")),
	)

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return poller.Run(gctx)
	})

	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(context.Background(), "server exited with error", logger.Error(err))
		return
	}
	log.Info(context.Background(), "server stopped")
}
