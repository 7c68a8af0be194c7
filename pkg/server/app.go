package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CryptoVision/pkg/config"
	xhttp "CryptoVision/pkg/http"
	"CryptoVision/pkg/logger"
)

// App encapsulates the application lifecycle: one HTTP server, started
// until a termination signal arrives, then drained gracefully.
type App struct {
	cfg     *config.Config
	log     *logger.Logger
	handler xhttp.Handler
}

// New creates a new App instance.
func New(cfg *config.Config, log *logger.Logger, handler xhttp.Handler) *App {
	return &App{cfg: cfg, log: log, handler: handler}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	srv := xhttp.NewServer(a.handler, a.log,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := srv.Start(); err != nil {
		return err
	}

	a.log.Info("application started",
		logger.String("environment", a.cfg.Environment),
		logger.Int("port", a.cfg.Server.Port),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Info("shutdown signal received", logger.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Stop(ctx)
}
