package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/ordesk/backoffice/internal/config"
	"github.com/ordesk/backoffice/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewBackofficeFacade,
		newHTTPServer,
		newAWBTracker,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type trackerParams struct {
	fx.In

	Facade *BackofficeFacade
	Config *config.Config
	Logger *slog.Logger
}

// newAWBTracker builds the tracking pool, or nil when no carrier is
// configured.
func newAWBTracker(p trackerParams) *worker.AWBTracker {
	if p.Config.CarrierAddress == "" {
		return nil
	}
	return worker.NewAWBTracker(
		p.Facade,
		p.Config.AWBPollInterval,
		p.Config.TrackerBatchSize,
		p.Config.TrackerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Facade     *BackofficeFacade
	Tracker    *worker.AWBTracker
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting backoffice", slog.String("addr", p.Server.Addr))
			p.Facade.QueueWatcher().Start(ctx)
			if p.Tracker != nil {
				p.Tracker.Start(ctx)
			}
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if p.Tracker != nil {
				p.Tracker.Stop()
			}
			p.Facade.QueueWatcher().Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("backoffice stopped")
			return nil
		},
	})
}
