package di

import (
	"go.uber.org/fx"

	"github.com/ordesk/backoffice/internal/adapter/carrier"
	"github.com/ordesk/backoffice/internal/app"
	"github.com/ordesk/backoffice/internal/config"
	"github.com/ordesk/backoffice/internal/jobs"
	"github.com/ordesk/backoffice/internal/logger"
	"github.com/ordesk/backoffice/internal/pkg/auth"
	"github.com/ordesk/backoffice/internal/server/http/handlers"
	"github.com/ordesk/backoffice/internal/server/http/router"
	"github.com/ordesk/backoffice/internal/storage/postgres"
	"github.com/ordesk/backoffice/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		carrier.Module,
		usecase.Module,
		fx.Provide(func(client carrier.Client) app.TrackingProvider {
			if client == nil {
				return nil
			}
			return client
		}),
		fx.Provide(func(f *app.BackofficeFacade) handlers.BackofficeFacade { return f }),
		router.Module,
		app.Module,
		jobs.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
