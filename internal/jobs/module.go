package jobs

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ordesk/backoffice/internal/app"
	"github.com/ordesk/backoffice/internal/config"
)

// Module wires scheduled jobs into the fx lifecycle.
var Module = fx.Options(
	fx.Provide(newReportSnapshotJob),
	fx.Invoke(registerLifecycle),
)

type jobParams struct {
	fx.In

	Facade *app.BackofficeFacade
	Config *config.Config
	Logger *slog.Logger
}

func newReportSnapshotJob(p jobParams) *ReportSnapshotJob {
	return NewReportSnapshotJob(p.Facade, p.Config.ReportSnapshotSpec, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, job *ReportSnapshotJob) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { return job.Start() },
		OnStop: func(context.Context) error {
			job.Stop()
			return nil
		},
	})
}
