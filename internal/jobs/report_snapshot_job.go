package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// ReportFacade exposes the reporting operation the snapshot job runs.
type ReportFacade interface {
	OperatorReport(ctx context.Context, market model.Market, operator string, from, to time.Time) ([]model.OperatorDayStats, error)
}

// ReportSnapshotJob computes the previous day's per-operator report for
// every market on a cron schedule and emits it to the structured log, so a
// daily record survives even when archive rows are later touched by the
// carrier tracker.
type ReportSnapshotJob struct {
	facade ReportFacade
	spec   string
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time
}

// NewReportSnapshotJob creates the daily report snapshot job.
func NewReportSnapshotJob(facade ReportFacade, spec string, logger *slog.Logger) *ReportSnapshotJob {
	return &ReportSnapshotJob{
		facade: facade,
		spec:   spec,
		cron:   cron.New(),
		logger: logger.With("component", "report_snapshot_job"),
		now:    time.Now,
	}
}

// Start schedules the job.
func (j *ReportSnapshotJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, j.run)
	if err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop stops the scheduler.
func (j *ReportSnapshotJob) Stop() {
	j.cron.Stop()
}

func (j *ReportSnapshotJob) run() {
	ctx := context.Background()
	now := j.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)

	for _, market := range model.Markets() {
		stats, err := j.facade.OperatorReport(ctx, market, "", from, to)
		if err != nil {
			j.logger.Error("report snapshot failed",
				slog.String("market", string(market)), slog.String("error", err.Error()))
			continue
		}
		for _, day := range stats {
			j.logger.Info("daily operator report",
				slog.String("market", string(market)),
				slog.String("date", day.Date),
				slog.String("operator", day.Operator),
				slog.Int("orders", day.OrdersInArchive),
				slog.Int("delivered", day.DeliveredOrders),
				slog.String("upsell_total", day.UpsellTotal.String()),
				slog.String("cross_sell_total", day.CrossSellTotal.String()),
			)
		}
	}
}
