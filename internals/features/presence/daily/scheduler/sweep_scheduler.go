// file: internals/features/presence/daily/scheduler/sweep_scheduler.go
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"hrportal_backend/internals/features/presence/daily/service"
	"hrportal_backend/internals/helpers/cronjob"
)

const sweepTimeout = 10 * time.Minute

// RegisterAbsenteeSweep: jadwalkan sweep harian (default 23:59 zona bisnis).
func RegisterAbsenteeSweep(c *cron.Cron, sw *service.Sweeper, spec string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	_, err := cronjob.Register(c, logger, "absentee_sweep", spec, sweepTimeout, func(ctx context.Context) {
		report := sw.Sweep(ctx, sw.Clock())
		if report.Error != "" {
			logger.Error("🧹 absentee sweep aborted", zap.String("day", report.Day), zap.String("error", report.Error))
		}
	})
	return err
}
