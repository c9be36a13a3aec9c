// file: internals/features/presence/leadership/scheduler/failover_cron.go
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"hrportal_backend/internals/features/presence/leadership/service"
	"hrportal_backend/internals/helpers/cronjob"
)

const tickTimeout = 2 * time.Minute

// RegisterLeaderFailover: jadwalkan tick failover (default tiap 5 menit).
func RegisterLeaderFailover(c *cron.Cron, s *service.Scheduler, spec string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	_, err := cronjob.Register(c, logger, "leader_failover", spec, tickTimeout, func(ctx context.Context) {
		report := s.Tick(ctx)
		if report.Skipped {
			logger.Debug("failover tick skipped", zap.String("reason", report.Reason))
			return
		}
		logger.Info("👥 failover tick done",
			zap.Int("teams", len(report.Teams)),
			zap.Int("changed", report.Changed),
			zap.Int("failed", report.Failed))
	})
	return err
}
