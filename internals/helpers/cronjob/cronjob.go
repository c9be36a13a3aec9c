// file: internals/helpers/cronjob/cronjob.go
package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// New: cron di zona bisnis. Job tidak pernah overlap dengan dirinya sendiri,
// panic di job di-recover (dan dicatat) oleh chain.
func New(loc *time.Location, logger *zap.Logger) *cron.Cron {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	cl := cron.PrintfLogger(zap.NewStdLog(logger.Named("cron")))
	return cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}

// Register menjadwalkan fn dengan spec; tiap run dapat context dengan timeout.
func Register(c *cron.Cron, logger *zap.Logger, name, spec string, timeout time.Duration, fn func(ctx context.Context)) (cron.EntryID, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		fn(ctx)
		logger.Debug("cron job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	})
	if err != nil {
		return 0, fmt.Errorf("cron %s (%q): %w", name, spec, err)
	}
	logger.Info("⏱ cron job registered", zap.String("job", name), zap.String("schedule", spec))
	return id, nil
}
