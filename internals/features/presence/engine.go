// file: internals/features/presence/engine.go
package presence

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrportal_backend/internals/configs"
	dailyScheduler "hrportal_backend/internals/features/presence/daily/scheduler"
	dailySvc "hrportal_backend/internals/features/presence/daily/service"
	leaderScheduler "hrportal_backend/internals/features/presence/leadership/scheduler"
	leaderSvc "hrportal_backend/internals/features/presence/leadership/service"
	ledgerSvc "hrportal_backend/internals/features/presence/ledger/service"
	swipeSvc "hrportal_backend/internals/features/presence/swipes/service"
)

// Engine: semua komponen presence yang di-share oleh route & cron.
type Engine struct {
	Cfg       configs.PresenceConfig
	Ledger    *ledgerSvc.Store
	Deriver   *dailySvc.Deriver
	Sweeper   *dailySvc.Sweeper
	Gateway   *swipeSvc.Gateway
	Scheduler *leaderSvc.Scheduler
	Logger    *zap.Logger
}

func NewEngine(db *gorm.DB, cfg configs.PresenceConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	ledger := ledgerSvc.NewStore(db, cfg, logger)
	deriver := dailySvc.NewDeriver(db, cfg)
	return &Engine{
		Cfg:       cfg,
		Ledger:    ledger,
		Deriver:   deriver,
		Sweeper:   dailySvc.NewSweeper(db, cfg, logger),
		Gateway:   swipeSvc.NewGateway(db, cfg, ledger, deriver, logger),
		Scheduler: leaderSvc.NewScheduler(db, cfg, ledger, logger),
		Logger:    logger,
	}
}

// Schedule mendaftarkan absentee sweep + failover tick ke cron c.
func (e *Engine) Schedule(c *cron.Cron) error {
	if err := dailyScheduler.RegisterAbsenteeSweep(c, e.Sweeper, e.Cfg.SweepSchedule, e.Logger.Named("cron")); err != nil {
		return err
	}
	return leaderScheduler.RegisterLeaderFailover(c, e.Scheduler, e.Cfg.LeaderSchedule, e.Logger.Named("cron"))
}
