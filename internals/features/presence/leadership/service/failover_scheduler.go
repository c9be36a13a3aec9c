// file: internals/features/presence/leadership/service/failover_scheduler.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"hrportal_backend/internals/configs"
	orgModel "hrportal_backend/internals/features/organization/model"
	orgRepo "hrportal_backend/internals/features/organization/repository"
	ledgerSvc "hrportal_backend/internals/features/presence/ledger/service"
	"hrportal_backend/internals/helpers/dbtime"
)

// State kepemimpinan tim setelah evaluasi.
const (
	StatePermanentActive  = "PermanentActive"
	StateSubstituteActive = "SubstituteActive"
	StateLeaderless       = "Leaderless"
)

// Transition yang terjadi pada pointer acting leader.
const (
	TransitionUnchanged   = "unchanged"
	TransitionRestored    = "restored"
	TransitionSubstituted = "substituted"
	TransitionCleared     = "cleared"
	TransitionNone        = "none"
	TransitionFailed      = "failed"
)

// TeamOutcome: hasil evaluasi satu tim dalam satu tick.
type TeamOutcome struct {
	TeamID         uuid.UUID  `json:"team_id"`
	TeamName       string     `json:"team_name"`
	State          string     `json:"state,omitempty"`
	Transition     string     `json:"transition"`
	PreviousActing *uuid.UUID `json:"previous_acting_leader_id,omitempty"`
	NewActing      *uuid.UUID `json:"new_acting_leader_id,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// TickReport: ringkasan satu tick.
type TickReport struct {
	At      time.Time     `json:"at"`
	Skipped bool          `json:"skipped"`
	Reason  string        `json:"reason,omitempty"`
	Failed  int           `json:"failed"`
	Changed int           `json:"changed"`
	Teams   []TeamOutcome `json:"teams"`
}

// Scheduler: control loop failover acting leader.
// Pointer acting leader hanya dimutasi dari sini.
type Scheduler struct {
	DB     *gorm.DB
	Cfg    configs.PresenceConfig
	Ledger *ledgerSvc.Store
	Logger *zap.Logger
	Clock  func() time.Time

	// dipanggil sebelum evaluasi tiap tim (di dalam tx); nil di produksi
	inspect func(team *orgModel.TeamModel) error
}

func NewScheduler(db *gorm.DB, cfg configs.PresenceConfig, ledger *ledgerSvc.Store, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		DB:     db,
		Cfg:    cfg,
		Ledger: ledger,
		Logger: logger.Named("leader_failover"),
		Clock:  time.Now,
	}
}

// Tick mengevaluasi semua tim yang punya permanent leader.
// Sebelum grace time-of-day tidak melakukan apa pun.
func (s *Scheduler) Tick(ctx context.Context) TickReport {
	now := s.Clock().In(s.Cfg.Location)
	report := TickReport{At: now, Teams: []TeamOutcome{}}

	if dbtime.TimeOfDay(now) < s.Cfg.LeaderGrace.Duration() {
		report.Skipped = true
		report.Reason = "before grace " + s.Cfg.LeaderGrace.String()
		return report
	}

	teams, err := orgRepo.ListTeamsWithPermanentLeader(s.DB.WithContext(ctx))
	if err != nil {
		report.Skipped = true
		report.Reason = "list teams: " + err.Error()
		s.Logger.Error("list teams failed", zap.Error(err))
		return report
	}

	workers := s.Cfg.LeaderWorkers
	if workers <= 0 {
		workers = 1
	}
	outcomes := make([]TeamOutcome, len(teams))
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range teams {
		i, team := i, teams[i]
		g.Go(func() error {
			outcomes[i] = s.evaluate(ctx, team, now)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		switch o.Transition {
		case TransitionFailed:
			report.Failed++
			s.Logger.Error("team evaluation failed",
				zap.String("team_id", o.TeamID.String()),
				zap.String("team_name", o.TeamName),
				zap.String("error", o.Error))
		case TransitionRestored, TransitionSubstituted, TransitionCleared:
			report.Changed++
			s.Logger.Info("acting leader changed",
				zap.String("team_id", o.TeamID.String()),
				zap.String("transition", o.Transition),
				zap.String("state", o.State))
		}
	}
	report.Teams = outcomes
	return report
}

// evaluate: satu tim = satu transaksi, row tim di-lock FOR UPDATE.
// Error/panic dicatat di outcome tim itu saja.
func (s *Scheduler) evaluate(ctx context.Context, team orgModel.TeamModel, now time.Time) (out TeamOutcome) {
	out = TeamOutcome{TeamID: team.TeamID, TeamName: team.TeamName}
	defer func() {
		if r := recover(); r != nil {
			out.Transition = TransitionFailed
			out.State = ""
			out.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := orgRepo.LockTeam(tx, team.TeamID)
		if err != nil {
			return fmt.Errorf("lock team: %w", err)
		}
		if s.inspect != nil {
			if err := s.inspect(locked); err != nil {
				return err
			}
		}
		out.PreviousActing = locked.TeamActingLeaderID
		out.NewActing = locked.TeamActingLeaderID
		if locked.TeamPermanentLeaderID == nil {
			// leader dicabut sejak listing
			out.Transition = TransitionNone
			return nil
		}
		return s.decide(tx, locked, now, &out)
	})
	if err != nil {
		out.Transition = TransitionFailed
		out.State = ""
		out.NewActing = out.PreviousActing
		out.Error = err.Error()
	}
	return out
}

func (s *Scheduler) decide(tx *gorm.DB, team *orgModel.TeamModel, now time.Time, out *TeamOutcome) error {
	permanent := *team.TeamPermanentLeaderID
	acting := team.TeamActingLeaderID

	present, err := s.presentToday(tx, permanent, now)
	if err != nil {
		return fmt.Errorf("leader presence: %w", err)
	}
	if present {
		out.State = StatePermanentActive
		if acting != nil && *acting == permanent {
			out.Transition = TransitionUnchanged
			return nil
		}
		if err := orgRepo.SetActingLeader(tx, team.TeamID, &permanent, now); err != nil {
			return fmt.Errorf("restore leader: %w", err)
		}
		out.NewActing = &permanent
		out.Transition = TransitionRestored
		return nil
	}

	eligible, err := s.eligibleSubstitutes(tx, team.TeamID, permanent, now)
	if err != nil {
		return err
	}
	if len(eligible) > 0 {
		out.State = StateSubstituteActive
		if acting != nil {
			for _, e := range eligible {
				if e.EmployeeID == *acting {
					out.Transition = TransitionUnchanged
					return nil
				}
			}
		}
		pick := eligible[0].EmployeeID
		if err := orgRepo.SetActingLeader(tx, team.TeamID, &pick, now); err != nil {
			return fmt.Errorf("assign substitute: %w", err)
		}
		out.NewActing = &pick
		out.Transition = TransitionSubstituted
		return nil
	}

	out.State = StateLeaderless
	if s.Cfg.ClearWhenLeaderless && acting != nil {
		if err := orgRepo.SetActingLeader(tx, team.TeamID, nil, now); err != nil {
			return fmt.Errorf("clear acting leader: %w", err)
		}
		out.NewActing = nil
		out.Transition = TransitionCleared
		return nil
	}
	out.Transition = TransitionNone
	return nil
}

// eligibleSubstitutes: kandidat yang hadir hari ini, urutan dari repository dipertahankan.
func (s *Scheduler) eligibleSubstitutes(tx *gorm.DB, teamID, permanent uuid.UUID, now time.Time) ([]orgModel.EmployeeModel, error) {
	candidates, err := orgRepo.ListManagementCandidates(tx, teamID, permanent)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	out := make([]orgModel.EmployeeModel, 0, len(candidates))
	for _, c := range candidates {
		ok, err := s.presentToday(tx, c.EmployeeID, now)
		if err != nil {
			return nil, fmt.Errorf("candidate presence: %w", err)
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// presentToday: tidak sedang cuti APPROVED dan punya minimal satu interval yang masuk hari ini.
func (s *Scheduler) presentToday(tx *gorm.DB, employeeID uuid.UUID, now time.Time) (bool, error) {
	onLeave, err := orgRepo.IsOnApprovedLeave(tx, employeeID, dbtime.DayStart(now, s.Cfg.Location))
	if err != nil {
		return false, err
	}
	if onLeave {
		return false, nil
	}
	return s.Ledger.HasIntervalOn(tx, employeeID, now)
}
