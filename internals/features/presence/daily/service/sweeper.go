// file: internals/features/presence/daily/service/sweeper.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrportal_backend/internals/configs"
	"hrportal_backend/internals/constants"
	orgModel "hrportal_backend/internals/features/organization/model"
	orgRepo "hrportal_backend/internals/features/organization/repository"
	"hrportal_backend/internals/features/presence/daily/model"
	"hrportal_backend/internals/helpers/dbtime"
)

// Outcome per karyawan dalam satu run sweep.
const (
	SweepInserted        = "inserted"
	SweepAlreadyRecorded = "already_recorded"
	SweepFailed          = "failed"
)

type EmployeeSweepResult struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	Outcome      string    `json:"outcome"`
	Reason       string    `json:"reason,omitempty"`
}

// SweepReport: hasil terstruktur satu run absentee sweep.
type SweepReport struct {
	Day        string                `json:"day"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
	Inserted   int                   `json:"inserted"`
	Skipped    int                   `json:"skipped"`
	Failed     int                   `json:"failed"`
	Error      string                `json:"error,omitempty"`
	Results    []EmployeeSweepResult `json:"results"`
}

// Sweeper: sekali sehari menandai ABSENT karyawan aktif yang belum punya ringkasan.
type Sweeper struct {
	DB     *gorm.DB
	Cfg    configs.PresenceConfig
	Logger *zap.Logger
	Clock  func() time.Time
}

func NewSweeper(db *gorm.DB, cfg configs.PresenceConfig, logger *zap.Logger) *Sweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{DB: db, Cfg: cfg, Logger: logger.Named("absentee_sweep"), Clock: time.Now}
}

// Sweep menjalankan sweep untuk tanggal day. Aman dijalankan berulang:
// cek eksistensi tepat sebelum insert + ON CONFLICT DO NOTHING.
func (s *Sweeper) Sweep(ctx context.Context, day time.Time) SweepReport {
	start := dbtime.DayStart(day, s.Cfg.Location)
	report := SweepReport{
		Day:       start.Format("2006-01-02"),
		StartedAt: s.Clock().In(s.Cfg.Location),
		Results:   []EmployeeSweepResult{},
	}

	employees, err := orgRepo.ListActiveEmployees(s.DB.WithContext(ctx))
	if err != nil {
		report.Error = err.Error()
		report.FinishedAt = s.Clock().In(s.Cfg.Location)
		s.Logger.Error("list active employees failed", zap.String("day", report.Day), zap.Error(err))
		return report
	}

	for _, emp := range employees {
		if ctx.Err() != nil {
			report.Error = ctx.Err().Error()
			break
		}
		res := s.sweepOne(ctx, emp, start)
		switch res.Outcome {
		case SweepInserted:
			report.Inserted++
		case SweepAlreadyRecorded:
			report.Skipped++
		default:
			report.Failed++
			s.Logger.Warn("absentee sweep failed for employee",
				zap.String("employee_code", res.EmployeeCode),
				zap.String("reason", res.Reason))
		}
		report.Results = append(report.Results, res)
	}

	report.FinishedAt = s.Clock().In(s.Cfg.Location)
	s.Logger.Info("absentee sweep finished",
		zap.String("day", report.Day),
		zap.Int("inserted", report.Inserted),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report
}

func (s *Sweeper) sweepOne(ctx context.Context, emp orgModel.EmployeeModel, day time.Time) (res EmployeeSweepResult) {
	res = EmployeeSweepResult{EmployeeID: emp.EmployeeID, EmployeeCode: emp.EmployeeCode}
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = SweepFailed
			res.Reason = fmt.Sprintf("panic: %v", r)
		}
	}()

	date := datatypes.Date(day)
	db := s.DB.WithContext(ctx)

	var n int64
	if err := db.Model(&model.AttendanceDailySummaryModel{}).
		Where("attendance_daily_employee_id = ? AND attendance_daily_date = ?", emp.EmployeeID, date).
		Count(&n).Error; err != nil {
		res.Outcome, res.Reason = SweepFailed, err.Error()
		return res
	}
	if n > 0 {
		res.Outcome = SweepAlreadyRecorded
		return res
	}

	row := model.AttendanceDailySummaryModel{
		AttendanceDailyEmployeeID: emp.EmployeeID,
		AttendanceDailyDate:       date,
		AttendanceDailyStatus:     constants.DailyAbsent,
	}
	ins := db.Clauses(clause.OnConflict{Columns: dailyConflictColumns, DoNothing: true}).Create(&row)
	if ins.Error != nil {
		res.Outcome, res.Reason = SweepFailed, ins.Error.Error()
		return res
	}
	if ins.RowsAffected == 0 {
		res.Outcome = SweepAlreadyRecorded
		return res
	}
	res.Outcome = SweepInserted
	return res
}
