// file: internals/features/presence/daily/service/deriver.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrportal_backend/internals/configs"
	"hrportal_backend/internals/constants"
	"hrportal_backend/internals/features/presence/daily/model"
	"hrportal_backend/internals/helpers/dbtime"
)

var dailyConflictColumns = []clause.Column{
	{Name: "attendance_daily_employee_id"},
	{Name: "attendance_daily_date"},
}

// Deriver: label harian (PRESENT/LATE) dibekukan pada swipe pertama hari itu.
type Deriver struct {
	DB  *gorm.DB
	Cfg configs.PresenceConfig
}

func NewDeriver(db *gorm.DB, cfg configs.PresenceConfig) *Deriver {
	return &Deriver{DB: db, Cfg: cfg}
}

// StatusFor: LATE kalau time-of-day at strictly setelah threshold, selain itu PRESENT.
func (d *Deriver) StatusFor(at time.Time) string {
	// resolusi detik, sama dengan check_in_time yang disimpan
	if dbtime.From(at.In(d.Cfg.Location)).After(d.Cfg.LateAfter) {
		return constants.DailyLate
	}
	return constants.DailyPresent
}

// Derive menyisipkan ringkasan harian untuk (employee, tanggal at) kalau belum ada.
// Mengembalikan row yang berlaku hari itu dan apakah row tersebut baru dibuat.
func (d *Deriver) Derive(tx *gorm.DB, employeeID uuid.UUID, at time.Time) (*model.AttendanceDailySummaryModel, bool, error) {
	local := at.In(d.Cfg.Location)
	day := datatypes.Date(dbtime.DayStart(local, d.Cfg.Location))
	tod := dbtime.From(local)

	row := model.AttendanceDailySummaryModel{
		AttendanceDailyEmployeeID:  employeeID,
		AttendanceDailyDate:        day,
		AttendanceDailyStatus:      d.StatusFor(local),
		AttendanceDailyCheckInTime: &tod,
	}
	res := tx.Clauses(clause.OnConflict{Columns: dailyConflictColumns, DoNothing: true}).Create(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &row, true, nil
	}

	var existing model.AttendanceDailySummaryModel
	if err := tx.Where("attendance_daily_employee_id = ? AND attendance_daily_date = ?", employeeID, day).
		Take(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

// DailyRow: ringkasan harian + identitas karyawan untuk listing.
type DailyRow struct {
	EmployeeID   uuid.UUID   `json:"employee_id"`
	EmployeeCode string      `json:"employee_code"`
	EmployeeName string      `json:"employee_name"`
	Status       string      `json:"status"`
	CheckInTime  *dbtime.Tod `json:"check_in_time,omitempty"`
}

// Summaries: daftar ringkasan harian di tanggal day, opsional filter status.
func (d *Deriver) Summaries(ctx context.Context, day time.Time, status string) ([]DailyRow, error) {
	q := d.DB.WithContext(ctx).
		Table("attendance_daily_summaries AS s").
		Select(`e.employee_id AS employee_id,
		        e.employee_code AS employee_code,
		        e.employee_name AS employee_name,
		        s.attendance_daily_status AS status,
		        s.attendance_daily_check_in_time AS check_in_time`).
		Joins("JOIN employees e ON e.employee_id = s.attendance_daily_employee_id").
		Where("s.attendance_daily_date = ?", datatypes.Date(dbtime.DayStart(day, d.Cfg.Location)))
	if v := strings.ToUpper(strings.TrimSpace(status)); v != "" {
		q = q.Where("s.attendance_daily_status = ?", v)
	}
	var rows []DailyRow
	err := q.Order("e.employee_code ASC").Scan(&rows).Error
	return rows, err
}
