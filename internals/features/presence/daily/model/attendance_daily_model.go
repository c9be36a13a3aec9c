// file: internals/features/presence/daily/model/attendance_daily_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hrportal_backend/internals/helpers/dbtime"
)

// AttendanceDailySummaryModel: tepat satu row per (employee, date).
// Dibuat sekali dari swipe pertama hari itu, atau oleh absentee sweep (ABSENT).
type AttendanceDailySummaryModel struct {
	AttendanceDailyID         uuid.UUID      `json:"attendance_daily_id"          gorm:"type:uuid;primaryKey;column:attendance_daily_id"`
	AttendanceDailyEmployeeID uuid.UUID      `json:"attendance_daily_employee_id" gorm:"type:uuid;not null;uniqueIndex:uq_attendance_daily_employee_date,priority:1;column:attendance_daily_employee_id"`
	AttendanceDailyDate       datatypes.Date `json:"attendance_daily_date"        gorm:"type:date;not null;uniqueIndex:uq_attendance_daily_employee_date,priority:2;index:idx_attendance_daily_date;column:attendance_daily_date"`
	AttendanceDailyStatus     string         `json:"attendance_daily_status"      gorm:"type:varchar(10);not null;column:attendance_daily_status"`

	// NULL untuk ABSENT
	AttendanceDailyCheckInTime *dbtime.Tod `json:"attendance_daily_check_in_time,omitempty" gorm:"type:time;column:attendance_daily_check_in_time"`

	AttendanceDailyCreatedAt time.Time `json:"attendance_daily_created_at" gorm:"column:attendance_daily_created_at;autoCreateTime"`
}

func (AttendanceDailySummaryModel) TableName() string { return "attendance_daily_summaries" }

func (m *AttendanceDailySummaryModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceDailyID == uuid.Nil {
		m.AttendanceDailyID = uuid.New()
	}
	return nil
}
