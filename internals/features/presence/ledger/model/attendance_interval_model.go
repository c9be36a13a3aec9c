// file: internals/features/presence/ledger/model/attendance_interval_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttendanceIntervalModel: ledger append-only pasangan entry/exit per karyawan per scope.
// Maksimal satu interval terbuka per (employee, scope_class), dijaga partial unique index.
type AttendanceIntervalModel struct {
	AttendanceIntervalID uuid.UUID `json:"attendance_interval_id" gorm:"type:uuid;primaryKey;column:attendance_interval_id"`

	AttendanceIntervalEmployeeID uuid.UUID `json:"attendance_interval_employee_id" gorm:"type:uuid;not null;index:idx_attendance_intervals_employee_entry,priority:1;uniqueIndex:uq_attendance_intervals_open,priority:1,where:attendance_interval_exit_time IS NULL;column:attendance_interval_employee_id"`
	AttendanceIntervalScopeClass string    `json:"attendance_interval_scope_class" gorm:"type:varchar(10);not null;uniqueIndex:uq_attendance_intervals_open,priority:2;column:attendance_interval_scope_class"`

	AttendanceIntervalRoomNo       string `json:"attendance_interval_room_no"       gorm:"type:varchar(40);not null;index:idx_attendance_intervals_room,priority:1;column:attendance_interval_room_no"`
	AttendanceIntervalLocationName string `json:"attendance_interval_location_name" gorm:"type:varchar(120);not null;index:idx_attendance_intervals_room,priority:2;column:attendance_interval_location_name"`

	AttendanceIntervalDate          datatypes.Date `json:"attendance_interval_date"                     gorm:"type:date;not null;index:idx_attendance_intervals_date;column:attendance_interval_date"`
	AttendanceIntervalEntryTime     time.Time      `json:"attendance_interval_entry_time"               gorm:"not null;index:idx_attendance_intervals_employee_entry,priority:2;column:attendance_interval_entry_time"`
	AttendanceIntervalExitTime      *time.Time     `json:"attendance_interval_exit_time,omitempty"      gorm:"column:attendance_interval_exit_time"`
	AttendanceIntervalDurationHours *float64       `json:"attendance_interval_duration_hours,omitempty" gorm:"column:attendance_interval_duration_hours"`
	AttendanceIntervalStatus        string         `json:"attendance_interval_status"                   gorm:"type:varchar(20);not null;column:attendance_interval_status"`

	AttendanceIntervalCreatedAt time.Time `json:"attendance_interval_created_at" gorm:"column:attendance_interval_created_at;autoCreateTime"`
}

func (AttendanceIntervalModel) TableName() string { return "attendance_intervals" }

func (m *AttendanceIntervalModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceIntervalID == uuid.Nil {
		m.AttendanceIntervalID = uuid.New()
	}
	return nil
}

// IsOpen: belum ada exit timestamp.
func (m *AttendanceIntervalModel) IsOpen() bool { return m.AttendanceIntervalExitTime == nil }
