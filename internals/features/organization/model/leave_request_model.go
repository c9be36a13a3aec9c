// file: internals/features/organization/model/leave_request_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LeaveRequestModel struct {
	LeaveRequestID         uuid.UUID      `json:"leave_request_id"          gorm:"type:uuid;primaryKey;column:leave_request_id"`
	LeaveRequestEmployeeID uuid.UUID      `json:"leave_request_employee_id" gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates,priority:1;column:leave_request_employee_id"`
	LeaveRequestStartDate  datatypes.Date `json:"leave_request_start_date"  gorm:"type:date;not null;index:idx_leave_requests_employee_dates,priority:2;column:leave_request_start_date"`
	LeaveRequestEndDate    datatypes.Date `json:"leave_request_end_date"    gorm:"type:date;not null;index:idx_leave_requests_employee_dates,priority:3;column:leave_request_end_date"`
	LeaveRequestReason     *string        `json:"leave_request_reason,omitempty" gorm:"type:varchar(255);column:leave_request_reason"`
	LeaveRequestStatus     string         `json:"leave_request_status"      gorm:"type:varchar(20);not null;column:leave_request_status"`

	LeaveRequestCreatedAt time.Time `json:"leave_request_created_at" gorm:"column:leave_request_created_at;autoCreateTime"`
}

func (LeaveRequestModel) TableName() string { return "leave_requests" }

func (m *LeaveRequestModel) BeforeCreate(tx *gorm.DB) error {
	if m.LeaveRequestID == uuid.Nil {
		m.LeaveRequestID = uuid.New()
	}
	return nil
}
