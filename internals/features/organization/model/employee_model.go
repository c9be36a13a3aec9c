// file: internals/features/organization/model/employee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeModel merepresentasikan tabel employees.
// Badge tag unik dan tidak berubah selama karyawan aktif.
type EmployeeModel struct {
	EmployeeID   uuid.UUID `json:"employee_id"   gorm:"type:uuid;primaryKey;column:employee_id"`
	EmployeeCode string    `json:"employee_code" gorm:"type:varchar(60);not null;uniqueIndex:uq_employees_code;column:employee_code"`
	EmployeeName string    `json:"employee_name" gorm:"type:text;not null;column:employee_name"`

	EmployeeBadgeTag   string  `json:"employee_badge_tag"            gorm:"type:varchar(120);not null;uniqueIndex:uq_employees_badge_tag;column:employee_badge_tag"`
	EmployeeDepartment *string `json:"employee_department,omitempty" gorm:"type:varchar(100);index:idx_employees_department;column:employee_department"`

	EmployeeIsActive  bool `json:"employee_is_active"  gorm:"not null;column:employee_is_active"`
	EmployeeCanManage bool `json:"employee_can_manage" gorm:"not null;column:employee_can_manage"`

	EmployeeCurrentTeamID *uuid.UUID `json:"employee_current_team_id,omitempty" gorm:"type:uuid;index:idx_employees_current_team;column:employee_current_team_id"`

	EmployeeCreatedAt time.Time `json:"employee_created_at" gorm:"column:employee_created_at;autoCreateTime"`
	EmployeeUpdatedAt time.Time `json:"employee_updated_at" gorm:"column:employee_updated_at;autoUpdateTime"`
}

func (EmployeeModel) TableName() string { return "employees" }

func (m *EmployeeModel) BeforeCreate(tx *gorm.DB) error {
	if m.EmployeeID == uuid.Nil {
		m.EmployeeID = uuid.New()
	}
	return nil
}
