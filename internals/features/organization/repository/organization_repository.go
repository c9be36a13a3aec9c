// file: internals/features/organization/repository/organization_repository.go
package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrportal_backend/internals/constants"
	orgModel "hrportal_backend/internals/features/organization/model"
)

/* ====================== EMPLOYEE ====================== */

// FindActiveEmployeeByBadge: (nil, nil) kalau tag tidak dimiliki karyawan aktif.
func FindActiveEmployeeByBadge(db *gorm.DB, badgeTag string) (*orgModel.EmployeeModel, error) {
	var emp orgModel.EmployeeModel
	err := db.Where("employee_badge_tag = ? AND employee_is_active = ?", strings.TrimSpace(badgeTag), true).
		Take(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func FindEmployeeByCode(db *gorm.DB, code string) (*orgModel.EmployeeModel, error) {
	var emp orgModel.EmployeeModel
	if err := db.Where("employee_code = ?", strings.TrimSpace(code)).Take(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

// LockEmployee mengambil row karyawan dengan FOR UPDATE. Semua mutasi interval
// satu karyawan diserialisasi lewat lock ini.
func LockEmployee(tx *gorm.DB, employeeID uuid.UUID) error {
	var emp orgModel.EmployeeModel
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("employee_id").
		Where("employee_id = ?", employeeID).
		Take(&emp).Error
}

// ListActiveEmployees: urut employee_code agar hasil batch stabil.
func ListActiveEmployees(db *gorm.DB) ([]orgModel.EmployeeModel, error) {
	var rows []orgModel.EmployeeModel
	err := db.Where("employee_is_active = ?", true).
		Order("employee_code ASC").
		Find(&rows).Error
	return rows, err
}

// ListManagementCandidates: anggota tim (current team) yang aktif & can_manage,
// tanpa excludeID. Urutan deterministik: employee_code lalu employee_id.
func ListManagementCandidates(db *gorm.DB, teamID, excludeID uuid.UUID) ([]orgModel.EmployeeModel, error) {
	var rows []orgModel.EmployeeModel
	err := db.Where("employee_current_team_id = ? AND employee_is_active = ? AND employee_can_manage = ? AND employee_id <> ?",
		teamID, true, true, excludeID).
		Order("employee_code ASC").
		Order("employee_id ASC").
		Find(&rows).Error
	return rows, err
}

/* ====================== ROOM ====================== */

func RoomExists(db *gorm.DB, roomNo, locationName string) (bool, error) {
	var n int64
	err := db.Model(&orgModel.RoomModel{}).
		Where("room_no = ? AND room_location_name = ?", strings.TrimSpace(roomNo), strings.TrimSpace(locationName)).
		Count(&n).Error
	return n > 0, err
}

/* ====================== LEAVE ====================== */

// IsOnApprovedLeave: ada leave APPROVED yang mencakup tanggal day?
func IsOnApprovedLeave(db *gorm.DB, employeeID uuid.UUID, day time.Time) (bool, error) {
	d := datatypes.Date(day)
	var n int64
	err := db.Model(&orgModel.LeaveRequestModel{}).
		Where("leave_request_employee_id = ? AND leave_request_status = ?", employeeID, constants.LeaveApproved).
		Where("leave_request_start_date <= ? AND leave_request_end_date >= ?", d, d).
		Count(&n).Error
	return n > 0, err
}

/* ====================== TEAM ====================== */

// ListTeamsWithPermanentLeader: hanya tim yang punya permanent leader.
func ListTeamsWithPermanentLeader(db *gorm.DB) ([]orgModel.TeamModel, error) {
	var rows []orgModel.TeamModel
	err := db.Where("team_permanent_leader_id IS NOT NULL").
		Order("team_name ASC").
		Order("team_id ASC").
		Find(&rows).Error
	return rows, err
}

// LockTeam: ambil ulang row tim FOR UPDATE di dalam transaksi.
func LockTeam(tx *gorm.DB, teamID uuid.UUID) (*orgModel.TeamModel, error) {
	var team orgModel.TeamModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("team_id = ?", teamID).
		Take(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// SetActingLeader mengganti pointer acting leader (nil = kosongkan).
func SetActingLeader(tx *gorm.DB, teamID uuid.UUID, leaderID *uuid.UUID, at time.Time) error {
	var since *time.Time
	if leaderID != nil {
		since = &at
	}
	return tx.Model(&orgModel.TeamModel{}).
		Where("team_id = ?", teamID).
		Updates(map[string]any{
			"team_acting_leader_id":    leaderID,
			"team_acting_leader_since": since,
		}).Error
}
