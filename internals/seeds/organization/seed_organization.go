package organization

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hrportal_backend/internals/constants"
	orgModel "hrportal_backend/internals/features/organization/model"
)

type RoomSeed struct {
	RoomNo       string `json:"room_no"`
	LocationName string `json:"location_name"`
	Description  string `json:"description"`
}

type TeamSeed struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	LeaderCode string `json:"leader_code"`
}

type EmployeeSeed struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	BadgeTag   string `json:"badge_tag"`
	Department string `json:"department"`
	CanManage  bool   `json:"can_manage"`
	Inactive   bool   `json:"inactive"`
	Team       string `json:"team"`
}

type LeaveSeed struct {
	EmployeeCode string `json:"employee_code"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
}

type OrganizationSeed struct {
	Rooms     []RoomSeed     `json:"rooms"`
	Teams     []TeamSeed     `json:"teams"`
	Employees []EmployeeSeed `json:"employees"`
	Leaves    []LeaveSeed    `json:"leaves"`
}

// SeedOrganizationFromJSON: rooms → teams → employees → leader teams → leaves.
// Row yang sudah ada (berdasarkan natural key) dilewati.
func SeedOrganizationFromJSON(db *gorm.DB, filePath string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("📥 Membaca file organisasi", zap.String("file", filePath))

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var in OrganizationSeed
	if err := sonic.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, r := range in.Rooms {
			row := orgModel.RoomModel{
				RoomNo:           strings.TrimSpace(r.RoomNo),
				RoomLocationName: strings.TrimSpace(r.LocationName),
			}
			if d := strings.TrimSpace(r.Description); d != "" {
				row.RoomDescription = &d
			}
			if err := tx.Where("room_no = ? AND room_location_name = ?", row.RoomNo, row.RoomLocationName).
				FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("room %s/%s: %w", r.LocationName, r.RoomNo, err)
			}
		}

		teamIDs := map[string]orgModel.TeamModel{}
		for _, t := range in.Teams {
			row := orgModel.TeamModel{TeamName: strings.TrimSpace(t.Name), TeamDepartment: strings.TrimSpace(t.Department)}
			if err := tx.Where("team_name = ?", row.TeamName).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("team %s: %w", t.Name, err)
			}
			teamIDs[row.TeamName] = row
		}

		empIDs := map[string]orgModel.EmployeeModel{}
		for _, e := range in.Employees {
			row := orgModel.EmployeeModel{
				EmployeeCode:      strings.TrimSpace(e.Code),
				EmployeeName:      strings.TrimSpace(e.Name),
				EmployeeBadgeTag:  strings.TrimSpace(e.BadgeTag),
				EmployeeIsActive:  !e.Inactive,
				EmployeeCanManage: e.CanManage,
			}
			if d := strings.TrimSpace(e.Department); d != "" {
				row.EmployeeDepartment = &d
			}
			if team, ok := teamIDs[strings.TrimSpace(e.Team)]; ok {
				id := team.TeamID
				row.EmployeeCurrentTeamID = &id
			}
			if err := tx.Where("employee_code = ?", row.EmployeeCode).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("employee %s: %w", e.Code, err)
			}
			empIDs[row.EmployeeCode] = row
		}

		for _, t := range in.Teams {
			code := strings.TrimSpace(t.LeaderCode)
			if code == "" {
				continue
			}
			leader, ok := empIDs[code]
			if !ok {
				return fmt.Errorf("team %s: leader %s tidak ada di seed", t.Name, code)
			}
			team := teamIDs[strings.TrimSpace(t.Name)]
			if team.TeamPermanentLeaderID != nil {
				continue
			}
			id := leader.EmployeeID
			if err := tx.Model(&orgModel.TeamModel{}).Where("team_id = ?", team.TeamID).
				Updates(map[string]any{
					"team_permanent_leader_id": id,
					"team_acting_leader_id":    id,
				}).Error; err != nil {
				return fmt.Errorf("team %s leader: %w", t.Name, err)
			}
		}

		for _, l := range in.Leaves {
			emp, ok := empIDs[strings.TrimSpace(l.EmployeeCode)]
			if !ok {
				logger.Warn("leave untuk karyawan tak dikenal dilewati", zap.String("employee_code", l.EmployeeCode))
				continue
			}
			start, err1 := time.Parse("2006-01-02", l.StartDate)
			end, err2 := time.Parse("2006-01-02", l.EndDate)
			if err1 != nil || err2 != nil || end.Before(start) {
				return fmt.Errorf("leave %s: tanggal tidak valid", l.EmployeeCode)
			}
			status := strings.ToUpper(strings.TrimSpace(l.Status))
			if status == "" {
				status = constants.LeavePending
			}
			row := orgModel.LeaveRequestModel{
				LeaveRequestEmployeeID: emp.EmployeeID,
				LeaveRequestStartDate:  datatypes.Date(start),
				LeaveRequestEndDate:    datatypes.Date(end),
				LeaveRequestStatus:     status,
			}
			if r := strings.TrimSpace(l.Reason); r != "" {
				row.LeaveRequestReason = &r
			}
			if err := tx.Where("leave_request_employee_id = ? AND leave_request_start_date = ?", emp.EmployeeID, row.LeaveRequestStartDate).
				FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("leave %s: %w", l.EmployeeCode, err)
			}
		}

		logger.Info("✅ Seed organisasi selesai",
			zap.Int("rooms", len(in.Rooms)),
			zap.Int("teams", len(in.Teams)),
			zap.Int("employees", len(in.Employees)),
			zap.Int("leaves", len(in.Leaves)))
		return nil
	})
}
