// file: internals/features/organization/model/team_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamModel: permanent leader tetap, acting leader adalah pointer yang digeser
// oleh leadership failover scheduler.
type TeamModel struct {
	TeamID         uuid.UUID `json:"team_id"         gorm:"type:uuid;primaryKey;column:team_id"`
	TeamName       string    `json:"team_name"       gorm:"type:varchar(100);not null;column:team_name"`
	TeamDepartment string    `json:"team_department" gorm:"type:varchar(100);not null;column:team_department"`

	TeamPermanentLeaderID *uuid.UUID `json:"team_permanent_leader_id,omitempty" gorm:"type:uuid;index:idx_teams_permanent_leader;column:team_permanent_leader_id"`
	TeamActingLeaderID    *uuid.UUID `json:"team_acting_leader_id,omitempty"    gorm:"type:uuid;index:idx_teams_acting_leader;column:team_acting_leader_id"`
	TeamActingLeaderSince *time.Time `json:"team_acting_leader_since,omitempty" gorm:"column:team_acting_leader_since"`

	TeamCreatedAt time.Time `json:"team_created_at" gorm:"column:team_created_at;autoCreateTime"`
	TeamUpdatedAt time.Time `json:"team_updated_at" gorm:"column:team_updated_at;autoUpdateTime"`
}

func (TeamModel) TableName() string { return "teams" }

func (m *TeamModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeamID == uuid.Nil {
		m.TeamID = uuid.New()
	}
	return nil
}
