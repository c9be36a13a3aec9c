// file: internals/features/organization/model/room_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomModel: ruangan interior (block) yang terdaftar. Gerbang (gate) bukan row,
// nomornya diatur lewat PRESENCE_GATE_ROOM_NO.
type RoomModel struct {
	RoomID           uuid.UUID `json:"room_id"            gorm:"type:uuid;primaryKey;column:room_id"`
	RoomNo           string    `json:"room_no"            gorm:"type:varchar(40);not null;uniqueIndex:uq_rooms_no_location,priority:1;column:room_no"`
	RoomLocationName string    `json:"room_location_name" gorm:"type:varchar(120);not null;uniqueIndex:uq_rooms_no_location,priority:2;column:room_location_name"`
	RoomDescription  *string   `json:"room_description,omitempty" gorm:"type:text;column:room_description"`

	RoomCreatedAt time.Time `json:"room_created_at" gorm:"column:room_created_at;autoCreateTime"`
}

func (RoomModel) TableName() string { return "rooms" }

func (m *RoomModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomID == uuid.Nil {
		m.RoomID = uuid.New()
	}
	return nil
}
