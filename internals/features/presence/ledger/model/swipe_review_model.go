// file: internals/features/presence/ledger/model/swipe_review_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnmatchedSwipeModel: swipe dengan tag yang tidak dimiliki karyawan aktif.
// Tidak pernah di-link ke employee.
type UnmatchedSwipeModel struct {
	UnmatchedSwipeID       uuid.UUID `json:"unmatched_swipe_id"        gorm:"type:uuid;primaryKey;column:unmatched_swipe_id"`
	UnmatchedSwipeBadgeTag string    `json:"unmatched_swipe_badge_tag" gorm:"type:varchar(120);not null;index:idx_unmatched_swipes_tag;column:unmatched_swipe_badge_tag"`
	UnmatchedSwipeRoomNo   *string   `json:"unmatched_swipe_room_no,omitempty" gorm:"type:varchar(40);column:unmatched_swipe_room_no"`
	UnmatchedSwipeLocation *string   `json:"unmatched_swipe_location,omitempty" gorm:"type:varchar(120);column:unmatched_swipe_location"`
	UnmatchedSwipeAt       time.Time `json:"unmatched_swipe_at"        gorm:"not null;index:idx_unmatched_swipes_at;column:unmatched_swipe_at"`
}

func (UnmatchedSwipeModel) TableName() string { return "unmatched_swipes" }

func (m *UnmatchedSwipeModel) BeforeCreate(tx *gorm.DB) error {
	if m.UnmatchedSwipeID == uuid.Nil {
		m.UnmatchedSwipeID = uuid.New()
	}
	return nil
}

// RejectedSwipeModel: catatan review untuk swipe ke ruangan yang tidak terdaftar.
type RejectedSwipeModel struct {
	RejectedSwipeID         uuid.UUID `json:"rejected_swipe_id"          gorm:"type:uuid;primaryKey;column:rejected_swipe_id"`
	RejectedSwipeEmployeeID uuid.UUID `json:"rejected_swipe_employee_id" gorm:"type:uuid;not null;index:idx_rejected_swipes_employee;column:rejected_swipe_employee_id"`
	RejectedSwipeBadgeTag   string    `json:"rejected_swipe_badge_tag"   gorm:"type:varchar(120);not null;column:rejected_swipe_badge_tag"`
	RejectedSwipeRoomNo     string    `json:"rejected_swipe_room_no"     gorm:"type:varchar(40);not null;column:rejected_swipe_room_no"`
	RejectedSwipeLocation   string    `json:"rejected_swipe_location"    gorm:"type:varchar(120);not null;column:rejected_swipe_location"`
	RejectedSwipeReason     string    `json:"rejected_swipe_reason"      gorm:"type:text;not null;column:rejected_swipe_reason"`
	RejectedSwipeAt         time.Time `json:"rejected_swipe_at"          gorm:"not null;index:idx_rejected_swipes_at;column:rejected_swipe_at"`
}

func (RejectedSwipeModel) TableName() string { return "rejected_swipes" }

func (m *RejectedSwipeModel) BeforeCreate(tx *gorm.DB) error {
	if m.RejectedSwipeID == uuid.Nil {
		m.RejectedSwipeID = uuid.New()
	}
	return nil
}
