// file: internals/features/presence/swipes/dto/swipe_dto.go
package dto

import (
	"strings"

	"hrportal_backend/internals/features/presence/swipes/service"
)

// SwipeRequest: payload dari badge reader (JSON, form, atau query).
type SwipeRequest struct {
	BadgeTag     string `json:"badge_tag"     form:"badge_tag"     query:"badge_tag"     validate:"required,max=120"`
	RoomNo       string `json:"room_no"       form:"room_no"       query:"room_no"       validate:"required,max=40"`
	LocationName string `json:"location_name" form:"location_name" query:"location_name" validate:"required,max=120"`
}

func (r *SwipeRequest) Normalize() {
	r.BadgeTag = strings.TrimSpace(r.BadgeTag)
	r.RoomNo = strings.TrimSpace(r.RoomNo)
	r.LocationName = strings.TrimSpace(r.LocationName)
}

func (r SwipeRequest) ToInput() service.SwipeInput {
	return service.SwipeInput{
		BadgeTag:     r.BadgeTag,
		RoomNo:       r.RoomNo,
		LocationName: r.LocationName,
	}
}
