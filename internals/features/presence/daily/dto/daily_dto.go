// file: internals/features/presence/daily/dto/daily_dto.go
package dto

import "strings"

// DailyQuery: GET /daily?day=YYYY-MM-DD&status=LATE
type DailyQuery struct {
	Day    string `json:"day"    query:"day"    validate:"omitempty,datetime=2006-01-02"`
	Status string `json:"status" query:"status" validate:"omitempty,oneof=PRESENT LATE ABSENT"`
}

func (q *DailyQuery) Normalize() {
	q.Day = strings.TrimSpace(q.Day)
	q.Status = strings.ToUpper(strings.TrimSpace(q.Status))
}
