// file: internals/features/presence/ledger/dto/ledger_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	orgModel "hrportal_backend/internals/features/organization/model"
	"hrportal_backend/internals/features/presence/ledger/model"
)

/* ===================== Interval ===================== */

type IntervalResponse struct {
	ID            uuid.UUID  `json:"id"`
	ScopeClass    string     `json:"scope_class"`
	RoomNo        string     `json:"room_no"`
	LocationName  string     `json:"location_name"`
	Date          string     `json:"date"`
	EntryTime     time.Time  `json:"entry_time"`
	ExitTime      *time.Time `json:"exit_time,omitempty"`
	DurationHours *float64   `json:"duration_hours,omitempty"`
	Status        string     `json:"status"`
	Open          bool       `json:"open"`
}

func ToIntervalResponse(m *model.AttendanceIntervalModel) IntervalResponse {
	return IntervalResponse{
		ID:            m.AttendanceIntervalID,
		ScopeClass:    m.AttendanceIntervalScopeClass,
		RoomNo:        m.AttendanceIntervalRoomNo,
		LocationName:  m.AttendanceIntervalLocationName,
		Date:          time.Time(m.AttendanceIntervalDate).Format("2006-01-02"),
		EntryTime:     m.AttendanceIntervalEntryTime,
		ExitTime:      m.AttendanceIntervalExitTime,
		DurationHours: m.AttendanceIntervalDurationHours,
		Status:        m.AttendanceIntervalStatus,
		Open:          m.IsOpen(),
	}
}

func ToIntervalResponses(rows []model.AttendanceIntervalModel) []IntervalResponse {
	out := make([]IntervalResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToIntervalResponse(&rows[i]))
	}
	return out
}

/* ===================== Employee ===================== */

type EmployeeBrief struct {
	ID         uuid.UUID `json:"employee_id"`
	Code       string    `json:"employee_code"`
	Name       string    `json:"employee_name"`
	Department string    `json:"department,omitempty"`
}

func ToEmployeeBriefs(rows []orgModel.EmployeeModel) []EmployeeBrief {
	out := make([]EmployeeBrief, 0, len(rows))
	for _, e := range rows {
		b := EmployeeBrief{ID: e.EmployeeID, Code: e.EmployeeCode, Name: e.EmployeeName}
		if e.EmployeeDepartment != nil {
			b.Department = *e.EmployeeDepartment
		}
		out = append(out, b)
	}
	return out
}

// EmployeeLogsResponse: GET /employees/:code/logs
type EmployeeLogsResponse struct {
	Employee  EmployeeBrief      `json:"employee"`
	Intervals []IntervalResponse `json:"intervals"`
}

// HoursQuery: GET /employees/:code/hours?from=YYYY-MM-DD&scope=gate|block
type HoursQuery struct {
	From  string `json:"from"  query:"from"  validate:"omitempty,datetime=2006-01-02"`
	Scope string `json:"scope" query:"scope" validate:"omitempty,oneof=gate block"`
}

type HoursResponse struct {
	Employee EmployeeBrief `json:"employee"`
	Scope    string        `json:"scope"`
	From     string        `json:"from"`
	Hours    float64       `json:"hours"`
}

/* ===================== Headcount ===================== */

type RoomCountResponse struct {
	RoomNo       string `json:"room_no"`
	LocationName string `json:"location_name"`
	Day          string `json:"day"`
	Count        int64  `json:"count"`
}
