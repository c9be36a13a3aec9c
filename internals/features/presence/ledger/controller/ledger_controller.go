// file: internals/features/presence/ledger/controller/ledger_controller.go
package controller

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hrportal_backend/internals/configs"
	"hrportal_backend/internals/constants"
	orgModel "hrportal_backend/internals/features/organization/model"
	orgRepo "hrportal_backend/internals/features/organization/repository"
	"hrportal_backend/internals/features/presence/ledger/dto"
	"hrportal_backend/internals/features/presence/ledger/service"
	helper "hrportal_backend/internals/helpers"
	"hrportal_backend/internals/helpers/dbtime"
)

type LedgerController struct {
	Store *service.Store
	Cfg   configs.PresenceConfig
	Clock func() time.Time
}

func NewLedgerController(store *service.Store, cfg configs.PresenceConfig) *LedgerController {
	return &LedgerController{Store: store, Cfg: cfg, Clock: time.Now}
}

/* ===================== helpers ===================== */

func (h *LedgerController) day(c *fiber.Ctx) (time.Time, error) {
	d, err := dbtime.ParseDay(c.Query("day"), h.Clock(), h.Cfg.Location)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "day harus YYYY-MM-DD")
	}
	return d, nil
}

// param: path param yang sudah di-unescape ("Main%20Gate" → "Main Gate")
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return strings.TrimSpace(raw)
}

func (h *LedgerController) employeeByCode(c *fiber.Ctx) (*orgModel.EmployeeModel, error) {
	code := param(c, "code")
	if code == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kode karyawan wajib diisi")
	}
	emp, err := orgRepo.FindEmployeeByCode(h.Store.DB.WithContext(c.UserContext()), code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Karyawan tidak ditemukan")
	}
	return emp, err
}

func brief(e *orgModel.EmployeeModel) dto.EmployeeBrief {
	return dto.ToEmployeeBriefs([]orgModel.EmployeeModel{*e})[0]
}

/* ===================== Headcount ===================== */

// GET /api/a/presence/headcount?day=
func (h *LedgerController) Headcount(c *fiber.Ctx) error {
	day, err := h.day(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := h.Store.Headcount(c.UserContext(), day)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /api/a/presence/headcount/:location/:room?day=
func (h *LedgerController) HeadcountForRoom(c *fiber.Ctx) error {
	day, err := h.day(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	room, loc := param(c, "room"), param(c, "location")
	n, err := h.Store.HeadcountFor(c.UserContext(), room, loc, day)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.RoomCountResponse{
		RoomNo:       room,
		LocationName: loc,
		Day:          day.Format("2006-01-02"),
		Count:        n,
	})
}

// GET /api/a/presence/occupants/:location/:room?day=
func (h *LedgerController) Occupants(c *fiber.Ctx) error {
	day, err := h.day(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := h.Store.Occupants(c.UserContext(), param(c, "room"), param(c, "location"), day)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

/* ===================== Per-employee ===================== */

// GET /api/a/presence/employees/:code/logs?limit=
func (h *LedgerController) EmployeeLogs(c *fiber.Ctx) error {
	emp, err := h.employeeByCode(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	limit := 0
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n <= 0 || n > 200 {
			return helper.JsonError(c, fiber.StatusBadRequest, "limit harus 1..200")
		}
		limit = n
	}
	rows, err := h.Store.RecentIntervals(c.UserContext(), emp.EmployeeID, limit)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.EmployeeLogsResponse{
		Employee:  brief(emp),
		Intervals: dto.ToIntervalResponses(rows),
	})
}

// GET /api/a/presence/employees/:code/hours?from=&scope=  (default: awal bulan berjalan, gate)
func (h *LedgerController) EmployeeHours(c *fiber.Ctx) error {
	var q dto.HoursQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	q.From, q.Scope = strings.TrimSpace(q.From), strings.ToLower(strings.TrimSpace(q.Scope))
	if err := helper.Validate.Struct(&q); err != nil {
		return helper.ValidationError(c, err)
	}
	emp, err := h.employeeByCode(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	from := dbtime.MonthStart(h.Clock(), h.Cfg.Location)
	if q.From != "" {
		if from, err = dbtime.ParseDay(q.From, h.Clock(), h.Cfg.Location); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from harus YYYY-MM-DD")
		}
	}
	scope := q.Scope
	if scope == "" {
		scope = constants.ScopeGate
	}
	hours, err := h.Store.HoursSince(c.UserContext(), emp.EmployeeID, scope, from)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.HoursResponse{
		Employee: brief(emp),
		Scope:    scope,
		From:     from.Format("2006-01-02"),
		Hours:    hours,
	})
}

/* ===================== Absentees ===================== */

// GET /api/a/presence/absentees?department=
func (h *LedgerController) Absentees(c *fiber.Ctx) error {
	dept := strings.TrimSpace(c.Query("department"))
	if dept == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "department wajib diisi")
	}
	rows, err := h.Store.Absentees(c.UserContext(), dept)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToEmployeeBriefs(rows), nil)
}

/* ===================== Review swipe ===================== */

// GET /api/a/presence/unmatched?q=&page=&per_page=
func (h *LedgerController) ListUnmatched(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := h.Store.ListUnmatched(c.UserContext(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "ok", rows, &pg)
}

// DELETE /api/a/presence/unmatched/:tag
func (h *LedgerController) ResolveUnmatched(c *fiber.Ctx) error {
	tag := param(c, "tag")
	if tag == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "tag wajib diisi")
	}
	n, err := h.Store.ResolveUnmatched(c.UserContext(), tag)
	if err != nil {
		return helper.FromError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tag tidak ada di daftar unmatched")
	}
	return helper.JsonDeleted(c, "Tag ditandai selesai", fiber.Map{"badge_tag": tag, "removed": n})
}

// GET /api/a/presence/rejected?page=&per_page=
func (h *LedgerController) ListRejected(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := h.Store.ListRejected(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "ok", rows, &pg)
}
