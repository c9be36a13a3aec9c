// file: internals/features/presence/ledger/service/ledger_store.go
package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hrportal_backend/internals/configs"
	"hrportal_backend/internals/constants"
	orgModel "hrportal_backend/internals/features/organization/model"
	"hrportal_backend/internals/features/presence/ledger/model"
	"hrportal_backend/internals/helpers/dbtime"
)

// ErrIntervalClosed: interval yang mau ditutup ternyata sudah punya exit.
var ErrIntervalClosed = errors.New("attendance interval already closed")

// Store: akses ke presence ledger (attendance_intervals + catatan review swipe).
// Method yang menerima tx dipakai di dalam transaksi swipe; sisanya read-only reporting.
type Store struct {
	DB     *gorm.DB
	Cfg    configs.PresenceConfig
	Logger *zap.Logger
}

func NewStore(db *gorm.DB, cfg configs.PresenceConfig, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{DB: db, Cfg: cfg, Logger: logger.Named("ledger")}
}

// Duration: selisih exit-entry dalam jam, dibulatkan 2 desimal. Nilai negatif di-clamp ke 0.
func Duration(entry, exit time.Time) float64 {
	h := exit.Sub(entry).Hours()
	if h < 0 {
		return 0
	}
	return math.Round(h*100) / 100
}

/* ============================ WRITE (dalam tx) ============================ */

// FindOpen: interval terbuka untuk (employee, scope). (nil, nil) kalau tidak ada.
func (s *Store) FindOpen(tx *gorm.DB, employeeID uuid.UUID, scope string) (*model.AttendanceIntervalModel, error) {
	var iv model.AttendanceIntervalModel
	err := tx.Where("attendance_interval_employee_id = ? AND attendance_interval_scope_class = ? AND attendance_interval_exit_time IS NULL",
		employeeID, scope).
		Order("attendance_interval_entry_time DESC").
		Take(&iv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// Open membuat interval baru (exit NULL) pada waktu at.
func (s *Store) Open(tx *gorm.DB, employeeID uuid.UUID, scope, roomNo, locationName string, at time.Time) (*model.AttendanceIntervalModel, error) {
	iv := model.AttendanceIntervalModel{
		AttendanceIntervalEmployeeID:   employeeID,
		AttendanceIntervalScopeClass:   scope,
		AttendanceIntervalRoomNo:       roomNo,
		AttendanceIntervalLocationName: locationName,
		AttendanceIntervalDate:         datatypes.Date(dbtime.DayStart(at, s.Cfg.Location)),
		AttendanceIntervalEntryTime:    at,
		AttendanceIntervalStatus:       constants.IntervalPresent,
	}
	if err := tx.Create(&iv).Error; err != nil {
		return nil, err
	}
	return &iv, nil
}

// Close mengisi exit + duration. Update bersyarat (exit IS NULL) supaya interval
// yang sudah ditutup tidak pernah ditulis ulang.
func (s *Store) Close(tx *gorm.DB, iv *model.AttendanceIntervalModel, at time.Time) error {
	if iv.AttendanceIntervalExitTime != nil {
		return ErrIntervalClosed
	}
	if at.Before(iv.AttendanceIntervalEntryTime) {
		s.Logger.Warn("exit before entry, duration clamped to zero",
			zap.String("interval_id", iv.AttendanceIntervalID.String()),
			zap.Time("entry", iv.AttendanceIntervalEntryTime),
			zap.Time("exit", at))
	}
	dur := Duration(iv.AttendanceIntervalEntryTime, at)

	res := tx.Model(&model.AttendanceIntervalModel{}).
		Where("attendance_interval_id = ? AND attendance_interval_exit_time IS NULL", iv.AttendanceIntervalID).
		Updates(map[string]any{
			"attendance_interval_exit_time":      at,
			"attendance_interval_duration_hours": dur,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrIntervalClosed
	}
	iv.AttendanceIntervalExitTime = &at
	iv.AttendanceIntervalDurationHours = &dur
	return nil
}

func (s *Store) RecordUnmatched(tx *gorm.DB, badgeTag, roomNo, locationName string, at time.Time) error {
	row := model.UnmatchedSwipeModel{
		UnmatchedSwipeBadgeTag: badgeTag,
		UnmatchedSwipeRoomNo:   strPtr(roomNo),
		UnmatchedSwipeLocation: strPtr(locationName),
		UnmatchedSwipeAt:       at,
	}
	return tx.Create(&row).Error
}

func (s *Store) RecordRejected(tx *gorm.DB, employeeID uuid.UUID, badgeTag, roomNo, locationName, reason string, at time.Time) error {
	row := model.RejectedSwipeModel{
		RejectedSwipeEmployeeID: employeeID,
		RejectedSwipeBadgeTag:   badgeTag,
		RejectedSwipeRoomNo:     roomNo,
		RejectedSwipeLocation:   locationName,
		RejectedSwipeReason:     reason,
		RejectedSwipeAt:         at,
	}
	return tx.Create(&row).Error
}

/* ============================ READ ============================ */

// HasIntervalOn: ada interval (terbuka/tertutup) yang entry-nya jatuh di hari day?
// db boleh tx supaya bisa dipakai di transaksi scheduler.
func (s *Store) HasIntervalOn(db *gorm.DB, employeeID uuid.UUID, day time.Time) (bool, error) {
	start, end := dbtime.DayRange(day, s.Cfg.Location)
	var n int64
	err := db.Model(&model.AttendanceIntervalModel{}).
		Where("attendance_interval_employee_id = ?", employeeID).
		Where("attendance_interval_entry_time >= ? AND attendance_interval_entry_time < ?", start, end).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

// RoomHeadcount: jumlah interval terbuka per ruangan.
type RoomHeadcount struct {
	RoomNo       string `json:"room_no"`
	LocationName string `json:"location_name"`
	ScopeClass   string `json:"scope_class"`
	Count        int64  `json:"count"`
}

// scopeGateOrRegisteredRoom: interval gate, atau block di ruangan yang masih terdaftar.
func scopeGateOrRegisteredRoom(db *gorm.DB) *gorm.DB {
	return db.Where(`(attendance_intervals.attendance_interval_scope_class = ? OR EXISTS (
		SELECT 1 FROM rooms r
		WHERE r.room_no = attendance_intervals.attendance_interval_room_no
		  AND r.room_location_name = attendance_intervals.attendance_interval_location_name))`,
		constants.ScopeGate)
}

// Headcount: interval terbuka hari day, dikelompokkan per (room, location).
// Hanya gate dan ruangan terdaftar yang dihitung.
func (s *Store) Headcount(ctx context.Context, day time.Time) ([]RoomHeadcount, error) {
	var rows []RoomHeadcount
	err := s.DB.WithContext(ctx).
		Model(&model.AttendanceIntervalModel{}).
		Scopes(scopeGateOrRegisteredRoom).
		Select(`attendance_interval_room_no AS room_no,
		        attendance_interval_location_name AS location_name,
		        attendance_interval_scope_class AS scope_class,
		        COUNT(*) AS count`).
		Where("attendance_interval_exit_time IS NULL AND attendance_interval_date = ?",
			datatypes.Date(dbtime.DayStart(day, s.Cfg.Location))).
		Group("attendance_interval_room_no, attendance_interval_location_name, attendance_interval_scope_class").
		Order("attendance_interval_location_name ASC, attendance_interval_room_no ASC").
		Scan(&rows).Error
	return rows, err
}

// HeadcountFor: jumlah interval terbuka untuk satu (room, location) di hari day.
func (s *Store) HeadcountFor(ctx context.Context, roomNo, locationName string, day time.Time) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&model.AttendanceIntervalModel{}).
		Scopes(scopeGateOrRegisteredRoom).
		Where("attendance_interval_exit_time IS NULL AND attendance_interval_date = ?",
			datatypes.Date(dbtime.DayStart(day, s.Cfg.Location))).
		Where("attendance_interval_room_no = ? AND attendance_interval_location_name = ?",
			strings.TrimSpace(roomNo), strings.TrimSpace(locationName)).
		Count(&n).Error
	return n, err
}

// RecentIntervals: N interval terakhir milik karyawan, terbaru dulu.
func (s *Store) RecentIntervals(ctx context.Context, employeeID uuid.UUID, n int) ([]model.AttendanceIntervalModel, error) {
	if n <= 0 {
		n = s.Cfg.RecentLogLimit
	}
	var rows []model.AttendanceIntervalModel
	err := s.DB.WithContext(ctx).
		Where("attendance_interval_employee_id = ?", employeeID).
		Order("attendance_interval_entry_time DESC").
		Order("attendance_interval_scope_class ASC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}

// Absentees: karyawan aktif di department yang saat ini tidak punya interval gate terbuka.
// View live (sebelum sweep malam), bukan ringkasan harian resmi.
func (s *Store) Absentees(ctx context.Context, department string) ([]orgModel.EmployeeModel, error) {
	var rows []orgModel.EmployeeModel
	err := s.DB.WithContext(ctx).
		Where("employee_is_active = ? AND employee_department = ?", true, strings.TrimSpace(department)).
		Where(`NOT EXISTS (
			SELECT 1 FROM attendance_intervals ai
			WHERE ai.attendance_interval_employee_id = employees.employee_id
			  AND ai.attendance_interval_scope_class = ?
			  AND ai.attendance_interval_exit_time IS NULL)`, constants.ScopeGate).
		Order("employee_code ASC").
		Find(&rows).Error
	return rows, err
}

// Occupant: orang yang sedang berada di satu ruangan.
type Occupant struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	EmployeeName string    `json:"employee_name"`
	EntryTime    time.Time `json:"entry_time"`
}

// Occupants: interval terbuka hari day di (room, location) + identitas karyawan. Read-only.
func (s *Store) Occupants(ctx context.Context, roomNo, locationName string, day time.Time) ([]Occupant, error) {
	var rows []Occupant
	err := s.DB.WithContext(ctx).
		Table("attendance_intervals AS ai").
		Select(`e.employee_id AS employee_id,
		        e.employee_code AS employee_code,
		        e.employee_name AS employee_name,
		        ai.attendance_interval_entry_time AS entry_time`).
		Joins("JOIN employees e ON e.employee_id = ai.attendance_interval_employee_id").
		Where("ai.attendance_interval_exit_time IS NULL AND ai.attendance_interval_date = ?",
			datatypes.Date(dbtime.DayStart(day, s.Cfg.Location))).
		Where("ai.attendance_interval_room_no = ? AND ai.attendance_interval_location_name = ?",
			strings.TrimSpace(roomNo), strings.TrimSpace(locationName)).
		Order("ai.attendance_interval_entry_time ASC").
		Scan(&rows).Error
	return rows, err
}

// HoursSince: total durasi interval tertutup yang entry-nya >= from.
// Gate dan block dihitung terpisah; caller memilih scope (kosong = gate saja).
func (s *Store) HoursSince(ctx context.Context, employeeID uuid.UUID, scope string, from time.Time) (float64, error) {
	if scope == "" {
		scope = constants.ScopeGate
	}
	var total float64
	err := s.DB.WithContext(ctx).
		Model(&model.AttendanceIntervalModel{}).
		Select("COALESCE(SUM(attendance_interval_duration_hours), 0)").
		Where("attendance_interval_employee_id = ? AND attendance_interval_scope_class = ?", employeeID, scope).
		Where("attendance_interval_exit_time IS NOT NULL AND attendance_interval_entry_time >= ?", from).
		Scan(&total).Error
	return math.Round(total*100) / 100, err
}

// ListUnmatched: swipe tak dikenal, terbaru dulu. search mencocokkan tag/lokasi.
func (s *Store) ListUnmatched(ctx context.Context, search string, limit, offset int) ([]model.UnmatchedSwipeModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.UnmatchedSwipeModel{})
	if v := strings.TrimSpace(search); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(unmatched_swipe_badge_tag) LIKE ? OR LOWER(COALESCE(unmatched_swipe_location, '')) LIKE ?", like, like)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.UnmatchedSwipeModel
	err := q.Order("unmatched_swipe_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

// ResolveUnmatched menghapus catatan swipe tak dikenal untuk satu tag (setelah ditindaklanjuti admin).
func (s *Store) ResolveUnmatched(ctx context.Context, badgeTag string) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("unmatched_swipe_badge_tag = ?", strings.TrimSpace(badgeTag)).
		Delete(&model.UnmatchedSwipeModel{})
	return res.RowsAffected, res.Error
}

func (s *Store) ListRejected(ctx context.Context, limit, offset int) ([]model.RejectedSwipeModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.RejectedSwipeModel{})
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.RejectedSwipeModel
	err := q.Order("rejected_swipe_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
