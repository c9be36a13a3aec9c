// Package testsupport: database sqlite + fixture untuk test package lain.
package testsupport

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // driver "sqlite" (pure Go)

	"hrportal_backend/internals/configs"
	database "hrportal_backend/internals/databases"
	orgModel "hrportal_backend/internals/features/organization/model"
)

// OpenTestDB: sqlite file di t.TempDir(), sudah di-migrate. Satu koneksi saja
// supaya transaksi paralel diserialisasi seperti row lock di postgres.
func OpenTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presence.db")
	dsn := path + "?_pragma=busy_timeout(5000)&_time_format=sqlite"
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{
		Logger: gormLogger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Config: konfigurasi default dengan zona UTC.
func Config() configs.PresenceConfig {
	cfg := configs.DefaultPresenceConfig()
	cfg.Location = time.UTC
	return cfg
}

// At: waktu UTC pada tanggal day (YYYY-MM-DD) jam hh:mm:ss.
func At(t testing.TB, day, clock string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", day+" "+clock, time.UTC)
	if err != nil {
		t.Fatalf("parse time %s %s: %v", day, clock, err)
	}
	return ts
}

/* ===================== Clock ===================== */

// Clock: jam yang bisa di-set dari test.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock { return &Clock{now: now} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

/* ===================== Fixtures ===================== */

type EmployeeOpt func(*orgModel.EmployeeModel)

func Department(d string) EmployeeOpt {
	return func(e *orgModel.EmployeeModel) { e.EmployeeDepartment = &d }
}

func CanManage() EmployeeOpt {
	return func(e *orgModel.EmployeeModel) { e.EmployeeCanManage = true }
}

func Inactive() EmployeeOpt {
	return func(e *orgModel.EmployeeModel) { e.EmployeeIsActive = false }
}

func InTeam(id uuid.UUID) EmployeeOpt {
	return func(e *orgModel.EmployeeModel) { e.EmployeeCurrentTeamID = &id }
}

// CreateEmployee: badge tag = "TAG-" + code.
func CreateEmployee(t testing.TB, db *gorm.DB, code string, opts ...EmployeeOpt) *orgModel.EmployeeModel {
	t.Helper()
	e := &orgModel.EmployeeModel{
		EmployeeCode:     code,
		EmployeeName:     "Employee " + code,
		EmployeeBadgeTag: "TAG-" + code,
		EmployeeIsActive: true,
	}
	for _, o := range opts {
		o(e)
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("create employee %s: %v", code, err)
	}
	return e
}

func CreateRoom(t testing.TB, db *gorm.DB, roomNo, location string) *orgModel.RoomModel {
	t.Helper()
	r := &orgModel.RoomModel{RoomNo: roomNo, RoomLocationName: location}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create room %s/%s: %v", location, roomNo, err)
	}
	return r
}

func CreateTeam(t testing.TB, db *gorm.DB, name string) *orgModel.TeamModel {
	t.Helper()
	tm := &orgModel.TeamModel{TeamName: name, TeamDepartment: "Engineering"}
	if err := db.Create(tm).Error; err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}
	return tm
}

// SetLeaders: set permanent & acting leader (nil = kosong).
func SetLeaders(t testing.TB, db *gorm.DB, teamID uuid.UUID, permanent, acting *uuid.UUID) {
	t.Helper()
	if err := db.Model(&orgModel.TeamModel{}).Where("team_id = ?", teamID).
		Updates(map[string]any{
			"team_permanent_leader_id": permanent,
			"team_acting_leader_id":    acting,
		}).Error; err != nil {
		t.Fatalf("set leaders: %v", err)
	}
}

// ReloadTeam: baca ulang row tim.
func ReloadTeam(t testing.TB, db *gorm.DB, teamID uuid.UUID) *orgModel.TeamModel {
	t.Helper()
	var tm orgModel.TeamModel
	if err := db.Where("team_id = ?", teamID).Take(&tm).Error; err != nil {
		t.Fatalf("reload team: %v", err)
	}
	return &tm
}

func CreateLeave(t testing.TB, db *gorm.DB, employeeID uuid.UUID, start, end time.Time, status string) {
	t.Helper()
	l := &orgModel.LeaveRequestModel{
		LeaveRequestEmployeeID: employeeID,
		LeaveRequestStartDate:  datatypes.Date(start),
		LeaveRequestEndDate:    datatypes.Date(end),
		LeaveRequestStatus:     status,
	}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("create leave: %v", err)
	}
}
