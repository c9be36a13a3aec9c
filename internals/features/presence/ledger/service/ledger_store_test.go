package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrportal_backend/internals/constants"
	"hrportal_backend/internals/features/presence/ledger/model"
	"hrportal_backend/internals/testsupport"
)

func TestDuration(t *testing.T) {
	base := time.Date(2026, 10, 19, 8, 5, 0, 0, time.UTC)
	cases := []struct {
		name string
		exit time.Time
		want float64
	}{
		{"3h55m", base.Add(3*time.Hour + 55*time.Minute), 3.92},
		{"10h", base.Add(10 * time.Hour), 10.00},
		{"zero", base, 0},
		{"one minute", base.Add(time.Minute), 0.02},
		{"negative clamps", base.Add(-time.Hour), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Duration(base, tc.exit); got != tc.want {
				t.Fatalf("Duration = %v, want %v", got, tc.want)
			}
		})
	}
}

func newStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db := testsupport.OpenTestDB(t)
	return NewStore(db, testsupport.Config(), zap.NewNop()), db
}

func TestOpenClose(t *testing.T) {
	s, db := newStore(t)
	emp := testsupport.CreateEmployee(t, db, "E001")
	entry := testsupport.At(t, "2026-10-19", "08:00:00")
	exit := testsupport.At(t, "2026-10-19", "18:00:00")

	iv, err := s.Open(db, emp.EmployeeID, constants.ScopeGate, "77", "Main Gate", entry)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	open, err := s.FindOpen(db, emp.EmployeeID, constants.ScopeGate)
	if err != nil || open == nil {
		t.Fatalf("FindOpen = %v, %v", open, err)
	}
	if open.AttendanceIntervalID != iv.AttendanceIntervalID {
		t.Fatalf("found another interval")
	}

	if err := s.Close(db, open, exit); err != nil {
		t.Fatalf("close: %v", err)
	}
	if open.AttendanceIntervalDurationHours == nil || *open.AttendanceIntervalDurationHours != 10 {
		t.Fatalf("duration = %v, want 10", open.AttendanceIntervalDurationHours)
	}
	if again, _ := s.FindOpen(db, emp.EmployeeID, constants.ScopeGate); again != nil {
		t.Fatalf("interval still open after close")
	}

	// interval lama (salinan basi) tidak boleh ditulis ulang
	if err := s.Close(db, iv, exit.Add(time.Hour)); !errors.Is(err, ErrIntervalClosed) {
		t.Fatalf("second close err = %v, want ErrIntervalClosed", err)
	}
	var stored model.AttendanceIntervalModel
	if err := db.Where("attendance_interval_id = ?", iv.AttendanceIntervalID).Take(&stored).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !stored.AttendanceIntervalExitTime.Equal(exit) {
		t.Fatalf("exit rewritten: %v", stored.AttendanceIntervalExitTime)
	}
}

func TestOpenIntervalUniquePerScope(t *testing.T) {
	s, db := newStore(t)
	emp := testsupport.CreateEmployee(t, db, "E001")
	at := testsupport.At(t, "2026-10-19", "08:00:00")

	first, err := s.Open(db, emp.EmployeeID, constants.ScopeGate, "77", "Main Gate", at)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// Open tidak mengecek interval lama; yang menolak adalah index unik
	if _, err := s.Open(db, emp.EmployeeID, constants.ScopeGate, "77", "North Gate", at.Add(time.Minute)); err == nil {
		t.Fatal("second open gate interval must violate the partial unique index")
	}
	// scope lain tetap boleh
	if _, err := s.Open(db, emp.EmployeeID, constants.ScopeBlock, "R5", "L1", at.Add(time.Minute)); err != nil {
		t.Fatalf("open block: %v", err)
	}
	// setelah ditutup, interval gate baru boleh dibuka
	if err := s.Close(db, first, at.Add(time.Hour)); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := s.Open(db, emp.EmployeeID, constants.ScopeGate, "77", "Main Gate", at.Add(2*time.Hour)); err != nil {
		t.Fatalf("reopen gate: %v", err)
	}
}

func TestReportingQueries(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()
	a := testsupport.CreateEmployee(t, db, "E001", testsupport.Department("Engineering"))
	b := testsupport.CreateEmployee(t, db, "E002", testsupport.Department("Engineering"))
	c := testsupport.CreateEmployee(t, db, "E003", testsupport.Department("Engineering"))
	testsupport.CreateEmployee(t, db, "E004", testsupport.Department("HR"))
	testsupport.CreateEmployee(t, db, "E005", testsupport.Department("Engineering"), testsupport.Inactive())
	testsupport.CreateRoom(t, db, "R5", "L1")

	day := testsupport.At(t, "2026-10-19", "00:00:00")
	at := func(clock string) time.Time { return testsupport.At(t, "2026-10-19", clock) }

	// a: gate + R5 terbuka; b: gate + R5 terbuka; c: gate sudah ditutup
	for _, id := range []uuid.UUID{a.EmployeeID, b.EmployeeID} {
		if _, err := s.Open(db, id, constants.ScopeGate, "77", "Main Gate", at("08:00:00")); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Open(db, id, constants.ScopeBlock, "R5", "L1", at("08:05:00")); err != nil {
			t.Fatal(err)
		}
	}
	civ, err := s.Open(db, c.EmployeeID, constants.ScopeGate, "77", "Main Gate", at("07:00:00"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(db, civ, at("09:30:00")); err != nil {
		t.Fatal(err)
	}

	t.Run("headcount", func(t *testing.T) {
		rows, err := s.Headcount(ctx, day)
		if err != nil {
			t.Fatal(err)
		}
		got := map[string]int64{}
		for _, r := range rows {
			got[r.LocationName+"/"+r.RoomNo] = r.Count
		}
		if got["L1/R5"] != 2 || got["Main Gate/77"] != 2 || len(got) != 2 {
			t.Fatalf("headcount = %v", got)
		}
		n, err := s.HeadcountFor(ctx, "R5", "L1", day)
		if err != nil || n != 2 {
			t.Fatalf("HeadcountFor = %d, %v", n, err)
		}
		n, _ = s.HeadcountFor(ctx, "R5", "L1", day.AddDate(0, 0, 1))
		if n != 0 {
			t.Fatalf("next day headcount = %d, want 0", n)
		}
	})

	t.Run("occupants", func(t *testing.T) {
		rows, err := s.Occupants(ctx, "R5", "L1", day)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 2 || rows[0].EmployeeCode == "" {
			t.Fatalf("occupants = %+v", rows)
		}
	})

	t.Run("absentees", func(t *testing.T) {
		rows, err := s.Absentees(ctx, "Engineering")
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 || rows[0].EmployeeCode != "E003" {
			t.Fatalf("absentees = %+v", rows)
		}
	})

	t.Run("recent", func(t *testing.T) {
		rows, err := s.RecentIntervals(ctx, a.EmployeeID, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 || rows[0].AttendanceIntervalScopeClass != constants.ScopeBlock {
			t.Fatalf("recent = %+v", rows)
		}
		rows, _ = s.RecentIntervals(ctx, a.EmployeeID, 0)
		if len(rows) != 2 {
			t.Fatalf("default limit rows = %d, want 2", len(rows))
		}
	})

	t.Run("has interval on", func(t *testing.T) {
		ok, err := s.HasIntervalOn(db, c.EmployeeID, at("12:00:00"))
		if err != nil || !ok {
			t.Fatalf("HasIntervalOn today = %v, %v", ok, err)
		}
		ok, _ = s.HasIntervalOn(db, c.EmployeeID, at("12:00:00").AddDate(0, 0, 1))
		if ok {
			t.Fatal("HasIntervalOn tomorrow must be false")
		}
	})

	t.Run("hours since", func(t *testing.T) {
		h, err := s.HoursSince(ctx, c.EmployeeID, "", day)
		if err != nil || h != 2.5 {
			t.Fatalf("HoursSince = %v, %v; want 2.5", h, err)
		}
		h, _ = s.HoursSince(ctx, c.EmployeeID, constants.ScopeBlock, day)
		if h != 0 {
			t.Fatalf("block hours = %v, want 0", h)
		}
		h, _ = s.HoursSince(ctx, c.EmployeeID, "", day.AddDate(0, 0, 1))
		if h != 0 {
			t.Fatalf("hours since tomorrow = %v, want 0", h)
		}
	})
}

func TestHeadcountSkipsUnregisteredRooms(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()
	room := testsupport.CreateRoom(t, db, "R5", "L1")
	a := testsupport.CreateEmployee(t, db, "E001")
	b := testsupport.CreateEmployee(t, db, "E002")
	at := testsupport.At(t, "2026-10-19", "08:00:00")

	if _, err := s.Open(db, a.EmployeeID, constants.ScopeGate, "77", "North Gate", at); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Open(db, a.EmployeeID, constants.ScopeBlock, "R5", "L1", at); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Open(db, b.EmployeeID, constants.ScopeBlock, "R9", "L1", at); err != nil {
		t.Fatal(err)
	}

	counts := func() map[string]int64 {
		t.Helper()
		rows, err := s.Headcount(ctx, at)
		if err != nil {
			t.Fatal(err)
		}
		got := map[string]int64{}
		for _, r := range rows {
			got[r.LocationName+"/"+r.RoomNo] = r.Count
		}
		return got
	}

	got := counts()
	if len(got) != 2 || got["L1/R5"] != 1 || got["North Gate/77"] != 1 {
		t.Fatalf("headcount = %v", got)
	}
	if n, _ := s.HeadcountFor(ctx, "R9", "L1", at); n != 0 {
		t.Fatalf("unregistered room count = %d, want 0", n)
	}

	// ruangan dihapus: interval lama tidak lagi dihitung, gate tetap
	if err := db.Delete(room).Error; err != nil {
		t.Fatal(err)
	}
	got = counts()
	if len(got) != 1 || got["North Gate/77"] != 1 {
		t.Fatalf("headcount after delete = %v", got)
	}
}

func TestUnmatchedLifecycle(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()
	at := testsupport.At(t, "2026-10-19", "08:00:00")

	for i, tag := range []string{"GHOST-1", "GHOST-1", "GHOST-2"} {
		if err := s.RecordUnmatched(db, tag, "77", "Main Gate", at.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatal(err)
		}
	}

	rows, total, err := s.ListUnmatched(ctx, "", 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(rows) != 2 || rows[0].UnmatchedSwipeBadgeTag != "GHOST-2" {
		t.Fatalf("list = %d rows, total %d, first %+v", len(rows), total, rows)
	}

	rows, total, _ = s.ListUnmatched(ctx, "ghost-1", 10, 0)
	if total != 2 || len(rows) != 2 {
		t.Fatalf("search total = %d", total)
	}

	n, err := s.ResolveUnmatched(ctx, "GHOST-1")
	if err != nil || n != 2 {
		t.Fatalf("resolve = %d, %v", n, err)
	}
	_, total, _ = s.ListUnmatched(ctx, "", 10, 0)
	if total != 1 {
		t.Fatalf("remaining = %d, want 1", total)
	}
}
