// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"sync"
	"time"
)

var (
	defaultMu  sync.RWMutex
	defaultLoc = time.UTC
)

// SetDefaultLocation dipanggil sekali saat bootstrap dari PresenceConfig.
func SetDefaultLocation(loc *time.Location) {
	if loc == nil {
		return
	}
	defaultMu.Lock()
	defaultLoc = loc
	defaultMu.Unlock()
}

func DefaultLocation() *time.Location {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLoc
}

// LoadLocation: nama zona → *time.Location, fallback Asia/Jakarta lalu UTC.
func LoadLocation(name string) *time.Location {
	if s := strings.TrimSpace(name); s != "" {
		if loc, err := time.LoadLocation(s); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return time.UTC
}

// DayStart: jam 00:00 pada tanggal t di zona loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = DefaultLocation()
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayRange: [00:00, 00:00 hari berikutnya) untuk tanggal t di zona loc.
func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := DayStart(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// MonthStart: tanggal 1 bulan berjalan, 00:00.
func MonthStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = DefaultLocation()
	}
	y, m, _ := t.In(loc).Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, loc)
}

// ParseDay: "YYYY-MM-DD" → DayStart di loc. String kosong → hari ini.
func ParseDay(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DayStart(now, loc), nil
	}
	if loc == nil {
		loc = DefaultLocation()
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
