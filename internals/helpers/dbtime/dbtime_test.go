package dbtime

import (
	"testing"
	"time"
)

func TestTodParseAndCompare(t *testing.T) {
	grace, err := Parse("09:30")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if grace.String() != "09:30:00" {
		t.Fatalf("grace = %s, want 09:30:00", grace)
	}

	cases := []struct {
		in    string
		after bool
	}{
		{"09:29:59", false},
		{"09:30:00", false},
		{"09:30:01", true},
		{"18:00", true},
	}
	for _, tc := range cases {
		tod, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got := tod.After(grace); got != tc.after {
			t.Errorf("%s.After(%s) = %v, want %v", tod, grace, got, tc.after)
		}
	}
}

func TestTodScan(t *testing.T) {
	var tod Tod
	if err := tod.Scan("08:05:00.000000"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if tod.String() != "08:05:00" {
		t.Fatalf("got %s", tod)
	}
	if err := tod.Scan(42); err == nil {
		t.Fatal("expected error for int")
	}
}

func TestTimeOfDayKeepsNanos(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 30, 0, 500, time.UTC)
	grace, _ := Parse("09:30:00")
	if TimeOfDay(at) <= grace.Duration() {
		t.Fatalf("expected %v to be after %v", TimeOfDay(at), grace.Duration())
	}
}

func TestDayRangeAndParseDay(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	at := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC) // 03:00 WIB tanggal 19
	start, end := DayRange(at, loc)
	if start.Day() != 19 || start.Hour() != 0 || end.Sub(start) != 24*time.Hour {
		t.Fatalf("unexpected range %s - %s", start, end)
	}

	day, err := ParseDay("2026-10-01", at, loc)
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if day.Location() != loc || day.Day() != 1 {
		t.Fatalf("unexpected day %s", day)
	}
	today, _ := ParseDay("", at, loc)
	if !today.Equal(start) {
		t.Fatalf("empty day should resolve to today, got %s", today)
	}
	if _, err := ParseDay("19/10/2026", at, loc); err == nil {
		t.Fatal("expected parse error")
	}
	if ms := MonthStart(at, loc); ms.Day() != 1 || ms.Month() != time.October {
		t.Fatalf("unexpected month start %s", ms)
	}
}
