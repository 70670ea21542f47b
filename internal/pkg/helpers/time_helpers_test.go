package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	if d := ParseDuration("90m", time.Hour); d != 90*time.Minute {
		t.Errorf("ParseDuration(90m) = %v, want 1h30m", d)
	}
	if d := ParseDuration("not-a-duration", time.Hour); d != time.Hour {
		t.Errorf("ParseDuration(invalid) = %v, want the default", d)
	}
}

func TestParseDateRange(t *testing.T) {
	start, end, ok, err := ParseDateRange("2026-07-01", "2026-07-31")
	if err != nil || !ok {
		t.Fatalf("ParseDateRange() = ok %v, err %v", ok, err)
	}
	if start != time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v, want 2026-07-01 00:00", start)
	}
	// The end bound covers the whole final day
	lastInstant := time.Date(2026, 7, 31, 23, 59, 59, 999999999, time.UTC)
	if !end.Equal(lastInstant) {
		t.Errorf("end = %v, want %v", end, lastInstant)
	}
}

func TestParseDateRangeMissingBound(t *testing.T) {
	if _, _, ok, err := ParseDateRange("2026-07-01", ""); ok || err != nil {
		t.Errorf("ParseDateRange() with one bound = ok %v, err %v; want no range and no error", ok, err)
	}
	if _, _, ok, err := ParseDateRange("", ""); ok || err != nil {
		t.Errorf("ParseDateRange() with no bounds = ok %v, err %v; want no range and no error", ok, err)
	}
}

func TestParseDateRangeInvalid(t *testing.T) {
	if _, _, _, err := ParseDateRange("01/07/2026", "2026-07-31"); err == nil {
		t.Error("ParseDateRange() with wrong format did not fail")
	}
}
