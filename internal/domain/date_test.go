package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d != Date("2026-09-01") {
		t.Fatalf("got %q", d)
	}
}

func TestParseDateRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "tomorrow", "09/01/2026", "2026-13-01", "2026-09-31"} {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q): want ErrInvalidDate, got %v", s, err)
		}
	}
}

func TestAddDaysRollsOverMonth(t *testing.T) {
	d := Date("2026-08-30")
	if got := d.AddDays(3); got != Date("2026-09-02") {
		t.Fatalf("AddDays(3) = %q", got)
	}
	if got := d.AddDays(0); got != d {
		t.Fatalf("AddDays(0) = %q", got)
	}
}

func TestDateOfTruncatesTime(t *testing.T) {
	at := time.Date(2026, 9, 1, 16, 45, 12, 0, time.UTC)
	if got := DateOf(at); got != Date("2026-09-01") {
		t.Fatalf("DateOf = %q", got)
	}
}
