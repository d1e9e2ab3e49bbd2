package counseling

import (
	"errors"
	"testing"
	"time"
)

var wib = time.FixedZone("WIB", 7*60*60)

// 2026-01-07 is a Wednesday.
func wednesday() time.Time {
	return time.Date(2026, 1, 7, 10, 0, 0, 0, wib)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		name string
		want time.Weekday
	}{
		{"minggu", time.Sunday},
		{"Senin", time.Monday},
		{"SELASA", time.Tuesday},
		{"rabu", time.Wednesday},
		{"kamis", time.Thursday},
		{"jumat", time.Friday},
		{"Jum'at", time.Friday},
		{"sabtu", time.Saturday},
		{"sunday", time.Sunday},
		{"Monday", time.Monday},
		{"tuesday", time.Tuesday},
		{"WEDNESDAY", time.Wednesday},
		{"thursday", time.Thursday},
		{"friday", time.Friday},
		{" saturday ", time.Saturday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseWeekday(tt.name)
			if !ok {
				t.Fatalf("ParseWeekday(%q) not recognized", tt.name)
			}
			if got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if _, ok := ParseWeekday("senen"); ok {
		t.Error("expected misspelled day to be rejected")
	}
}

func TestResolveDate_NeverToday(t *testing.T) {
	names := []string{
		"minggu", "senin", "selasa", "rabu", "kamis", "jumat", "sabtu",
		"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	}

	start := wednesday()
	for day := 0; day < 7; day++ {
		now := start.AddDate(0, 0, day)
		r := NewResolver(wib, WithNow(fixedNow(now)))
		today := now.Format(DateLayout)

		for _, name := range names {
			got, err := r.ResolveDate(name)
			if err != nil {
				t.Fatalf("ResolveDate(%q): %v", name, err)
			}
			if got == today {
				t.Errorf("ResolveDate(%q) on %s returned today", name, today)
			}
			resolved, err := time.ParseInLocation(DateLayout, got, wib)
			if err != nil {
				t.Fatalf("unparseable date %q: %v", got, err)
			}
			days := int(resolved.Sub(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, wib)).Hours() / 24)
			if days < 1 || days > 7 {
				t.Errorf("ResolveDate(%q) on %s = %s, %d days out", name, today, got, days)
			}
			want, _ := ParseWeekday(name)
			if resolved.Weekday() != want {
				t.Errorf("ResolveDate(%q) = %s which is a %v", name, got, resolved.Weekday())
			}
		}
	}
}

func TestResolveDate_Examples(t *testing.T) {
	r := NewResolver(wib, WithNow(fixedNow(wednesday())))

	tests := []struct {
		hari string
		want string
	}{
		{"senin", "2026-01-12"},
		{"kamis", "2026-01-08"},
		{"rabu", "2026-01-14"},
		{"Sunday", "2026-01-11"},
	}
	for _, tt := range tests {
		t.Run(tt.hari, func(t *testing.T) {
			got, err := r.ResolveDate(tt.hari)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ResolveDate(%q) = %s, want %s", tt.hari, got, tt.want)
			}
		})
	}
}

func TestResolveDate_UsesLocalCalendarDate(t *testing.T) {
	// 18:00 UTC on Tuesday is already Wednesday 01:00 in WIB.
	now := time.Date(2026, 1, 6, 18, 0, 0, 0, time.UTC)
	r := NewResolver(wib, WithNow(fixedNow(now)))

	got, err := r.ResolveDate("rabu")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2026-01-14" {
		t.Errorf("ResolveDate(rabu) = %s, want 2026-01-14", got)
	}
	if today := r.Today(); today != "2026-01-07" {
		t.Errorf("Today() = %s, want 2026-01-07", today)
	}
}

func TestResolveDate_UnknownWeekday(t *testing.T) {
	t.Run("lenient falls back to today", func(t *testing.T) {
		r := NewResolver(wib, WithNow(fixedNow(wednesday())))
		got, err := r.ResolveDate("someday")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "2026-01-07" {
			t.Errorf("got %s, want today", got)
		}
	})

	t.Run("strict returns error", func(t *testing.T) {
		r := NewResolver(wib, WithNow(fixedNow(wednesday())), WithStrictWeekday(true))
		_, err := r.ResolveDate("someday")
		if !errors.Is(err, ErrUnknownWeekday) {
			t.Errorf("expected ErrUnknownWeekday, got %v", err)
		}
	})
}

func TestNextDate_PrefersServerDate(t *testing.T) {
	r := NewResolver(wib, WithNow(fixedNow(wednesday())), WithStrictWeekday(true))

	for _, hari := range []string{"monday", "rabu", "not-a-day", ""} {
		got, err := r.NextDate(Slot{Hari: hari, NextDate: "2026-03-02"})
		if err != nil {
			t.Fatalf("NextDate(hari=%q): %v", hari, err)
		}
		if got != "2026-03-02" {
			t.Errorf("NextDate(hari=%q) = %s, want 2026-03-02", hari, got)
		}
	}
}
