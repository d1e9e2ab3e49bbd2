package counseling

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var weekdays = map[string]time.Weekday{
	"minggu": time.Sunday,
	"senin":  time.Monday,
	"selasa": time.Tuesday,
	"rabu":   time.Wednesday,
	"kamis":  time.Thursday,
	"jumat":  time.Friday,
	"jum'at": time.Friday,
	"sabtu":  time.Saturday,

	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var indonesianDays = [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// ParseWeekday maps an Indonesian or English day name, in any case, to a
// time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// DayName returns the Indonesian display name of d.
func DayName(d time.Weekday) string {
	return indonesianDays[d%7]
}

// NextOccurrence returns the calendar date of the next target weekday
// strictly after the local date of now. A target equal to today's weekday
// resolves to one week out.
func NextOccurrence(target time.Weekday, now time.Time) time.Time {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	diff := int(target) - int(today.Weekday())
	if diff <= 0 {
		diff += 7
	}
	return today.AddDate(0, 0, diff)
}

// Resolver turns recurring weekday names into concrete booking dates in a
// fixed local time zone.
type Resolver struct {
	loc    *time.Location
	now    func() time.Time
	strict bool
	log    *slog.Logger
}

type ResolverOption func(*Resolver)

// WithStrictWeekday makes unknown day names an error instead of
// resolving to today.
func WithStrictWeekday(strict bool) ResolverOption {
	return func(r *Resolver) { r.strict = strict }
}

func WithNow(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.log = l }
}

func NewResolver(loc *time.Location, opts ...ResolverOption) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	r := &Resolver{loc: loc, now: time.Now, log: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Resolver) Location() *time.Location { return r.loc }

// Today is the local calendar date, formatted as YYYY-MM-DD.
func (r *Resolver) Today() string {
	return r.now().In(r.loc).Format(DateLayout)
}

// ResolveDate returns the next date for the day name hari.
func (r *Resolver) ResolveDate(hari string) (string, error) {
	target, ok := ParseWeekday(hari)
	if !ok {
		if r.strict {
			return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, hari)
		}
		today := r.Today()
		r.log.Warn("unrecognized weekday, falling back to today",
			"hari", hari,
			"tanggal", today,
		)
		return today, nil
	}
	return NextOccurrence(target, r.now().In(r.loc)).Format(DateLayout), nil
}

// NextDate returns the booking date for a slot. A server-computed next_date
// always wins over local resolution.
func (r *Resolver) NextDate(s Slot) (string, error) {
	if nd := strings.TrimSpace(s.NextDate); nd != "" {
		return nd, nil
	}
	return r.ResolveDate(s.Hari)
}
