package counseling

import (
	"encoding/json"
	"strings"
)

// DefaultTime is used whenever a slot arrives without a usable time.
const DefaultTime = "09:00"

// NormalizeTime reduces a bare "HH:MM[:SS]" or an ISO datetime such as
// "2026-01-01T09:30:00.000000Z" to "HH:MM".
func NormalizeTime(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[i+1:]
	}
	if len(s) > 5 {
		s = s[:5]
	}
	if s == "" {
		return DefaultTime
	}
	return s
}

// TimeOfDay is a normalized "HH:MM" value. It is decoded once at the API
// boundary so call sites never deal with the raw shapes.
type TimeOfDay string

func ParseTimeOfDay(raw string) TimeOfDay {
	return TimeOfDay(NormalizeTime(raw))
}

func (t TimeOfDay) String() string {
	if t == "" {
		return DefaultTime
	}
	return string(t)
}

// Minutes since midnight, or -1 when the value is not a clock time.
func (t TimeOfDay) Minutes() int {
	s := t.String()
	if len(s) != 5 || s[2] != ':' {
		return -1
	}
	h, m := atoi2(s[0:2]), atoi2(s[3:5])
	if h < 0 || m < 0 || h > 23 || m > 59 {
		return -1
	}
	return h*60 + m
}

func atoi2(s string) int {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return -1
	}
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = DefaultTime
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = ParseTimeOfDay(s)
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
