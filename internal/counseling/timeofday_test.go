package counseling

import (
	"encoding/json"
	"testing"
)

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-01-01T09:30:00.000000Z", "09:30"},
		{"14:05:00", "14:05"},
		{"14:05", "14:05"},
		{"9:00", "9:00"},
		{"", "09:00"},
		{"T", "09:00"},
		{"1970-01-01T23:59:59+07:00", "23:59"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeTime(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeTime(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := NormalizeTime(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestTimeOfDay_JSON(t *testing.T) {
	var s struct {
		Start TimeOfDay `json:"start"`
		End   TimeOfDay `json:"end"`
		Null  TimeOfDay `json:"null"`
		Gone  TimeOfDay `json:"gone"`
	}
	body := `{"start":"2026-01-01T09:30:00.000000Z","end":"10:00:00","null":null}`
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatal(err)
	}
	if s.Start.String() != "09:30" || s.End.String() != "10:00" {
		t.Errorf("got %s-%s", s.Start, s.End)
	}
	if s.Null.String() != DefaultTime || s.Gone.String() != DefaultTime {
		t.Errorf("missing values should default, got %q and %q", s.Null, s.Gone)
	}

	out, err := json.Marshal(s.Gone)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"09:00"` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestTimeOfDay_Minutes(t *testing.T) {
	if got := TimeOfDay("09:30").Minutes(); got != 570 {
		t.Errorf("Minutes() = %d, want 570", got)
	}
	if got := TimeOfDay("9:00").Minutes(); got != -1 {
		t.Errorf("Minutes() of short value = %d, want -1", got)
	}
	if got := TimeOfDay("").Minutes(); got != 540 {
		t.Errorf("Minutes() of zero value = %d, want 540", got)
	}
}
