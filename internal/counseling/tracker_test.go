package counseling

import "testing"

func TestStageOf(t *testing.T) {
	tests := []struct {
		status string
		want   Stage
		label  string
	}{
		{"pending", StagePending, "Menunggu"},
		{"approved", StageApproved, "Disetujui"},
		{"rejected", StageReschedule, "Dijadwalkan Ulang"},
		{"cancelled", StageReschedule, "Dijadwalkan Ulang"},
		{"Completed", StageCompleted, "Selesai"},
		{"", StageNone, ""},
		{"diproses", StageNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := StageOf(tt.status)
			if got != tt.want {
				t.Errorf("StageOf(%q) = %d, want %d", tt.status, got, tt.want)
			}
			if got.Label() != tt.label {
				t.Errorf("label = %q, want %q", got.Label(), tt.label)
			}
		})
	}
}

func TestTrack(t *testing.T) {
	tr := Track("approved")
	if tr.Empty {
		t.Fatal("approved should render the tracker")
	}
	if len(tr.Steps) != 4 {
		t.Fatalf("got %d steps", len(tr.Steps))
	}
	if !tr.Steps[0].Done || tr.Steps[1].Done || !tr.Steps[1].Current || tr.Steps[2].Current {
		t.Errorf("unexpected steps: %+v", tr.Steps)
	}

	empty := Track("unknown")
	if !empty.Empty || empty.Placeholder != EmptyTrackerMessage || empty.Steps != nil {
		t.Errorf("unknown status should render the placeholder, got %+v", empty)
	}
}
