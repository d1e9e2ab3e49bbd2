package counseling

import "strings"

// Stage is the position of a counseling in the four-step tracker.
type Stage int

const (
	StageNone Stage = iota - 1
	StagePending
	StageApproved
	StageReschedule
	StageCompleted
)

const EmptyTrackerMessage = "Belum ada jadwal konseling"

var stageLabels = [...]string{
	StagePending:    "Menunggu",
	StageApproved:   "Disetujui",
	StageReschedule: "Dijadwalkan Ulang",
	StageCompleted:  "Selesai",
}

// StageOf maps a raw API status to its tracker stage.
func StageOf(status string) Stage {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending":
		return StagePending
	case "approved":
		return StageApproved
	case "rejected", "cancelled":
		return StageReschedule
	case "completed":
		return StageCompleted
	default:
		return StageNone
	}
}

func (s Stage) Label() string {
	if s < StagePending || s > StageCompleted {
		return ""
	}
	return stageLabels[s]
}

type Step struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Done    bool   `json:"done"`
	Current bool   `json:"current"`
}

// Tracker is the rendered progress indicator. When Empty is set, the
// placeholder is shown instead of the steps.
type Tracker struct {
	Status      string `json:"status"`
	Stage       Stage  `json:"stage"`
	Label       string `json:"label,omitempty"`
	Steps       []Step `json:"steps,omitempty"`
	Empty       bool   `json:"empty"`
	Placeholder string `json:"placeholder,omitempty"`
}

func Track(status string) Tracker {
	stage := StageOf(status)
	t := Tracker{Status: status, Stage: stage}
	if stage == StageNone {
		t.Empty = true
		t.Placeholder = EmptyTrackerMessage
		return t
	}
	t.Label = stage.Label()
	t.Steps = make([]Step, 0, len(stageLabels))
	for i, label := range stageLabels {
		t.Steps = append(t.Steps, Step{
			Index:   i,
			Label:   label,
			Done:    Stage(i) < stage,
			Current: Stage(i) == stage,
		})
	}
	return t
}
