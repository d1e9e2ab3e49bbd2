package counselingsvc

import (
	"github.com/polijecare/polijecare_web/internal/counseling"
)

// Counseling is a booked session as the API lists it.
type Counseling struct {
	ID          int64                 `json:"id"`
	ComplaintID int64                 `json:"complaint_id"`
	CounselorID int64                 `json:"counselor_id"`
	Tanggal     string                `json:"tanggal"`
	JamMulai    counseling.TimeOfDay  `json:"jam_mulai"`
	JamSelesai  counseling.TimeOfDay  `json:"jam_selesai"`
	Metode      string                `json:"metode"`
	Lokasi      string                `json:"lokasi"`
	Status      string                `json:"status"`
	Catatan     string                `json:"catatan,omitempty"`
	Counselor   *counseling.Counselor `json:"counselor,omitempty"`
}

// View carries the tracker rendered for the row's status.
type View struct {
	Counseling
	Tracker counseling.Tracker `json:"tracker"`
}

func (c Counseling) View() View {
	return View{Counseling: c, Tracker: counseling.Track(c.Status)}
}

type SelectRequest struct {
	ScheduleID  int64 `json:"schedule_id" validate:"required,gt=0"`
	CounselorID int64 `json:"counselor_id" validate:"required,gt=0"`
}

// Selection is the booking state of a session as the confirm page shows it.
type Selection struct {
	SelectedScheduleID int64                `json:"selected_schedule_id,omitempty"`
	CounselorID        int64                `json:"counselor_id,omitempty"`
	CreatedComplaintID int64                `json:"created_complaint_id,omitempty"`
	JenisPengaduan     string               `json:"jenis_pengaduan,omitempty"`
	Slot               *counseling.SlotView `json:"slot,omitempty"`
	CanSubmit          bool                 `json:"can_submit"`
}

// Status combines the pending selection with the latest booked counseling.
type Status struct {
	Selection Selection          `json:"selection"`
	Latest    *View              `json:"latest,omitempty"`
	Tracker   counseling.Tracker `json:"tracker"`
}

// Confirmation answers a successful booking. The client redirects to
// Redirect after RedirectAfterMs.
type Confirmation struct {
	Booking         counseling.Booking `json:"booking"`
	Redirect        string             `json:"redirect"`
	RedirectAfterMs int64              `json:"redirect_after_ms"`
}

type StatusUpdate struct {
	Status  string `json:"status" validate:"required,oneof=pending approved rejected cancelled completed"`
	Catatan string `json:"catatan,omitempty" validate:"max=1000"`
}
