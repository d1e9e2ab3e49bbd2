package counseling

import (
	"cmp"
	"slices"
)

// Slot is one recurring weekly availability window of a counselor.
type Slot struct {
	ID          int64      `json:"id"`
	CounselorID int64      `json:"counselor_id"`
	Hari        string     `json:"hari"`
	JamMulai    TimeOfDay  `json:"jam_mulai"`
	JamSelesai  TimeOfDay  `json:"jam_selesai"`
	IsActive    Flag       `json:"is_active"`
	IsBooked    Flag       `json:"is_booked"`
	NextDate    string     `json:"next_date,omitempty"`
	Counselor   *Counselor `json:"counselor,omitempty"`
}

type Counselor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s Slot) Availability() Availability {
	return Classify(bool(s.IsActive), bool(s.IsBooked))
}

func (s Slot) Selectable() bool { return s.Availability().Selectable() }

// FindSlot returns the slot with the given id.
func FindSlot(slots []Slot, id int64) (Slot, bool) {
	i := slices.IndexFunc(slots, func(s Slot) bool { return s.ID == id })
	if i < 0 {
		return Slot{}, false
	}
	return slots[i], true
}

// SortSlots orders slots Monday first, then by start time. Unknown day
// names sort last.
func SortSlots(slots []Slot) {
	rank := func(s Slot) int {
		d, ok := ParseWeekday(s.Hari)
		if !ok {
			return 7
		}
		return (int(d) + 6) % 7
	}
	slices.SortStableFunc(slots, func(a, b Slot) int {
		if c := cmp.Compare(rank(a), rank(b)); c != 0 {
			return c
		}
		return cmp.Compare(a.JamMulai.Minutes(), b.JamMulai.Minutes())
	})
}

// SlotView is a slot decorated with everything a schedule table renders.
type SlotView struct {
	Slot
	Day          string       `json:"day"`
	Tanggal      string       `json:"tanggal,omitempty"`
	Availability Availability `json:"availability"`
	Label        string       `json:"label"`
	Color        string       `json:"color"`
	Selectable   bool         `json:"selectable"`
}

// View builds the display row for s. Tanggal stays empty when the day name
// cannot be resolved in strict mode.
func (r *Resolver) View(s Slot) SlotView {
	a := s.Availability()
	v := SlotView{
		Slot:         s,
		Day:          s.Hari,
		Availability: a,
		Label:        a.Label(),
		Color:        a.Color(),
		Selectable:   a.Selectable(),
	}
	if d, ok := ParseWeekday(s.Hari); ok {
		v.Day = DayName(d)
	}
	if t, err := r.NextDate(s); err == nil {
		v.Tanggal = t
	}
	return v
}

// Booking is the payload of POST /user/counselings.
type Booking struct {
	CounselorID    int64  `json:"counselor_id"`
	ComplaintID    int64  `json:"complaint_id"`
	JenisPengaduan string `json:"jenis_pengaduan"`
	Tanggal        string `json:"tanggal"`
	JamMulai       string `json:"jam_mulai"`
	JamSelesai     string `json:"jam_selesai"`
	Metode         string `json:"metode"`
	Lokasi         string `json:"lokasi"`
}

// BookingDefaults are the deployment constants stamped onto every booking.
type BookingDefaults struct {
	Method   string
	Location string
}

const DefaultMethod = "offline"

// BuildBooking assembles the booking payload for a slot and complaint.
func (r *Resolver) BuildBooking(s Slot, complaintID int64, jenisPengaduan string, d BookingDefaults) (Booking, error) {
	tanggal, err := r.NextDate(s)
	if err != nil {
		return Booking{}, err
	}
	method := d.Method
	if method == "" {
		method = DefaultMethod
	}
	return Booking{
		CounselorID:    s.CounselorID,
		ComplaintID:    complaintID,
		JenisPengaduan: jenisPengaduan,
		Tanggal:        tanggal,
		JamMulai:       s.JamMulai.String(),
		JamSelesai:     s.JamSelesai.String(),
		Metode:         method,
		Lokasi:         d.Location,
	}, nil
}
