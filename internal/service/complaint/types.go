package complaint

import "strings"

type Status string

const (
	StatusPending  Status = "pending"
	StatusDiproses Status = "diproses"
	StatusSelesai  Status = "selesai"
	StatusDitolak  Status = "ditolak"
)

var statusLabels = map[Status]string{
	StatusPending:  "Menunggu",
	StatusDiproses: "Diproses",
	StatusSelesai:  "Selesai",
	StatusDitolak:  "Ditolak",
}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	_, ok := statusLabels[st]
	return st, ok
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Complaint is a report as the API lists it.
type Complaint struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"user_id,omitempty"`
	NamaPelapor        string  `json:"nama_pelapor"`
	NoHP               string  `json:"no_hp"`
	Email              string  `json:"email"`
	StatusPelapor      string  `json:"status_pelapor"`
	NamaKorban         string  `json:"nama_korban"`
	JenisKelaminKorban string  `json:"jenis_kelamin_korban"`
	NoHPKorban         string  `json:"no_hp_korban,omitempty"`
	JenisPengaduan     string  `json:"jenis_pengaduan"`
	TanggalKejadian    string  `json:"tanggal_kejadian"`
	Deskripsi          string  `json:"deskripsi"`
	Lokasi             string  `json:"lokasi"`
	Latitude           float64 `json:"latitude,omitempty"`
	Longitude          float64 `json:"longitude,omitempty"`
	Lampiran           string  `json:"lampiran,omitempty"`
	Status             Status  `json:"status"`
	Catatan            string  `json:"catatan,omitempty"`
	CreatedAt          string  `json:"created_at,omitempty"`
}

// View adds the display label of the status.
type View struct {
	Complaint
	StatusLabel string `json:"status_label"`
}

func (c Complaint) View() View {
	return View{Complaint: c, StatusLabel: c.Status.Label()}
}
