// Package complaint validates and submits incident reports and serves the
// complaint lists of reporters and operators.
package complaint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

// MaxAttachmentBytes bounds uploaded evidence files.
const MaxAttachmentBytes = 5 << 20

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// SubmitRequest is the multi-section report form.
type SubmitRequest struct {
	// Reporter
	NamaPelapor   string `json:"nama_pelapor" form:"nama_pelapor" validate:"required,max=100"`
	NoHP          string `json:"no_hp" form:"no_hp" validate:"required,phone_id"`
	Email         string `json:"email" form:"email" validate:"required,email"`
	StatusPelapor string `json:"status_pelapor" form:"status_pelapor" validate:"required,oneof=mahasiswa dosen tendik umum"`

	// Victim
	NamaKorban         string `json:"nama_korban" form:"nama_korban" validate:"required,max=100"`
	JenisKelaminKorban string `json:"jenis_kelamin_korban" form:"jenis_kelamin_korban" validate:"required,oneof=laki-laki perempuan"`
	NoHPKorban         string `json:"no_hp_korban" form:"no_hp_korban" validate:"omitempty,phone_id"`

	// Incident
	JenisPengaduan  string `json:"jenis_pengaduan" form:"jenis_pengaduan" validate:"required,max=100"`
	TanggalKejadian string `json:"tanggal_kejadian" form:"tanggal_kejadian" validate:"required,date"`
	Deskripsi       string `json:"deskripsi" form:"deskripsi" validate:"required,min=10"`

	// Location
	Lokasi    string  `json:"lokasi" form:"lokasi" validate:"required"`
	Latitude  float64 `json:"latitude" form:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" form:"longitude" validate:"gte=-180,lte=180"`
}

func (r *SubmitRequest) normalize() {
	for _, p := range []*string{
		&r.NamaPelapor, &r.NoHP, &r.Email, &r.NamaKorban, &r.NoHPKorban,
		&r.JenisPengaduan, &r.TanggalKejadian, &r.Deskripsi, &r.Lokasi,
	} {
		*p = strings.TrimSpace(*p)
	}
	r.StatusPelapor = strings.ToLower(strings.TrimSpace(r.StatusPelapor))
	r.JenisKelaminKorban = strings.ToLower(strings.TrimSpace(r.JenisKelaminKorban))
}

func (r SubmitRequest) fields() map[string]string {
	f := map[string]string{
		"nama_pelapor":         r.NamaPelapor,
		"no_hp":                r.NoHP,
		"email":                r.Email,
		"status_pelapor":       r.StatusPelapor,
		"nama_korban":          r.NamaKorban,
		"jenis_kelamin_korban": r.JenisKelaminKorban,
		"jenis_pengaduan":      r.JenisPengaduan,
		"tanggal_kejadian":     r.TanggalKejadian,
		"deskripsi":            r.Deskripsi,
		"lokasi":               r.Lokasi,
		"latitude":             strconv.FormatFloat(r.Latitude, 'f', -1, 64),
		"longitude":            strconv.FormatFloat(r.Longitude, 'f', -1, 64),
	}
	if r.NoHPKorban != "" {
		f["no_hp_korban"] = r.NoHPKorban
	}
	return f
}

// Attachment is the optional evidence file.
type Attachment struct {
	Name    string
	Size    int64
	Content io.Reader
}

type UpdateRequest struct {
	Status  string `json:"status" validate:"required,oneof=pending diproses selesai ditolak"`
	Catatan string `json:"catatan,omitempty" validate:"max=1000"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Submit validates the form locally and creates the report. It returns
	// the id the booking flow attaches to the counseling request.
	Submit(ctx context.Context, req SubmitRequest, file *Attachment) (int64, error)
	History(ctx context.Context, p apiclient.ListParams) (apiclient.Page[View], error)

	// Operator
	List(ctx context.Context, p apiclient.ListParams) (apiclient.Page[View], error)
	Get(ctx context.Context, id int64) (View, error)
	Update(ctx context.Context, id int64, req UpdateRequest) error
	Delete(ctx context.Context, id int64) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type complaintService struct {
	api *apiclient.Client
}

func New(api *apiclient.Client) Service {
	return &complaintService{api: api}
}

func (s *complaintService) Submit(ctx context.Context, req SubmitRequest, file *Attachment) (int64, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return 0, err
	}
	if file != nil && file.Size > MaxAttachmentBytes {
		return 0, ErrAttachmentLarge
	}

	var env apiclient.Envelope[apiclient.Created]
	var err error
	if file != nil {
		err = s.api.PostMultipart(ctx, "/user/reports", req.fields(),
			&apiclient.File{Field: "lampiran", Name: file.Name, Content: file.Content}, &env)
	} else {
		err = s.api.Post(ctx, "/user/reports", req, &env)
	}
	if err != nil {
		return 0, fmt.Errorf("submit complaint: %w", err)
	}
	if env.Data.ID == 0 {
		return 0, ErrNoID
	}
	return env.Data.ID, nil
}

func (s *complaintService) History(ctx context.Context, p apiclient.ListParams) (apiclient.Page[View], error) {
	return s.list(ctx, "/user/reports", p)
}

func (s *complaintService) List(ctx context.Context, p apiclient.ListParams) (apiclient.Page[View], error) {
	return s.list(ctx, "/operator/reports", p)
}

func (s *complaintService) list(ctx context.Context, path string, p apiclient.ListParams) (apiclient.Page[View], error) {
	if p.Status != "" {
		st, ok := ParseStatus(p.Status)
		if !ok {
			return apiclient.Page[View]{}, ErrInvalidStatus
		}
		p.Status = string(st)
	}
	var env apiclient.Envelope[apiclient.Page[Complaint]]
	if err := s.api.Get(ctx, path, &env, p.Query()); err != nil {
		return apiclient.Page[View]{}, fmt.Errorf("list complaints: %w", err)
	}
	out := apiclient.Page[View]{Meta: env.Data.Meta, Items: make([]View, 0, len(env.Data.Items))}
	for _, c := range env.Data.Items {
		out.Items = append(out.Items, c.View())
	}
	return out, nil
}

func (s *complaintService) Get(ctx context.Context, id int64) (View, error) {
	var env apiclient.Envelope[Complaint]
	if err := s.api.Get(ctx, reportPath(id), &env); err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, fmt.Errorf("get complaint: %w", err)
	}
	return env.Data.View(), nil
}

func (s *complaintService) Update(ctx context.Context, id int64, req UpdateRequest) error {
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := s.api.Put(ctx, reportPath(id), req, nil); err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update complaint: %w", err)
	}
	return nil
}

func (s *complaintService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, reportPath(id), nil); err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete complaint: %w", err)
	}
	return nil
}

func reportPath(id int64) string {
	return "/operator/reports/" + strconv.FormatInt(id, 10)
}
