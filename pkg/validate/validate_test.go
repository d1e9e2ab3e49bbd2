package validate

import (
	"errors"
	"strings"
	"testing"
)

type form struct {
	Name     string  `json:"name" validate:"required,max=10"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"no_hp" validate:"required,phone_id"`
	Tanggal  string  `json:"tanggal_kejadian" validate:"required,date"`
	Status   string  `json:"status_pelapor" validate:"required,oneof=mahasiswa dosen"`
	JamMulai string  `json:"jam_mulai" validate:"required,hhmm"`
	Ignored  string  `json:"-"`
	Latitude float64 `json:"latitude" validate:"gte=-90,lte=90"`
}

func valid() form {
	return form{
		Name:     "Sari",
		Email:    "sari@polije.ac.id",
		Phone:    "081234567890",
		Tanggal:  "2026-01-05",
		Status:   "mahasiswa",
		JamMulai: "09:00",
	}
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*form)
		field string
		want  string
	}{
		{"ok", func(*form) {}, "", ""},
		{"missing name", func(f *form) { f.Name = "" }, "name", "Nama wajib diisi."},
		{"bad email", func(f *form) { f.Email = "x" }, "email", "Format email tidak valid."},
		{"bad phone", func(f *form) { f.Phone = "12" }, "no_hp", "Nomor HP tidak valid."},
		{"bad date", func(f *form) { f.Tanggal = "05/01/2026" }, "tanggal_kejadian", "Tanggal kejadian harus berformat YYYY-MM-DD."},
		{"oneof", func(f *form) { f.Status = "alien" }, "status_pelapor", "Status pelapor harus salah satu dari: mahasiswa, dosen."},
		{"bad time", func(f *form) { f.JamMulai = "9am" }, "jam_mulai", "Jam mulai harus berformat JJ:MM."},
		{"latitude", func(f *form) { f.Latitude = 91 }, "latitude", "Latitude di luar rentang yang diperbolehkan."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mut(&f)
			err := Struct(f)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if got := verr.Fields[tt.field]; len(got) == 0 || got[0] != tt.want {
				t.Errorf("Fields[%s] = %v, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestError_Display(t *testing.T) {
	e := &Error{}
	e.Add("no_hp", "Nomor HP tidak valid.")
	e.Add("email", "Format email tidak valid.")
	if got := e.Display(); got != "Format email tidak valid., Nomor HP tidak valid." {
		t.Errorf("Display() = %q", got)
	}
	if !strings.HasPrefix(e.Error(), "validation failed") {
		t.Errorf("Error() = %q", e.Error())
	}
	if (&Error{}).OrNil() != nil {
		t.Error("empty error should be nil")
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		e164  string
	}{
		{"081234567890", true, "+6281234567890"},
		{"+62 812-3456-7890", true, "+6281234567890"},
		{"0812", false, "0812"},
		{"", false, ""},
	}
	for _, tt := range tests {
		if got := ValidPhone(tt.in); got != tt.valid {
			t.Errorf("ValidPhone(%q) = %v", tt.in, got)
		}
		if got := NormalizePhone(tt.in); got != tt.e164 {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.e164)
		}
	}
}
