// Package validate checks form payloads before anything is sent to the API
// and renders failures as Indonesian per-field messages.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used to parse phone numbers written without a country code.
const DefaultRegion = "ID"

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the custom tags registered:
//
//	phone_id  a valid number, national (08...) or international (+62...)
//	date      YYYY-MM-DD
//	hhmm      HH:MM
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("phone_id", func(fl validator.FieldLevel) bool {
			return ValidPhone(fl.Field().String())
		})
		_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("15:04", fl.Field().String())
			return err == nil
		})
		instance = v
	})
	return instance
}

// ValidPhone reports whether s parses as a valid number in DefaultRegion.
func ValidPhone(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	num, err := phonenumbers.Parse(s, DefaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// NormalizePhone formats a valid number as E.164, or returns s unchanged.
func NormalizePhone(s string) string {
	num, err := phonenumbers.Parse(strings.TrimSpace(s), DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return s
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// Error carries per-field messages keyed by the json field name.
type Error struct {
	Fields map[string][]string
}

func (e *Error) Error() string {
	return "validation failed: " + e.Display()
}

// Display joins every field message with ", " in field order.
func (e *Error) Display() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		parts = append(parts, e.Fields[k]...)
	}
	return strings.Join(parts, ", ")
}

// Add appends a message for field.
func (e *Error) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// OrNil returns e when it holds any message.
func (e *Error) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Struct validates s and converts validator failures into *Error.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

var labels = map[string]string{
	"nama_pelapor":         "Nama pelapor",
	"no_hp":                "Nomor HP",
	"email":                "Email",
	"status_pelapor":       "Status pelapor",
	"nama_korban":          "Nama korban",
	"jenis_kelamin_korban": "Jenis kelamin korban",
	"no_hp_korban":         "Nomor HP korban",
	"jenis_pengaduan":      "Jenis pengaduan",
	"tanggal_kejadian":     "Tanggal kejadian",
	"deskripsi":            "Deskripsi",
	"lokasi":               "Lokasi",
	"latitude":             "Latitude",
	"longitude":            "Longitude",
	"name":                 "Nama",
	"nama":                 "Nama",
	"password":             "Kata sandi",
	"role":                 "Peran",
	"nim":                  "NIM",
	"nip":                  "NIP",
	"hari":                 "Hari",
	"jam_mulai":            "Jam mulai",
	"jam_selesai":          "Jam selesai",
	"status":               "Status",
	"subjek":               "Perihal",
	"pesan":                "Pesan",
}

// Label is the human field name used in messages.
func Label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

func message(fe validator.FieldError) string {
	f := Label(fe.Field())
	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return f + " wajib diisi."
	case "email":
		return "Format email tidak valid."
	case "phone_id":
		return f + " tidak valid."
	case "date":
		return f + " harus berformat YYYY-MM-DD."
	case "hhmm":
		return f + " harus berformat JJ:MM."
	case "min":
		return fmt.Sprintf("%s minimal %s karakter.", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter.", f, fe.Param())
	case "gte", "lte":
		return f + " di luar rentang yang diperbolehkan."
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s.", f, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return f + " tidak valid."
	}
}
