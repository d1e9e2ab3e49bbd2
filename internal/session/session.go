// Package session keeps BFF sessions in Redis: the signed-in user, the
// sealed upstream API token, and the in-progress counseling selection.
package session

import (
	"time"

	"github.com/google/uuid"
)

// User is the account the API returned at login.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// BookingState is the per-session selection held between "select a slot"
// and "confirm".
type BookingState struct {
	SelectedScheduleID int64  `json:"selected_schedule_id,omitempty"`
	CounselorID        int64  `json:"counselor_id,omitempty"`
	CreatedComplaintID int64  `json:"created_complaint_id,omitempty"`
	JenisPengaduan     string `json:"jenis_pengaduan,omitempty"`
	// IdempotencyKey is sent with every confirmation of the current
	// selection and renewed when another slot is selected.
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (b BookingState) HasSelection() bool { return b.SelectedScheduleID != 0 }
func (b BookingState) HasComplaint() bool { return b.CreatedComplaintID != 0 }

type Session struct {
	ID        uuid.UUID `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`

	// Token is the plaintext upstream token. Only the sealed form is stored.
	Token string `json:"-"`
	// SealedToken is Token encrypted with the store's Sealer.
	SealedToken string `json:"sealed_token"`
}
