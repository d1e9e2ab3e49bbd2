package counseling

import "errors"

var (
	ErrUnknownWeekday   = errors.New("unknown weekday name")
	ErrSlotUnavailable  = errors.New("schedule slot is not available")
	ErrNoSelection      = errors.New("no schedule selected")
	ErrNoComplaint      = errors.New("no complaint to attach the booking to")
	ErrSubmitInFlight   = errors.New("booking submission already in progress")
	ErrAlreadySubmitted = errors.New("booking already submitted")
)

// FallbackErrorMessage is shown when a failed submission carries no
// readable message.
const FallbackErrorMessage = "Gagal mengajukan jadwal konseling. Silakan coba lagi."

// displayer is satisfied by upstream API errors that know how to render
// themselves for the user.
type displayer interface {
	Display() string
}

// DisplayError turns a submission error into the text shown to the user.
func DisplayError(err error) string {
	if err == nil {
		return ""
	}
	var d displayer
	if errors.As(err, &d) {
		if msg := d.Display(); msg != "" {
			return msg
		}
	}
	return FallbackErrorMessage
}
