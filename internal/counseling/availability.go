package counseling

import "encoding/json"

// Availability is the exclusive UI state of a slot.
type Availability int

const (
	Inactive Availability = iota
	Available
	Booked
)

// Classify derives the availability of a slot. Booked takes precedence
// over the active flag.
func Classify(isActive, isBooked bool) Availability {
	switch {
	case isBooked:
		return Booked
	case isActive:
		return Available
	default:
		return Inactive
	}
}

func (a Availability) Selectable() bool { return a == Available }

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Booked:
		return "booked"
	default:
		return "inactive"
	}
}

func (a Availability) Label() string {
	switch a {
	case Available:
		return "Tersedia"
	case Booked:
		return "Sudah Dipesan"
	default:
		return "Tidak Aktif"
	}
}

func (a Availability) Color() string {
	switch a {
	case Available:
		return "green"
	case Booked:
		return "red"
	default:
		return "gray"
	}
}

func (a Availability) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Flag decodes the boolean columns of the API, which arrive as JSON
// booleans, 0/1 numbers or "0"/"1" strings depending on the endpoint.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "true", "1", `"1"`, `"true"`:
		*f = true
		return nil
	case "false", "0", `"0"`, `"false"`, "null", `""`:
		*f = false
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Flag(v)
	return nil
}
