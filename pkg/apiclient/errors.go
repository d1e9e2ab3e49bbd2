package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnauthorized = errors.New("apiclient: unauthorized")
	ErrForbidden    = errors.New("apiclient: forbidden")
	ErrNotFound     = errors.New("apiclient: not found")
	ErrConflict     = errors.New("apiclient: conflict")
	ErrValidation   = errors.New("apiclient: validation failed")
	ErrServer       = errors.New("apiclient: upstream server error")
	ErrUnavailable  = errors.New("apiclient: upstream unreachable")
	ErrNoToken      = errors.New("apiclient: no token available")
)

// Error is a non-2xx answer from the API.
// Fields holds per-field validation messages keyed by field name.
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
	Method  string
	Path    string
}

func (e *Error) Error() string {
	msg := e.Display()
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("apiclient: %s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// Display is the text shown to the user. Field messages win over the
// summary message since they name the actual problem.
func (e *Error) Display() string {
	if joined := e.joinFields(); joined != "" {
		return joined
	}
	return e.Message
}

func (e *Error) joinFields() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msgs []string
	for _, k := range keys {
		for _, m := range e.Fields[k] {
			if m = strings.TrimSpace(m); m != "" {
				msgs = append(msgs, m)
			}
		}
	}
	return strings.Join(msgs, ", ")
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrValidation:
		return e.Status == http.StatusUnprocessableEntity || e.Status == http.StatusBadRequest
	case ErrServer:
		return e.Status >= 500
	}
	return false
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// parseError builds an Error from a response body. Bodies that are not
// JSON leave Message empty.
func parseError(status int, method, path string, body []byte) *Error {
	e := &Error{Status: status, Method: method, Path: path}

	var raw struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return e
	}
	e.Message = raw.Message
	if e.Message == "" {
		e.Message = raw.Error
	}
	e.Fields = decodeFields(raw.Errors)
	return e
}

// decodeFields accepts {"f":["a","b"]}, {"f":"a"} and ["a","b"].
func decodeFields(raw json.RawMessage) map[string][]string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err == nil {
		out := make(map[string][]string, len(generic))
		for k, v := range generic {
			var list []string
			if err := json.Unmarshal(v, &list); err == nil {
				out[k] = list
				continue
			}
			var one string
			if err := json.Unmarshal(v, &one); err == nil {
				out[k] = []string{one}
			}
		}
		return out
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return map[string][]string{"_": list}
	}
	return nil
}
