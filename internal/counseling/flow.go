package counseling

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultHistoryRoute is where the user lands after a confirmed booking.
const (
	DefaultHistoryRoute  = "/user/riwayat"
	DefaultNavigateDelay = 2 * time.Second
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateNavigated
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "success"
	case StateNavigated:
		return "navigated"
	default:
		return "idle"
	}
}

// Submitter posts a booking to the API.
type Submitter interface {
	SubmitBooking(ctx context.Context, b Booking) error
}

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(route string)
}

type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

type Timer interface {
	Stop() bool
}

// Clock abstracts time for the delayed redirect.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

func SystemClock() Clock { return systemClock{} }

type FlowConfig struct {
	Defaults      BookingDefaults
	HistoryRoute  string
	NavigateDelay time.Duration
	Clock         Clock
	// Navigator is optional; without one the caller performs the redirect
	// itself using the returned Result.
	Navigator Navigator
	Logger    *slog.Logger
}

// Result describes a successful submission.
type Result struct {
	Booking       Booking
	Redirect      string
	RedirectAfter time.Duration
}

// Flow drives one booking: select a slot, attach the complaint, confirm.
// It allows a single request in flight and becomes terminal on success.
type Flow struct {
	resolver  *Resolver
	submitter Submitter
	cfg       FlowConfig

	mu          sync.Mutex
	state       State
	selected    *Slot
	complaintID int64
	jenis       string
	lastErr     string

	navOnce sync.Once
	timer   Timer
}

func NewFlow(resolver *Resolver, submitter Submitter, cfg FlowConfig) *Flow {
	if cfg.HistoryRoute == "" {
		cfg.HistoryRoute = DefaultHistoryRoute
	}
	if cfg.NavigateDelay <= 0 {
		cfg.NavigateDelay = DefaultNavigateDelay
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Flow{resolver: resolver, submitter: submitter, cfg: cfg}
}

// SetComplaint records the id returned by complaint creation.
func (f *Flow) SetComplaint(id int64, jenisPengaduan string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.complaintID = id
	f.jenis = jenisPengaduan
}

// Select picks a slot. Slots that are not available are ignored and the
// previous selection is kept.
func (f *Flow) Select(s Slot) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle || !s.Selectable() {
		return false
	}
	f.selected = &s
	f.lastErr = ""
	return true
}

func (f *Flow) Selected() (Slot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return Slot{}, false
	}
	return *f.selected, true
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submitted reports whether the booking reached the terminal state.
func (f *Flow) Submitted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateSucceeded || f.state == StateNavigated
}

// CanSubmit mirrors the enabled state of the confirm control.
func (f *Flow) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateIdle && f.selected != nil && f.complaintID != 0
}

// Err is the message of the last failed submission.
func (f *Flow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Submit issues exactly one booking request. Without a selection or a
// complaint it returns immediately and nothing is sent.
func (f *Flow) Submit(ctx context.Context) (Result, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return Result{}, ErrSubmitInFlight
	case StateSucceeded, StateNavigated:
		f.mu.Unlock()
		return Result{}, ErrAlreadySubmitted
	}
	if f.selected == nil {
		f.mu.Unlock()
		return Result{}, ErrNoSelection
	}
	if f.complaintID == 0 {
		f.mu.Unlock()
		return Result{}, ErrNoComplaint
	}

	booking, err := f.resolver.BuildBooking(*f.selected, f.complaintID, f.jenis, f.cfg.Defaults)
	if err != nil {
		f.lastErr = err.Error()
		f.mu.Unlock()
		return Result{}, fmt.Errorf("build booking: %w", err)
	}
	f.state = StateSubmitting
	f.lastErr = ""
	f.mu.Unlock()

	err = f.submitter.SubmitBooking(ctx, booking)

	f.mu.Lock()
	if err != nil {
		f.state = StateIdle
		f.lastErr = DisplayError(err)
		f.mu.Unlock()
		f.cfg.Logger.Warn("counseling booking failed",
			"complaint_id", booking.ComplaintID,
			"counselor_id", booking.CounselorID,
			"tanggal", booking.Tanggal,
			"error", err,
		)
		return Result{}, err
	}
	f.state = StateSucceeded
	f.mu.Unlock()

	f.cfg.Logger.Info("counseling booking submitted",
		"complaint_id", booking.ComplaintID,
		"counselor_id", booking.CounselorID,
		"tanggal", booking.Tanggal,
	)
	if f.cfg.Navigator != nil {
		t := f.cfg.Clock.AfterFunc(f.cfg.NavigateDelay, f.navigate)
		f.mu.Lock()
		f.timer = t
		f.mu.Unlock()
	}
	return Result{
		Booking:       booking,
		Redirect:      f.cfg.HistoryRoute,
		RedirectAfter: f.cfg.NavigateDelay,
	}, nil
}

func (f *Flow) navigate() {
	f.navOnce.Do(func() {
		f.mu.Lock()
		f.state = StateNavigated
		f.mu.Unlock()
		f.cfg.Navigator.Navigate(f.cfg.HistoryRoute)
	})
}

// Close cancels a pending redirect.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
}
