package counseling

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []Booking
	err   error
	// block, when set, holds SubmitBooking until closed.
	block chan struct{}
}

func (f *fakeSubmitter) SubmitBooking(_ context.Context, b Booking) error {
	f.mu.Lock()
	f.calls = append(f.calls, b)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.err
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeTimer struct{ stopped bool }

func (t *fakeTimer) Stop() bool { t.stopped = true; return true }

type fakeClock struct {
	now     time.Time
	pending []func()
	delays  []time.Duration
	timers  []*fakeTimer
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.pending = append(c.pending, f)
	c.delays = append(c.delays, d)
	t := &fakeTimer{}
	c.timers = append(c.timers, t)
	return t
}

// fire runs every scheduled callback, as if the delay elapsed.
func (c *fakeClock) fire() {
	for i, f := range c.pending {
		if !c.timers[i].stopped {
			f()
		}
	}
}

type countingNavigator struct {
	routes []string
}

func (n *countingNavigator) Navigate(route string) { n.routes = append(n.routes, route) }

type displayErr struct{ msg string }

func (e displayErr) Error() string   { return "api: " + e.msg }
func (e displayErr) Display() string { return e.msg }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFlow(sub Submitter, clock *fakeClock, nav Navigator) *Flow {
	r := NewResolver(wib, WithNow(clock.Now), WithResolverLogger(quietLogger()))
	return NewFlow(r, sub, FlowConfig{
		Defaults:  BookingDefaults{Method: "offline", Location: "Ruang Konseling"},
		Clock:     clock,
		Navigator: nav,
		Logger:    quietLogger(),
	})
}

func availableSlot() Slot {
	return Slot{
		ID:          7,
		CounselorID: 3,
		Hari:        "senin",
		JamMulai:    ParseTimeOfDay("09:00:00"),
		JamSelesai:  ParseTimeOfDay("10:00:00"),
		IsActive:    true,
		IsBooked:    false,
	}
}

func TestFlow_SelectRejectsUnavailable(t *testing.T) {
	clock := &fakeClock{now: wednesday()}
	f := newTestFlow(&fakeSubmitter{}, clock, nil)

	inactive := availableSlot()
	inactive.IsActive = false
	inactive.IsBooked = true
	if f.Select(inactive) {
		t.Error("inactive slot must not be selectable")
	}

	booked := availableSlot()
	booked.IsBooked = true
	if f.Select(booked) {
		t.Error("booked slot must not be selectable")
	}
	if _, ok := f.Selected(); ok {
		t.Error("selection should still be empty")
	}

	if !f.Select(availableSlot()) {
		t.Fatal("available slot should be selectable")
	}
	if f.Select(booked) {
		t.Error("booked slot replaced a valid selection")
	}
	if s, _ := f.Selected(); s.ID != 7 {
		t.Errorf("selection changed to %d", s.ID)
	}
}

func TestFlow_GuardWithoutComplaint(t *testing.T) {
	clock := &fakeClock{now: wednesday()}
	sub := &fakeSubmitter{}
	f := newTestFlow(sub, clock, nil)

	f.Select(availableSlot())
	if f.CanSubmit() {
		t.Error("CanSubmit without complaint")
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrNoComplaint) {
		t.Errorf("expected ErrNoComplaint, got %v", err)
	}

	g := newTestFlow(sub, clock, nil)
	g.SetComplaint(11, "kekerasan seksual")
	if _, err := g.Submit(context.Background()); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}

	if sub.count() != 0 {
		t.Errorf("guarded submit issued %d requests", sub.count())
	}
}

// Booking a Monday slot on a Wednesday.
func TestFlow_SubmitResolvesWeekday(t *testing.T) {
	clock := &fakeClock{now: wednesday()}
	sub := &fakeSubmitter{}
	f := newTestFlow(sub, clock, nil)

	f.SetComplaint(11, "pelecehan verbal")
	f.Select(availableSlot())

	res, err := f.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sub.count() != 1 {
		t.Fatalf("expected one request, got %d", sub.count())
	}

	want := Booking{
		CounselorID:    3,
		ComplaintID:    11,
		JenisPengaduan: "pelecehan verbal",
		Tanggal:        "2026-01-12",
		JamMulai:       "09:00",
		JamSelesai:     "10:00",
		Metode:         "offline",
		Lokasi:         "Ruang Konseling",
	}
	if sub.calls[0] != want {
		t.Errorf("payload = %+v\nwant %+v", sub.calls[0], want)
	}
	if res.Booking != want {
		t.Errorf("result booking = %+v", res.Booking)
	}
}

func TestFlow_SubmitPrefersNextDate(t *testing.T) {
	for _, now := range []time.Time{wednesday(), wednesday().AddDate(0, 0, 3), wednesday().AddDate(0, 0, 5)} {
		clock := &fakeClock{now: now}
		sub := &fakeSubmitter{}
		f := newTestFlow(sub, clock, nil)

		s := availableSlot()
		s.Hari = "monday"
		s.NextDate = "2026-03-02"
		f.SetComplaint(11, "lainnya")
		f.Select(s)

		if _, err := f.Submit(context.Background()); err != nil {
			t.Fatal(err)
		}
		if got := sub.calls[0].Tanggal; got != "2026-03-02" {
			t.Errorf("on %s tanggal = %s, want 2026-03-02", now.Weekday(), got)
		}
	}
}

func TestFlow_FailureSurfacesFieldErrors(t *testing.T) {
	clock := &fakeClock{now: wednesday()}
	sub := &fakeSubmitter{err: displayErr{msg: "field required"}}
	nav := &countingNavigator{}
	f := newTestFlow(sub, clock, nav)

	f.SetComplaint(11, "lainnya")
	f.Select(availableSlot())

	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(f.Err(), "field required") {
		t.Errorf("Err() = %q", f.Err())
	}
	if f.Submitted() {
		t.Error("failed booking marked as submitted")
	}
	if f.State() != StateIdle || !f.CanSubmit() {
		t.Errorf("flow should be back to idle and submittable, state=%v", f.State())
	}
	if len(clock.pending) != 0 {
		t.Error("failure scheduled a navigation")
	}

	sub.err = nil
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if sub.count() != 2 {
		t.Errorf("expected two requests in total, got %d", sub.count())
	}
}

func TestFlow_FailureWithoutMessage(t *testing.T) {
	clock := &fakeClock{now: wednesday()}
	f := newTestFlow(&fakeSubmitter{err: errors.New("connection reset")}, clock, nil)
	f.SetComplaint(11, "lainnya")
	f.Select(availableSlot())

	_, _ = f.Submit(context.Background())
	if f.Err() != FallbackErrorMessage {
		t.Errorf("Err() = %q", f.Err())
	}
}

func TestFlow_SuccessNavigatesOnce(t *testing.T) {
	clock := &fakeClock{now: wednesday()}
	sub := &fakeSubmitter{}
	nav := &countingNavigator{}
	f := newTestFlow(sub, clock, nav)

	f.SetComplaint(11, "lainnya")
	f.Select(availableSlot())

	res, err := f.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !f.Submitted() {
		t.Error("Submitted() should be true")
	}
	if res.Redirect != DefaultHistoryRoute || res.RedirectAfter != 2*time.Second {
		t.Errorf("result = %+v", res)
	}
	if len(clock.delays) != 1 || clock.delays[0] != 2000*time.Millisecond {
		t.Fatalf("scheduled delays = %v", clock.delays)
	}
	if len(nav.routes) != 0 {
		t.Fatal("navigated before the delay elapsed")
	}

	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("second submit: %v", err)
	}
	if f.Select(availableSlot()) {
		t.Error("selection accepted after success")
	}

	clock.fire()
	clock.fire()

	if len(nav.routes) != 1 || nav.routes[0] != "/user/riwayat" {
		t.Errorf("navigations = %v", nav.routes)
	}
	if f.State() != StateNavigated {
		t.Errorf("state = %v", f.State())
	}
	if sub.count() != 1 {
		t.Errorf("requests = %d", sub.count())
	}
}

func TestFlow_CloseCancelsNavigation(t *testing.T) {
	clock := &fakeClock{now: wednesday()}
	nav := &countingNavigator{}
	f := newTestFlow(&fakeSubmitter{}, clock, nav)
	f.SetComplaint(11, "lainnya")
	f.Select(availableSlot())

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	f.Close()
	clock.fire()

	if len(nav.routes) != 0 {
		t.Errorf("navigated after Close: %v", nav.routes)
	}
}

func TestFlow_SingleInFlight(t *testing.T) {
	clock := &fakeClock{now: wednesday()}
	sub := &fakeSubmitter{block: make(chan struct{})}
	f := newTestFlow(sub, clock, nil)
	f.SetComplaint(11, "lainnya")
	f.Select(availableSlot())

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for f.State() != StateSubmitting {
		if time.Now().After(deadline) {
			t.Fatal("first submit never started")
		}
		time.Sleep(time.Millisecond)
	}

	if f.CanSubmit() {
		t.Error("confirm should be disabled while submitting")
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("concurrent submit: %v", err)
	}

	close(sub.block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if sub.count() != 1 {
		t.Errorf("requests = %d", sub.count())
	}
}

func TestFlow_StrictUnknownWeekday(t *testing.T) {
	clock := &fakeClock{now: wednesday()}
	sub := &fakeSubmitter{}
	r := NewResolver(wib, WithNow(clock.Now), WithStrictWeekday(true))
	f := NewFlow(r, sub, FlowConfig{Clock: clock, Logger: quietLogger()})

	s := availableSlot()
	s.Hari = "senen"
	f.SetComplaint(11, "lainnya")
	f.Select(s)

	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrUnknownWeekday) {
		t.Errorf("expected ErrUnknownWeekday, got %v", err)
	}
	if sub.count() != 0 {
		t.Error("request sent for unresolvable date")
	}
	if f.State() != StateIdle {
		t.Errorf("state = %v", f.State())
	}
}
