// Package counselingsvc runs the counseling booking flow for BFF sessions
// and serves counseling histories with their status tracker.
package counselingsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/internal/counseling"
	"github.com/polijecare/polijecare_web/internal/service/schedule"
	"github.com/polijecare/polijecare_web/internal/session"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/reqctx"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

// ---------------------------------------------------------------------------
// Submitter
// ---------------------------------------------------------------------------

type idempotencyKey struct{}

// withIdempotencyKey attaches the key the next booking submission sends.
func withIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey{}, key)
}

// BookingSubmitter posts bookings to the API with an Idempotency-Key. The
// key comes from the context so retries of one selection resend the same
// key; without one a fresh key is used.
type BookingSubmitter struct {
	api *apiclient.Client
}

func NewSubmitter(api *apiclient.Client) *BookingSubmitter {
	return &BookingSubmitter{api: api}
}

func (b *BookingSubmitter) SubmitBooking(ctx context.Context, booking counseling.Booking) error {
	key, _ := ctx.Value(idempotencyKey{}).(string)
	if key == "" {
		key = uuid.NewString()
	}
	return b.api.Post(ctx, "/user/counselings", booking, nil, apiclient.WithIdempotencyKey(key))
}

// FlowConfig maps the counseling config section onto flow settings.
func FlowConfig(cfg *config.Config) counseling.FlowConfig {
	return counseling.FlowConfig{
		Defaults: counseling.BookingDefaults{
			Method:   cfg.Counseling.Method,
			Location: cfg.Counseling.Location,
		},
		HistoryRoute:  cfg.Counseling.HistoryRoute,
		NavigateDelay: cfg.NavigateDelay(),
	}
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// AttachComplaint records the complaint a later booking refers to.
	AttachComplaint(ctx context.Context, sessionID uuid.UUID, complaintID int64, jenisPengaduan string) error
	// Select stores an available slot as the session's choice. Unavailable
	// slots leave the previous choice untouched.
	Select(ctx context.Context, sessionID uuid.UUID, req SelectRequest) (Selection, error)
	Status(ctx context.Context, sessionID uuid.UUID) (Status, error)
	// Confirm sends the booking once and clears the selection on success.
	Confirm(ctx context.Context, sessionID uuid.UUID) (Confirmation, error)

	History(ctx context.Context, p apiclient.ListParams) (apiclient.Page[View], error)

	// Konselor
	Assigned(ctx context.Context, p apiclient.ListParams) (apiclient.Page[View], error)
	UpdateStatus(ctx context.Context, id int64, req StatusUpdate) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type counselingService struct {
	api       *apiclient.Client
	sessions  session.Store
	schedules schedule.Service
	resolver  *counseling.Resolver
	submitter counseling.Submitter
	flowCfg   counseling.FlowConfig
}

func New(
	api *apiclient.Client,
	sessions session.Store,
	schedules schedule.Service,
	resolver *counseling.Resolver,
	cfg *config.Config,
) Service {
	return &counselingService{
		api:       api,
		sessions:  sessions,
		schedules: schedules,
		resolver:  resolver,
		submitter: NewSubmitter(api),
		flowCfg:   FlowConfig(cfg),
	}
}

func (s *counselingService) AttachComplaint(ctx context.Context, sid uuid.UUID, complaintID int64, jenis string) error {
	st, err := s.sessions.Booking(ctx, sid)
	if err != nil {
		return err
	}
	st.CreatedComplaintID = complaintID
	st.JenisPengaduan = strings.TrimSpace(jenis)
	return s.sessions.SaveBooking(ctx, sid, st)
}

func (s *counselingService) Select(ctx context.Context, sid uuid.UUID, req SelectRequest) (Selection, error) {
	if err := validate.Struct(req); err != nil {
		return Selection{}, err
	}

	slots, err := s.schedules.ForCounselor(ctx, req.CounselorID)
	if err != nil {
		return Selection{}, err
	}
	slot, ok := counseling.FindSlot(slots, req.ScheduleID)
	if !ok {
		return Selection{}, ErrScheduleNotFound
	}
	if !slot.Selectable() {
		return Selection{}, counseling.ErrSlotUnavailable
	}
	if _, err := s.resolver.NextDate(slot); err != nil {
		return Selection{}, err
	}

	st, err := s.sessions.Booking(ctx, sid)
	if err != nil {
		return Selection{}, err
	}
	if st.SelectedScheduleID != slot.ID || st.IdempotencyKey == "" {
		st.IdempotencyKey = uuid.NewString()
	}
	st.SelectedScheduleID = slot.ID
	st.CounselorID = req.CounselorID
	if err := s.sessions.SaveBooking(ctx, sid, st); err != nil {
		return Selection{}, err
	}

	view := s.resolver.View(slot)
	return selection(st, &view), nil
}

func selection(st session.BookingState, v *counseling.SlotView) Selection {
	return Selection{
		SelectedScheduleID: st.SelectedScheduleID,
		CounselorID:        st.CounselorID,
		CreatedComplaintID: st.CreatedComplaintID,
		JenisPengaduan:     st.JenisPengaduan,
		Slot:               v,
		CanSubmit:          st.HasSelection() && st.HasComplaint() && v != nil && v.Selectable && v.Tanggal != "",
	}
}

func (s *counselingService) Status(ctx context.Context, sid uuid.UUID) (Status, error) {
	st, err := s.sessions.Booking(ctx, sid)
	if err != nil {
		return Status{}, err
	}

	var view *counseling.SlotView
	if st.HasSelection() {
		slots, err := s.schedules.ForCounselor(ctx, st.CounselorID)
		if err != nil {
			return Status{}, err
		}
		if slot, ok := counseling.FindSlot(slots, st.SelectedScheduleID); ok {
			v := s.resolver.View(slot)
			view = &v
		}
	}

	out := Status{Selection: selection(st, view)}
	page, err := s.History(ctx, apiclient.ListParams{Page: 1, PerPage: 1})
	if err != nil {
		return Status{}, err
	}
	if len(page.Items) > 0 {
		latest := page.Items[0]
		out.Latest = &latest
		out.Tracker = latest.Tracker
	} else {
		out.Tracker = counseling.Track("")
	}
	return out, nil
}

func (s *counselingService) Confirm(ctx context.Context, sid uuid.UUID) (Confirmation, error) {
	lock, err := s.sessions.LockConfirm(ctx, sid)
	if errors.Is(err, session.ErrConfirmLocked) {
		return Confirmation{}, counseling.ErrSubmitInFlight
	}
	if err != nil {
		return Confirmation{}, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			slog.WarnContext(ctx, "release confirm lock", append(reqctx.LogAttrs(ctx), "error", err)...)
		}
	}()

	st, err := s.sessions.Booking(ctx, sid)
	if err != nil {
		return Confirmation{}, err
	}
	if !st.HasSelection() {
		return Confirmation{}, counseling.ErrNoSelection
	}
	if !st.HasComplaint() {
		return Confirmation{}, counseling.ErrNoComplaint
	}

	slots, err := s.schedules.ForCounselor(ctx, st.CounselorID)
	if err != nil {
		return Confirmation{}, err
	}
	slot, ok := counseling.FindSlot(slots, st.SelectedScheduleID)
	if !ok {
		return Confirmation{}, ErrScheduleNotFound
	}

	cfg := s.flowCfg
	cfg.Logger = slog.Default().With(reqctx.LogAttrs(ctx)...)
	flow := counseling.NewFlow(s.resolver, s.submitter, cfg)
	defer flow.Close()
	flow.SetComplaint(st.CreatedComplaintID, st.JenisPengaduan)
	if !flow.Select(slot) {
		// taken since it was selected; the student has to pick again
		st.SelectedScheduleID = 0
		if err := s.sessions.SaveBooking(ctx, sid, st); err != nil {
			return Confirmation{}, err
		}
		return Confirmation{}, counseling.ErrSlotUnavailable
	}

	res, err := flow.Submit(withIdempotencyKey(ctx, st.IdempotencyKey))
	if err != nil {
		return Confirmation{}, err
	}
	if err := s.sessions.ClearBooking(ctx, sid); err != nil {
		slog.WarnContext(ctx, "clear booking state", append(reqctx.LogAttrs(ctx), "error", err)...)
	}
	return Confirmation{
		Booking:         res.Booking,
		Redirect:        res.Redirect,
		RedirectAfterMs: res.RedirectAfter.Milliseconds(),
	}, nil
}

func (s *counselingService) History(ctx context.Context, p apiclient.ListParams) (apiclient.Page[View], error) {
	return ListHistory(ctx, s.api, p)
}

func (s *counselingService) Assigned(ctx context.Context, p apiclient.ListParams) (apiclient.Page[View], error) {
	return list(ctx, s.api, "/konselor/counselings", p)
}

// ListHistory lists the signed-in student's counseling requests with their
// tracker. It needs nothing but the API client.
func ListHistory(ctx context.Context, api *apiclient.Client, p apiclient.ListParams) (apiclient.Page[View], error) {
	return list(ctx, api, "/user/counselings", p)
}

func list(ctx context.Context, api *apiclient.Client, path string, p apiclient.ListParams) (apiclient.Page[View], error) {
	var env apiclient.Envelope[apiclient.Page[Counseling]]
	if err := api.Get(ctx, path, &env, p.Query()); err != nil {
		return apiclient.Page[View]{}, fmt.Errorf("list counselings: %w", err)
	}
	out := apiclient.Page[View]{Meta: env.Data.Meta, Items: make([]View, 0, len(env.Data.Items))}
	for _, c := range env.Data.Items {
		out.Items = append(out.Items, c.View())
	}
	return out, nil
}

func (s *counselingService) UpdateStatus(ctx context.Context, id int64, req StatusUpdate) error {
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if err := validate.Struct(req); err != nil {
		return err
	}
	path := "/konselor/counselings/" + strconv.FormatInt(id, 10) + "/status"
	if err := s.api.Put(ctx, path, req, nil); err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return ErrCounselingNotFound
		}
		return fmt.Errorf("update counseling status: %w", err)
	}
	return nil
}
