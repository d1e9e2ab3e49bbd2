// Package schedule manages counselor weekly availability and lists it,
// resolved to concrete dates, for students choosing a session.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/polijecare/polijecare_web/internal/counseling"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// SlotRequest creates or replaces a weekly slot.
type SlotRequest struct {
	Hari       string `json:"hari" validate:"required"`
	JamMulai   string `json:"jam_mulai" validate:"required,hhmm"`
	JamSelesai string `json:"jam_selesai" validate:"required,hhmm"`
	IsActive   bool   `json:"is_active"`
}

func (r *SlotRequest) check() error {
	r.Hari = strings.ToLower(strings.TrimSpace(r.Hari))
	r.JamMulai = counseling.NormalizeTime(r.JamMulai)
	r.JamSelesai = counseling.NormalizeTime(r.JamSelesai)

	verr := &validate.Error{}
	if err := validate.Struct(*r); err != nil {
		if !errors.As(err, &verr) {
			return err
		}
	}
	if _, ok := counseling.ParseWeekday(r.Hari); r.Hari != "" && !ok {
		verr.Add("hari", "Hari tidak dikenali.")
	}
	start := counseling.TimeOfDay(r.JamMulai).Minutes()
	end := counseling.TimeOfDay(r.JamSelesai).Minutes()
	if start >= 0 && end >= 0 && end <= start {
		verr.Add("jam_selesai", "Jam selesai harus setelah jam mulai.")
	}
	return verr.OrNil()
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// ForCounselor returns a counselor's slots ordered Monday first.
	ForCounselor(ctx context.Context, counselorID int64) ([]counseling.Slot, error)
	// Views decorates ForCounselor with dates and availability labels.
	Views(ctx context.Context, counselorID int64) ([]counseling.SlotView, error)

	// Konselor
	Mine(ctx context.Context) ([]counseling.SlotView, error)
	Create(ctx context.Context, req SlotRequest) (int64, error)
	Update(ctx context.Context, id int64, req SlotRequest) error
	Delete(ctx context.Context, id int64) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type scheduleService struct {
	api      *apiclient.Client
	resolver *counseling.Resolver
}

func New(api *apiclient.Client, resolver *counseling.Resolver) Service {
	return &scheduleService{api: api, resolver: resolver}
}

func slotPath(id int64) string { return "/konselor/schedules/" + strconv.FormatInt(id, 10) }

func (s *scheduleService) ForCounselor(ctx context.Context, counselorID int64) ([]counseling.Slot, error) {
	if counselorID <= 0 {
		return nil, ErrInvalidCounselor
	}
	var env apiclient.Envelope[apiclient.Page[counseling.Slot]]
	q := map[string][]string{"counselor_id": {strconv.FormatInt(counselorID, 10)}}
	if err := s.api.Get(ctx, "/user/counselor-schedules", &env, apiclient.WithQuery(q)); err != nil {
		return nil, fmt.Errorf("list counselor schedules: %w", err)
	}
	slots := env.Data.Items
	counseling.SortSlots(slots)
	return slots, nil
}

func (s *scheduleService) Views(ctx context.Context, counselorID int64) ([]counseling.SlotView, error) {
	slots, err := s.ForCounselor(ctx, counselorID)
	if err != nil {
		return nil, err
	}
	return s.views(slots), nil
}

func (s *scheduleService) views(slots []counseling.Slot) []counseling.SlotView {
	out := make([]counseling.SlotView, 0, len(slots))
	for _, sl := range slots {
		out = append(out, s.resolver.View(sl))
	}
	return out
}

func (s *scheduleService) Mine(ctx context.Context) ([]counseling.SlotView, error) {
	var env apiclient.Envelope[apiclient.Page[counseling.Slot]]
	if err := s.api.Get(ctx, "/konselor/schedules", &env); err != nil {
		return nil, fmt.Errorf("list own schedules: %w", err)
	}
	slots := env.Data.Items
	counseling.SortSlots(slots)
	return s.views(slots), nil
}

func (s *scheduleService) Create(ctx context.Context, req SlotRequest) (int64, error) {
	if err := req.check(); err != nil {
		return 0, err
	}
	var env apiclient.Envelope[apiclient.Created]
	if err := s.api.Post(ctx, "/konselor/schedules", req, &env); err != nil {
		return 0, fmt.Errorf("create schedule: %w", err)
	}
	return env.Data.ID, nil
}

func (s *scheduleService) Update(ctx context.Context, id int64, req SlotRequest) error {
	if err := req.check(); err != nil {
		return err
	}
	if err := s.api.Put(ctx, slotPath(id), req, nil); err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("update schedule: %w", err)
	}
	return nil
}

func (s *scheduleService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, slotPath(id), nil); err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
