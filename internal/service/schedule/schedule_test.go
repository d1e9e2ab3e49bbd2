package schedule

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polijecare/polijecare_web/internal/counseling"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

var wib = time.FixedZone("WIB", 7*3600)

func newTestService(t *testing.T, h http.HandlerFunc) Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	api, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	// Wednesday 2026-01-07
	r := counseling.NewResolver(wib, counseling.WithNow(func() time.Time {
		return time.Date(2026, 1, 7, 10, 0, 0, 0, wib)
	}))
	return New(api, r)
}

func TestViews(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/counselor-schedules", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("counselor_id"))
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"id":2,"counselor_id":3,"hari":"rabu","jam_mulai":"13:00:00","jam_selesai":"14:00:00","is_active":1,"is_booked":1},
			{"id":1,"counselor_id":3,"hari":"Senin","jam_mulai":"2026-01-01T09:00:00.000000Z","jam_selesai":"10:00","is_active":true,"is_booked":false},
			{"id":3,"counselor_id":3,"hari":"jumat","jam_mulai":null,"jam_selesai":null,"is_active":false,"is_booked":false,"next_date":"2026-01-16"}
		]}`)
	})

	views, err := svc.Views(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, int64(1), views[0].ID)
	assert.Equal(t, "Senin", views[0].Day)
	assert.Equal(t, "2026-01-12", views[0].Tanggal)
	assert.Equal(t, "09:00", views[0].JamMulai.String())
	assert.Equal(t, "Tersedia", views[0].Label)
	assert.True(t, views[0].Selectable)

	assert.Equal(t, "2026-01-14", views[1].Tanggal, "same weekday resolves a week out")
	assert.Equal(t, "Sudah Dipesan", views[1].Label)

	assert.Equal(t, "2026-01-16", views[2].Tanggal)
	assert.Equal(t, "Tidak Aktif", views[2].Label)
	assert.Equal(t, "09:00", views[2].JamMulai.String())
}

func TestForCounselor_RequiresID(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected upstream call")
	})
	_, err := svc.ForCounselor(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidCounselor)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected upstream call")
	})

	tests := []struct {
		name  string
		req   SlotRequest
		field string
	}{
		{"unknown day", SlotRequest{Hari: "someday", JamMulai: "09:00", JamSelesai: "10:00"}, "hari"},
		{"end before start", SlotRequest{Hari: "senin", JamMulai: "10:00", JamSelesai: "09:00"}, "jam_selesai"},
		{"bad time", SlotRequest{Hari: "senin", JamMulai: "9 pagi", JamSelesai: "10:00"}, "jam_mulai"},
		{"missing day", SlotRequest{JamMulai: "09:00", JamSelesai: "10:00"}, "hari"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			var verr *validate.Error
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestCreate(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"hari":"selasa","jam_mulai":"08:30","jam_selesai":"09:30","is_active":true}`, string(body))
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":77}}`)
	})
	id, err := svc.Create(context.Background(), SlotRequest{Hari: " Selasa", JamMulai: "08:30:00", JamSelesai: "09:30", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	assert.ErrorIs(t, svc.Delete(context.Background(), 4), ErrScheduleNotFound)
}
