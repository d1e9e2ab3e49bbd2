package complaint

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

func newTestService(t *testing.T, h http.HandlerFunc) Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	api, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	return New(api)
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		NamaPelapor:        "Sari",
		NoHP:               "081234567890",
		Email:              "sari@student.polije.ac.id",
		StatusPelapor:      "Mahasiswa",
		NamaKorban:         "Sari",
		JenisKelaminKorban: "perempuan",
		JenisPengaduan:     "Kekerasan Verbal",
		TanggalKejadian:    "2026-01-05",
		Deskripsi:          "Kejadian di area parkir gedung pusat.",
		Lokasi:             "Gedung Pusat",
		Latitude:           -8.1596,
		Longitude:          113.723,
	}
}

func TestSubmit_JSON(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/reports", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "mahasiswa", body["status_pelapor"])
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":41}}`)
	})

	id, err := svc.Submit(context.Background(), validRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(41), id)
}

func TestSubmit_Multipart(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Gedung Pusat", r.FormValue("lokasi"))
		assert.Equal(t, "-8.1596", r.FormValue("latitude"))
		if _, fh, err := r.FormFile("lampiran"); assert.NoError(t, err) {
			assert.Equal(t, "bukti.jpg", fh.Filename)
		}
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":42}}`)
	})

	id, err := svc.Submit(context.Background(), validRequest(), &Attachment{
		Name: "bukti.jpg", Size: 4, Content: strings.NewReader("jpeg"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestSubmit_ValidationIsLocal(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid form must not be sent")
	})

	req := validRequest()
	req.NoHP = "123"
	req.TanggalKejadian = "kemarin"
	req.StatusPelapor = "alumni"

	_, err := svc.Submit(context.Background(), req, nil)
	var verr *validate.Error
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, []string{"Nomor HP tidak valid."}, verr.Fields["no_hp"])
	assert.Contains(t, verr.Fields, "tanggal_kejadian")
	assert.Contains(t, verr.Fields, "status_pelapor")
}

func TestSubmit_AttachmentTooLarge(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("oversized attachment must not be sent")
	})
	_, err := svc.Submit(context.Background(), validRequest(), &Attachment{Name: "x.pdf", Size: MaxAttachmentBytes + 1})
	assert.ErrorIs(t, err, ErrAttachmentLarge)
}

func TestList(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/operator/reports", r.URL.Path)
		assert.Equal(t, "diproses", r.URL.Query().Get("status"))
		_, _ = io.WriteString(w, `{"success":true,"data":{"data":[{"id":1,"status":"diproses"}],"current_page":1,"per_page":10,"total":1,"last_page":1}}`)
	})

	page, err := svc.List(context.Background(), apiclient.ListParams{Status: "Diproses"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Diproses", page.Items[0].StatusLabel)
	assert.Equal(t, 1, page.Meta.Total)

	_, err = svc.List(context.Background(), apiclient.ListParams{Status: "hilang"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"Pengaduan tidak ditemukan"}`)
	})
	_, err := svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}
