package content

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/email"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (f *fakeMailer) Enabled() bool { return true }

func (f *fakeMailer) Send(_ context.Context, m email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return f.err
}

func newTestService(t *testing.T, h http.HandlerFunc, mail email.Sender) Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	api, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	svc, err := New(api, mail, &config.Config{Email: config.EmailConfig{ContactInbox: "satgas@polije.ac.id"}})
	require.NoError(t, err)
	return svc
}

func TestEmbeddedSections(t *testing.T) {
	s, err := ParseSections(landingYAML)
	require.NoError(t, err)
	assert.NotEmpty(t, s.About.Title)
	assert.Len(t, s.Services, 3)
	assert.NotEmpty(t, s.FAQ)
	require.Len(t, s.Articles, 3)
	assert.Equal(t, "layanan-konseling-satgas", s.Articles[0].Slug, "newest first")
	assert.NotEmpty(t, s.Footer.Tagline)
	assert.NotEmpty(t, s.Footer.Copyright)
	assert.Contains(t, s.Footer.Links, Link{Label: "Artikel", URL: "/artikel"})
}

func TestParseSections_DuplicateSlug(t *testing.T) {
	_, err := ParseSections([]byte("articles:\n  - slug: a\n  - slug: a\n"))
	assert.Error(t, err)
	_, err = ParseSections([]byte("articles:\n  - title: Tanpa slug\n"))
	assert.Error(t, err)
}

func TestArticles(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {}, nil)

	list := svc.Articles()
	require.NotEmpty(t, list)
	for _, a := range list {
		assert.Empty(t, a.Body, "listing carries summaries only")
	}

	a, err := svc.Article("cara-membantu-teman")
	require.NoError(t, err)
	assert.NotEmpty(t, a.Body)

	_, err = svc.Article("tidak-ada")
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestLanding(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hero":
			_, _ = io.WriteString(w, `{"success":true,"data":{"title":"Kampus Aman","subtitle":"Tanpa kekerasan"}}`)
		case "/contact":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}, nil)

	l, err := svc.Landing(context.Background())
	require.NoError(t, err)
	require.NotNil(t, l.Hero)
	assert.Equal(t, "Kampus Aman", l.Hero.Title)
	assert.Nil(t, l.Contact, "failed block stays empty")
	assert.NotEmpty(t, l.Sections.Services)
	assert.NotEmpty(t, l.Sections.Articles)
	assert.NotEmpty(t, l.Sections.Footer.Links)
}

func TestLanding_UnreachableCancelsSibling(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hero":
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				_ = conn.Close()
			}
		case "/contact":
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}
	}, nil)

	start := time.Now()
	l, err := svc.Landing(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 4*time.Second, "contact fetch was not cancelled")
	assert.Nil(t, l.Hero)
	assert.Nil(t, l.Contact)
	assert.NotEmpty(t, l.Sections.Services)
}

func TestSendContact(t *testing.T) {
	var posted int
	mail := &fakeMailer{}
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contact/messages", r.URL.Path)
		posted++
		_, _ = io.WriteString(w, `{"success":true}`)
	}, mail)

	err := svc.SendContact(context.Background(), ContactRequest{
		Nama: "Ani", Email: "ani@example.com", Subjek: "Pertanyaan", Pesan: "Bagaimana cara melapor?",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, posted)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ani@example.com", mail.sent[0].ReplyTo)
	assert.Equal(t, []string{"satgas@polije.ac.id"}, mail.sent[0].To)
}

func TestSendContact_RelayFailureIsNotFatal(t *testing.T) {
	mail := &fakeMailer{err: errors.New("smtp down")}
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true}`)
	}, mail)
	err := svc.SendContact(context.Background(), ContactRequest{Nama: "Ani", Email: "ani@example.com", Pesan: "Halo Satgas"})
	assert.NoError(t, err)
}

func TestSendContact_Invalid(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected upstream call")
	}, nil)
	err := svc.SendContact(context.Background(), ContactRequest{Nama: " ", Email: "bukan", Pesan: "hi"})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Nama wajib diisi."}, verr.Fields["nama"])
	assert.Contains(t, verr.Fields, "pesan")
}
