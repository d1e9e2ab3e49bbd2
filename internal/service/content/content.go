// Package content assembles the public landing page and relays messages
// sent through the contact form.
package content

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/email"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

//go:embed landing.yaml
var landingYAML []byte

var ErrArticleNotFound = errors.New("article not found")

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image,omitempty"`
	CTALabel string `json:"cta_label,omitempty"`
	CTALink  string `json:"cta_link,omitempty"`
}

type Contact struct {
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Hours    string `json:"hours,omitempty"`
	MapURL   string `json:"map_url,omitempty"`
}

type ServiceCard struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
}

type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Article is an awareness post of the task force. Body is only served by
// the article detail.
type Article struct {
	Slug        string `yaml:"slug" json:"slug"`
	Title       string `yaml:"title" json:"title"`
	Summary     string `yaml:"summary" json:"summary"`
	Image       string `yaml:"image" json:"image,omitempty"`
	PublishedAt string `yaml:"published_at" json:"published_at"`
	Body        string `yaml:"body" json:"body,omitempty"`
}

type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

type Footer struct {
	Tagline   string `yaml:"tagline" json:"tagline"`
	Links     []Link `yaml:"links" json:"links"`
	Social    []Link `yaml:"social" json:"social"`
	Copyright string `yaml:"copyright" json:"copyright"`
}

// Sections is the static part of the landing page.
type Sections struct {
	About struct {
		Title string `yaml:"title" json:"title"`
		Body  string `yaml:"body" json:"body"`
	} `yaml:"about" json:"about"`
	Services []ServiceCard `yaml:"services" json:"services"`
	Steps    []string      `yaml:"steps" json:"steps"`
	FAQ      []FAQ         `yaml:"faq" json:"faq"`
	Articles []Article     `yaml:"articles" json:"articles"`
	Footer   Footer        `yaml:"footer" json:"footer"`
}

type Landing struct {
	Hero     *Hero    `json:"hero"`
	Contact  *Contact `json:"contact"`
	Sections Sections `json:"sections"`
}

type ContactRequest struct {
	Nama   string `json:"nama" validate:"required,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Subjek string `json:"subjek" validate:"max=150"`
	Pesan  string `json:"pesan" validate:"required,min=5,max=2000"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Landing(ctx context.Context) (Landing, error)
	Sections() Sections
	// Articles lists article summaries, newest first.
	Articles() []Article
	Article(slug string) (Article, error)
	SendContact(ctx context.Context, req ContactRequest) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type contentService struct {
	api      *apiclient.Client
	mail     email.Sender
	inbox    string
	sections Sections
	now      func() time.Time
}

func New(api *apiclient.Client, mail email.Sender, cfg *config.Config) (Service, error) {
	sections, err := ParseSections(landingYAML)
	if err != nil {
		return nil, err
	}
	return &contentService{
		api:      api,
		mail:     mail,
		inbox:    cfg.Email.ContactInbox,
		sections: sections,
		now:      time.Now,
	}, nil
}

// ParseSections decodes the static landing content. Articles are sorted
// newest first and their bodies dropped from the landing listing.
func ParseSections(b []byte) (Sections, error) {
	var s Sections
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Sections{}, fmt.Errorf("parse landing sections: %w", err)
	}
	seen := make(map[string]struct{}, len(s.Articles))
	for _, a := range s.Articles {
		if a.Slug == "" {
			return Sections{}, fmt.Errorf("parse landing sections: article %q has no slug", a.Title)
		}
		if _, dup := seen[a.Slug]; dup {
			return Sections{}, fmt.Errorf("parse landing sections: duplicate article slug %q", a.Slug)
		}
		seen[a.Slug] = struct{}{}
	}
	slices.SortStableFunc(s.Articles, func(a, b Article) int {
		return strings.Compare(b.PublishedAt, a.PublishedAt)
	})
	return s, nil
}

func (s *contentService) Sections() Sections {
	out := s.sections
	out.Articles = s.Articles()
	return out
}

func (s *contentService) Articles() []Article {
	out := make([]Article, len(s.sections.Articles))
	for i, a := range s.sections.Articles {
		a.Body = ""
		out[i] = a
	}
	return out
}

func (s *contentService) Article(slug string) (Article, error) {
	i := slices.IndexFunc(s.sections.Articles, func(a Article) bool { return a.Slug == slug })
	if i < 0 {
		return Article{}, ErrArticleNotFound
	}
	return s.sections.Articles[i], nil
}

// Landing fetches hero and contact concurrently. Either one failing leaves
// its block empty and the page still renders from the static sections. An
// unreachable API cancels the other fetch.
func (s *contentService) Landing(ctx context.Context) (Landing, error) {
	out := Landing{Sections: s.Sections()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var env apiclient.Envelope[Hero]
		if err := s.api.Get(gctx, "/hero", &env); err != nil {
			slog.WarnContext(ctx, "landing: hero unavailable", "error", err)
			return unreachable(err)
		}
		out.Hero = &env.Data
		return nil
	})
	g.Go(func() error {
		var env apiclient.Envelope[Contact]
		if err := s.api.Get(gctx, "/contact", &env); err != nil {
			slog.WarnContext(ctx, "landing: contact unavailable", "error", err)
			return unreachable(err)
		}
		out.Contact = &env.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.WarnContext(ctx, "landing: api unreachable, serving static sections", "error", err)
	}
	return out, nil
}

// unreachable keeps only errors that make the sibling fetch pointless.
func unreachable(err error) error {
	if errors.Is(err, apiclient.ErrUnavailable) {
		return err
	}
	return nil
}

// SendContact stores the message through the API, then copies it to the
// task force inbox when e-mail is enabled.
func (s *contentService) SendContact(ctx context.Context, req ContactRequest) error {
	req.Nama = strings.TrimSpace(req.Nama)
	req.Email = strings.TrimSpace(req.Email)
	req.Subjek = strings.TrimSpace(req.Subjek)
	req.Pesan = strings.TrimSpace(req.Pesan)
	if err := validate.Struct(req); err != nil {
		return err
	}

	if err := s.api.Post(ctx, "/contact/messages", req, nil); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}

	if s.mail == nil || !s.mail.Enabled() || s.inbox == "" {
		return nil
	}
	msg, err := email.BuildContactRelay(s.inbox, email.ContactMessage{
		Name:       req.Nama,
		Email:      req.Email,
		Subject:    req.Subjek,
		Message:    req.Pesan,
		ReceivedAt: s.now(),
	})
	if err == nil {
		err = s.mail.Send(ctx, msg)
	}
	if err != nil && !errors.Is(err, email.ErrDisabled) {
		// the message is already stored upstream
		slog.ErrorContext(ctx, "contact relay failed", "inbox", s.inbox, "error", err)
	}
	return nil
}
