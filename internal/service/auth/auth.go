package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polijecare/polijecare_web/internal/session"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/authorize"
	pasetotoken "github.com/polijecare/polijecare_web/pkg/paseto"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is what the BFF hands back after a successful login.
type LoginResult struct {
	Session     *session.Session
	AccessToken string
	ExpiresAt   time.Time
	Redirect    string
}

type apiLogin struct {
	Token       string       `json:"token"`
	AccessToken string       `json:"access_token"`
	User        session.User `json:"user"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Authenticate exchanges credentials for an upstream token without
	// creating a BFF session. The CLI uses it directly.
	Authenticate(ctx context.Context, req LoginRequest) (string, session.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	Current(ctx context.Context, sessionID uuid.UUID) (*session.Session, error)
	// Me asks the API who owns the token carried by ctx.
	Me(ctx context.Context) (session.User, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type authService struct {
	api      *apiclient.Client
	sessions session.Store
	paseto   *pasetotoken.Manager
}

func New(api *apiclient.Client, sessions session.Store, paseto *pasetotoken.Manager) Service {
	return &authService{api: api, sessions: sessions, paseto: paseto}
}

func (s *authService) Authenticate(ctx context.Context, req LoginRequest) (string, session.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Struct(req); err != nil {
		return "", session.User{}, err
	}

	var env apiclient.Envelope[apiLogin]
	if err := s.api.Post(ctx, "/login", req, &env); err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return "", session.User{}, ErrInvalidCredentials
		}
		return "", session.User{}, fmt.Errorf("login: %w", err)
	}

	token := env.Data.Token
	if token == "" {
		token = env.Data.AccessToken
	}
	if token == "" {
		return "", session.User{}, ErrNoToken
	}

	u := env.Data.User
	role, ok := authorize.ParseRole(u.Role)
	if !ok {
		slog.WarnContext(ctx, "login: unsupported role", "user_id", u.ID, "role", u.Role)
		return "", session.User{}, ErrUnknownRole
	}
	u.Role = string(role)
	return token, u, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	token, u, err := s.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create(ctx, u, token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	access, exp, err := s.paseto.Issue(strconv.FormatInt(u.ID, 10), u.Role, sess.ID)
	if err != nil {
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	slog.InfoContext(ctx, "user logged in", "user_id", u.ID, "role", u.Role, "session_id", sess.ID)
	return &LoginResult{
		Session:     sess,
		AccessToken: access,
		ExpiresAt:   exp,
		Redirect:    authorize.DefaultRedirect(authorize.Role(u.Role)),
	}, nil
}

// Logout tells the API to revoke its token and drops the session. An
// upstream failure does not keep the local session alive.
func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		slog.DebugContext(ctx, "logout: session already expired", "session_id", sessionID)
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.api.Post(apiclient.WithToken(ctx, sess.Token), "/logout", nil, nil); err != nil {
		slog.WarnContext(ctx, "logout: upstream revoke failed", "session_id", sessionID, "error", err)
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *authService) Current(ctx context.Context, sessionID uuid.UUID) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	return sess, err
}

func (s *authService) Me(ctx context.Context) (session.User, error) {
	var env apiclient.Envelope[session.User]
	if err := s.api.Get(ctx, "/me", &env); err != nil {
		return session.User{}, fmt.Errorf("me: %w", err)
	}
	return env.Data, nil
}
