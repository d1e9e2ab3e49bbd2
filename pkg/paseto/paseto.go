package pasetotoken

import (
	"errors"
	"log/slog"
	"time"

	paseto "aidanwoods.dev/go-paseto"
	"github.com/google/uuid"

	"github.com/polijecare/polijecare_web/config"
)

type Config struct {
	Issuer    string
	Audience  string
	AccessTTL time.Duration
}

type Manager struct {
	cfg  Config
	keys Keys
}

func New(cfg Config, keys Keys) (*Manager, error) {
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, ErrConfig{Msg: "issuer and audience are required"}
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 2 * time.Hour
	}
	return &Manager{cfg: cfg, keys: keys}, nil
}

// NewFromConfig builds the manager from config. Outside production a
// missing local key is replaced by an ephemeral one.
func NewFromConfig(cfg *config.Config) (*Manager, error) {
	p := cfg.Authentication.Paseto
	keys, err := LoadKeys(p)
	if err != nil {
		if cfg.IsProduction() || Mode(p.Mode) == ModePublic || p.LocalKeyHex != "" {
			return nil, err
		}
		slog.Warn("paseto local key not configured, using an ephemeral key")
		keys = NewLocalKeys()
	}
	return New(Config{
		Issuer:    p.Issuer,
		Audience:  p.Audience,
		AccessTTL: time.Duration(p.AccessTTLMinutes) * time.Minute,
	}, keys)
}

func (m *Manager) TTL() time.Duration { return m.cfg.AccessTTL }

// Issue mints an access token for a logged-in session.
func (m *Manager) Issue(userID, role string, sessionID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.cfg.AccessTTL)

	tok := paseto.NewToken()
	tok.SetIssuer(m.cfg.Issuer)
	tok.SetAudience(m.cfg.Audience)
	tok.SetJti(uuid.NewString())
	tok.SetSubject(userID)
	tok.SetIssuedAt(now)
	tok.SetNotBefore(now)
	tok.SetExpiration(exp)
	tok.SetString("uid", userID)
	tok.SetString("role", role)
	tok.SetString("sid", sessionID.String())

	switch {
	case m.keys.Symmetric != nil:
		return tok.V4Encrypt(*m.keys.Symmetric, nil), exp, nil
	case m.keys.Secret != nil:
		return tok.V4Sign(*m.keys.Secret, nil), exp, nil
	}
	return "", time.Time{}, ErrConfig{Msg: "no signing key"}
}

func (m *Manager) Verify(token string) (*Claims, error) {
	p := paseto.NewParser()
	p.AddRule(paseto.IssuedBy(m.cfg.Issuer))
	p.AddRule(paseto.ForAudience(m.cfg.Audience))
	p.AddRule(paseto.NotExpired())

	var (
		tok *paseto.Token
		err error
	)
	switch {
	case m.keys.Symmetric != nil:
		tok, err = p.ParseV4Local(*m.keys.Symmetric, token, nil)
	case m.keys.Public != nil:
		tok, err = p.ParseV4Public(*m.keys.Public, token, nil)
	default:
		return nil, ErrConfig{Msg: "no verification key"}
	}
	if err != nil {
		return nil, invalid(err)
	}

	claims, err := m.claims(tok)
	if err != nil {
		return nil, invalid(err)
	}
	return claims, nil
}

func (m *Manager) claims(tok *paseto.Token) (*Claims, error) {
	out := &Claims{Issuer: m.cfg.Issuer, Audience: m.cfg.Audience}
	var err error

	if out.TokenID, err = tok.GetJti(); err != nil {
		return nil, err
	}
	if out.IssuedAt, err = tok.GetIssuedAt(); err != nil {
		return nil, err
	}
	if out.ExpiresAt, err = tok.GetExpiration(); err != nil {
		return nil, err
	}
	if out.UserID, err = tok.GetString("uid"); err != nil {
		return nil, err
	}
	if out.Role, err = tok.GetString("role"); err != nil {
		return nil, err
	}
	sid, err := tok.GetString("sid")
	if err != nil {
		return nil, err
	}
	if out.SessionID, err = uuid.Parse(sid); err != nil {
		return nil, err
	}
	if out.UserID == "" || out.Role == "" {
		return nil, errors.New("missing subject claims")
	}
	return out, nil
}
