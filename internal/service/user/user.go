// Package user is the operator's account management over the API.
package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/authorize"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	NIM      string `json:"nim,omitempty"`
	NIP      string `json:"nip,omitempty"`
	NoHP     string `json:"no_hp,omitempty"`
	IsActive bool   `json:"is_active"`
}

type CreateRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=operator konselor user"`
	NIM      string `json:"nim,omitempty" validate:"omitempty,numeric"`
	NIP      string `json:"nip,omitempty" validate:"omitempty,numeric"`
	NoHP     string `json:"no_hp,omitempty" validate:"omitempty,phone_id"`
}

// UpdateRequest leaves the password untouched when it is empty.
type UpdateRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     string `json:"role" validate:"required,oneof=operator konselor user"`
	NIM      string `json:"nim,omitempty" validate:"omitempty,numeric"`
	NIP      string `json:"nip,omitempty" validate:"omitempty,numeric"`
	NoHP     string `json:"no_hp,omitempty" validate:"omitempty,phone_id"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// Counselor is a dropdown entry for assigning konselor.
type Counselor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, p apiclient.ListParams) (apiclient.Page[User], error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, req CreateRequest) (int64, error)
	Update(ctx context.Context, id int64, req UpdateRequest) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	Counselors(ctx context.Context) ([]Counselor, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type UserService struct {
	api *apiclient.Client
}

func New(api *apiclient.Client) *UserService {
	return &UserService{api: api}
}

func userPath(id int64) string { return "/operator/users/" + strconv.FormatInt(id, 10) }

func (s *UserService) List(ctx context.Context, p apiclient.ListParams) (apiclient.Page[User], error) {
	if p.Status != "" {
		// the user list filters by role
		if _, ok := authorize.ParseRole(p.Status); !ok {
			return apiclient.Page[User]{}, ErrInvalidRole
		}
	}
	var env apiclient.Envelope[apiclient.Page[User]]
	if err := s.api.Get(ctx, "/operator/users", &env, p.Query()); err != nil {
		return apiclient.Page[User]{}, fmt.Errorf("list users: %w", err)
	}
	return env.Data, nil
}

// GetByID retrieves a single account.
func (s *UserService) GetByID(ctx context.Context, id int64) (User, error) {
	var env apiclient.Envelope[User]
	if err := s.api.Get(ctx, userPath(id), &env); err != nil {
		return User{}, mapErr("get user", err)
	}
	return env.Data, nil
}

func (s *UserService) Create(ctx context.Context, req CreateRequest) (int64, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if err := validate.Struct(req); err != nil {
		return 0, err
	}
	var env apiclient.Envelope[apiclient.Created]
	if err := s.api.Post(ctx, "/operator/users", req, &env); err != nil {
		return 0, mapErr("create user", err)
	}
	return env.Data.ID, nil
}

func (s *UserService) Update(ctx context.Context, id int64, req UpdateRequest) error {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := s.api.Put(ctx, userPath(id), req, nil); err != nil {
		return mapErr("update user", err)
	}
	return nil
}

// SetActive toggles activation by rewriting the current record.
func (s *UserService) SetActive(ctx context.Context, id int64, active bool) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.Update(ctx, id, UpdateRequest{
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		NIM:      u.NIM,
		NIP:      u.NIP,
		NoHP:     u.NoHP,
		IsActive: &active,
	})
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, userPath(id), nil); err != nil {
		return mapErr("delete user", err)
	}
	return nil
}

func (s *UserService) Counselors(ctx context.Context) ([]Counselor, error) {
	var env apiclient.Envelope[apiclient.Page[Counselor]]
	if err := s.api.Get(ctx, "/operator/counselors", &env); err != nil {
		return nil, fmt.Errorf("list counselors: %w", err)
	}
	if env.Data.Items == nil {
		return []Counselor{}, nil
	}
	return env.Data.Items, nil
}

func mapErr(op string, err error) error {
	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, apiclient.ErrConflict):
		return ErrEmailConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
