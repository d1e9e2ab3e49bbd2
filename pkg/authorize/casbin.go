// Package authorize holds the role model of the web tier: which role has
// which permission, which routes a permission opens, the menu each role
// sees and where it lands after login. Decisions are made by casbin.
package authorize

import (
	"context"
	"errors"
	"fmt"
	"sort"

	casbin "github.com/casbin/casbin/v2"
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrInvalidArgs = errors.New("invalid authorization arguments")
)

// IAuthorization is the only thing handlers and middleware depend on.
type IAuthorization interface {
	// Enforce answers whether role may perform action on the route object.
	Enforce(ctx context.Context, role Role, object string, action Action) (bool, error)
	MustEnforce(ctx context.Context, role Role, object string, action Action) error
	HasPermission(ctx context.Context, role Role, perm Permission) bool
	PermissionsFor(ctx context.Context, role Role) []Permission
	Raw() *casbin.SyncedEnforcer
}

type Authorization struct {
	enforcer *casbin.SyncedEnforcer
}

func NewAuthorization(e *casbin.SyncedEnforcer) (IAuthorization, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: enforcer is nil", ErrInvalidArgs)
	}
	return &Authorization{enforcer: e}, nil
}

func (a *Authorization) Raw() *casbin.SyncedEnforcer { return a.enforcer }

func (a *Authorization) Enforce(_ context.Context, role Role, object string, action Action) (bool, error) {
	if _, ok := KnownRoles[role]; !ok {
		return false, fmt.Errorf("%w: unknown role: %q", ErrInvalidArgs, role)
	}
	if object == "" {
		return false, fmt.Errorf("%w: object is empty", ErrInvalidArgs)
	}
	if _, ok := KnownActions[action]; !ok {
		return false, fmt.Errorf("%w: unknown action: %q", ErrInvalidArgs, action)
	}
	return a.enforcer.Enforce(string(role), object, string(action))
}

func (a *Authorization) MustEnforce(ctx context.Context, role Role, object string, action Action) error {
	ok, err := a.Enforce(ctx, role, object, action)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (a *Authorization) HasPermission(_ context.Context, role Role, perm Permission) bool {
	return a.enforcer.HasGroupingPolicy(string(role), string(perm))
}

// PermissionsFor lists the known permissions currently granted to role.
func (a *Authorization) PermissionsFor(ctx context.Context, role Role) []Permission {
	var out []Permission
	for _, perms := range RolePermissions {
		for _, p := range perms {
			if a.HasPermission(ctx, role, p) {
				out = append(out, p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
