package authorize

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestAuth(t *testing.T) IAuthorization {
	t.Helper()
	e, err := NewEnforcer("")
	if err != nil {
		t.Fatalf("failed to create enforcer: %v", err)
	}
	a, err := NewAuthorization(e)
	if err != nil {
		t.Fatalf("failed to wrap enforcer: %v", err)
	}
	return a
}

func TestNewAuthorization(t *testing.T) {
	if _, err := NewAuthorization(nil); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("expected ErrInvalidArgs for nil enforcer, got %v", err)
	}
}

func TestNewEnforcer_ModelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.conf")
	if err := os.WriteFile(path, []byte(DefaultModel), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := NewEnforcer(path)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := e.Enforce("operator", "/api/v1/operator/users/5", "DELETE")
	if err != nil || !ok {
		t.Errorf("operator delete user: ok=%v err=%v", ok, err)
	}

	if _, err := NewEnforcer(filepath.Join(t.TempDir(), "missing.conf")); err != nil {
		t.Errorf("missing model file should fall back to the default: %v", err)
	}
}

func TestEnforce(t *testing.T) {
	a := newTestAuth(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		role   Role
		object string
		action Action
		want   bool
	}{
		{"operator lists users", RoleOperator, "/api/v1/operator/users", ActionGet, true},
		{"operator updates complaint", RoleOperator, "/api/v1/operator/reports/12", ActionPut, true},
		{"operator lists counselors", RoleOperator, "/api/v1/operator/counselors", ActionGet, true},
		{"operator cannot post counselors", RoleOperator, "/api/v1/operator/counselors", ActionPost, false},
		{"operator cannot book", RoleOperator, "/api/v1/user/counseling/confirm", ActionPost, false},
		{"konselor edits schedule", RoleKonselor, "/api/v1/konselor/schedules/3", ActionPut, true},
		{"konselor updates status", RoleKonselor, "/api/v1/konselor/counselings/3/status", ActionPut, true},
		{"konselor cannot manage users", RoleKonselor, "/api/v1/operator/users", ActionGet, false},
		{"user confirms booking", RoleUser, "/api/v1/user/counseling/confirm", ActionPost, true},
		{"user lists slots", RoleUser, "/api/v1/user/counselor-schedules", ActionGet, true},
		{"user submits report", RoleUser, "/api/v1/user/reports", ActionPost, true},
		{"user cannot open operator page", RoleUser, "/operator/dashboard", ActionView, false},
		{"user opens history page", RoleUser, "/user/riwayat", ActionView, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Enforce(ctx, tt.role, tt.object, tt.action)
			if err != nil {
				t.Fatalf("Enforce: %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce(%s, %s, %s) = %v, want %v", tt.role, tt.object, tt.action, got, tt.want)
			}
		})
	}
}

func TestEnforce_InvalidArgs(t *testing.T) {
	a := newTestAuth(t)
	ctx := context.Background()

	if _, err := a.Enforce(ctx, "admin", "/x", ActionGet); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("unknown role: %v", err)
	}
	if _, err := a.Enforce(ctx, RoleUser, "", ActionGet); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("empty object: %v", err)
	}
	if _, err := a.Enforce(ctx, RoleUser, "/x", "FETCH"); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("unknown action: %v", err)
	}
	if err := a.MustEnforce(ctx, RoleUser, "/api/v1/operator/users", ActionGet); !errors.Is(err, ErrForbidden) {
		t.Errorf("MustEnforce: %v", err)
	}
}

func TestPermissionsFor(t *testing.T) {
	a := newTestAuth(t)
	got := a.PermissionsFor(context.Background(), RoleKonselor)
	want := []Permission{PermKonselorDashboard, PermReviewCounselings, PermManageSchedules}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for _, p := range want {
		if !a.HasPermission(context.Background(), RoleKonselor, p) {
			t.Errorf("missing %s", p)
		}
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	a := newTestAuth(t)
	before := len(a.Raw().GetPolicy())
	if err := SeedDefaultPolicies(a.Raw()); err != nil {
		t.Fatal(err)
	}
	if after := len(a.Raw().GetPolicy()); after != before {
		t.Errorf("policies grew from %d to %d", before, after)
	}
}

func TestAuditedAuthorization(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := NewAuditedAuthorization(newTestAuth(t), logger)

	ok, err := a.Enforce(context.Background(), RoleUser, "/api/v1/operator/users", ActionGet)
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	out := buf.String()
	if !strings.Contains(out, "authz_decision") || !strings.Contains(out, "level=WARN") {
		t.Errorf("log = %s", out)
	}
}
