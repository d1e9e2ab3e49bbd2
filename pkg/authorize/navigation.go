package authorize

import (
	"context"
	"path"
	"strings"
)

type MenuItem struct {
	Label      string     `json:"label"`
	Path       string     `json:"path"`
	Icon       string     `json:"icon,omitempty"`
	Permission Permission `json:"-"`
}

// Menus is the sidebar of each role, in display order.
var Menus = map[Role][]MenuItem{
	RoleOperator: {
		{Label: "Dashboard", Path: "/operator/dashboard", Icon: "home", Permission: PermOperatorDashboard},
		{Label: "Data Pengaduan", Path: "/operator/pengaduan", Icon: "file-text", Permission: PermManageComplaints},
		{Label: "Manajemen Pengguna", Path: "/operator/pengguna", Icon: "users", Permission: PermManageUsers},
	},
	RoleKonselor: {
		{Label: "Dashboard", Path: "/konselor/dashboard", Icon: "home", Permission: PermKonselorDashboard},
		{Label: "Jadwal Konseling", Path: "/konselor/jadwal", Icon: "calendar", Permission: PermManageSchedules},
		{Label: "Permintaan Konseling", Path: "/konselor/konseling", Icon: "message-circle", Permission: PermReviewCounselings},
	},
	RoleUser: {
		{Label: "Dashboard", Path: "/user/dashboard", Icon: "home", Permission: PermUserDashboard},
		{Label: "Buat Pengaduan", Path: "/user/pengaduan", Icon: "edit", Permission: PermSubmitComplaint},
		{Label: "Jadwal Konseling", Path: "/user/jadwal", Icon: "calendar", Permission: PermBookCounseling},
		{Label: "Riwayat", Path: "/user/riwayat", Icon: "clock", Permission: PermViewHistory},
	},
}

// PublicPaths are reachable without logging in.
var PublicPaths = []string{"/", "/login", "/tentang", "/layanan", "/artikel", "/kontak"}

// Menu returns the items of role's sidebar the role is actually granted.
func Menu(ctx context.Context, a IAuthorization, role Role) []MenuItem {
	items := make([]MenuItem, 0, len(Menus[role]))
	for _, it := range Menus[role] {
		if a.HasPermission(ctx, role, it.Permission) {
			items = append(items, it)
		}
	}
	return items
}

type GuardResult struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// Guard decides whether a page may be shown. role is empty for anonymous
// visitors.
func Guard(ctx context.Context, a IAuthorization, role Role, page string) (GuardResult, error) {
	page = cleanPath(page)

	if isPublic(page) {
		if page == "/login" && role != "" {
			return GuardResult{Redirect: DefaultRedirect(role)}, nil
		}
		return GuardResult{Allowed: true}, nil
	}
	if role == "" {
		return GuardResult{Redirect: "/login"}, nil
	}

	ok, err := a.Enforce(ctx, role, page, ActionView)
	if err != nil {
		return GuardResult{}, err
	}
	if !ok {
		return GuardResult{Redirect: DefaultRedirect(role)}, nil
	}
	return GuardResult{Allowed: true}, nil
}

func cleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = path.Clean("/" + p)
	return p
}

func isPublic(p string) bool {
	for _, pub := range PublicPaths {
		if p == pub {
			return true
		}
	}
	return strings.HasPrefix(p, "/artikel/")
}
