package authorize

import "strings"

type Role string
type Permission string
type Action string

const (
	RoleOperator Role = "operator"
	RoleKonselor Role = "konselor"
	RoleUser     Role = "user"
)

var KnownRoles = map[Role]struct{}{
	RoleOperator: {}, RoleKonselor: {}, RoleUser: {},
}

// ParseRole normalizes a role string coming from the API.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := KnownRoles[r]
	return r, ok
}

// Actions. Pages are checked with ActionView, API routes with the HTTP
// method.
const (
	ActionView     Action = "view"
	ActionGet      Action = "GET"
	ActionPost     Action = "POST"
	ActionPut      Action = "PUT"
	ActionPatch    Action = "PATCH"
	ActionDelete   Action = "DELETE"
	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionView: {}, ActionGet: {}, ActionPost: {}, ActionPut: {}, ActionPatch: {}, ActionDelete: {},
}

const (
	PermOperatorDashboard Permission = "operator.dashboard"
	PermManageUsers       Permission = "users.manage"
	PermManageComplaints  Permission = "complaints.manage"
	PermListCounselors    Permission = "counselors.list"

	PermKonselorDashboard Permission = "konselor.dashboard"
	PermManageSchedules   Permission = "schedules.manage"
	PermReviewCounselings Permission = "counselings.review"

	PermUserDashboard   Permission = "user.dashboard"
	PermSubmitComplaint Permission = "complaints.submit"
	PermBookCounseling  Permission = "counseling.book"
	PermViewHistory     Permission = "history.view"
)

// DefaultRedirect is where a role lands after login.
func DefaultRedirect(r Role) string {
	if _, ok := KnownRoles[r]; !ok {
		return "/login"
	}
	return "/" + string(r) + "/dashboard"
}

// RoutePrefix is the page prefix owned by a role.
func RoutePrefix(r Role) string {
	return "/" + string(r)
}
