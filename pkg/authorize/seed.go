package authorize

import "fmt"

// policyStore is the part of a casbin enforcer seeding needs.
type policyStore interface {
	HasPolicy(params ...interface{}) bool
	AddPolicies(rules [][]string) (bool, error)
	HasGroupingPolicy(params ...interface{}) bool
	AddGroupingPolicies(rules [][]string) (bool, error)
}

// Rule allows a permission to perform Action on routes matching Pattern
// (keyMatch2 syntax).
type Rule struct {
	Permission Permission
	Pattern    string
	Action     Action
}

// RolePermissions is the static role to permission mapping.
var RolePermissions = map[Role][]Permission{
	RoleOperator: {PermOperatorDashboard, PermManageUsers, PermManageComplaints, PermListCounselors},
	RoleKonselor: {PermKonselorDashboard, PermManageSchedules, PermReviewCounselings},
	RoleUser:     {PermUserDashboard, PermSubmitComplaint, PermBookCounseling, PermViewHistory},
}

// Rules lists every page and API route each permission opens.
var Rules = []Rule{
	{PermOperatorDashboard, "/operator", ActionView},
	{PermOperatorDashboard, "/operator/dashboard", ActionView},
	{PermManageUsers, "/operator/pengguna", ActionView},
	{PermManageUsers, "/operator/pengguna/*", ActionView},
	{PermManageUsers, "/api/v1/operator/users", WildcardAction},
	{PermManageUsers, "/api/v1/operator/users/*", WildcardAction},
	{PermManageComplaints, "/operator/pengaduan", ActionView},
	{PermManageComplaints, "/operator/pengaduan/*", ActionView},
	{PermManageComplaints, "/api/v1/operator/reports", WildcardAction},
	{PermManageComplaints, "/api/v1/operator/reports/*", WildcardAction},
	{PermListCounselors, "/api/v1/operator/counselors", ActionGet},

	{PermKonselorDashboard, "/konselor", ActionView},
	{PermKonselorDashboard, "/konselor/dashboard", ActionView},
	{PermManageSchedules, "/konselor/jadwal", ActionView},
	{PermManageSchedules, "/api/v1/konselor/schedules", WildcardAction},
	{PermManageSchedules, "/api/v1/konselor/schedules/*", WildcardAction},
	{PermReviewCounselings, "/konselor/konseling", ActionView},
	{PermReviewCounselings, "/api/v1/konselor/counselings", ActionGet},
	{PermReviewCounselings, "/api/v1/konselor/counselings/*", WildcardAction},

	{PermUserDashboard, "/user", ActionView},
	{PermUserDashboard, "/user/dashboard", ActionView},
	{PermSubmitComplaint, "/user/pengaduan", ActionView},
	{PermSubmitComplaint, "/api/v1/user/reports", WildcardAction},
	{PermBookCounseling, "/user/jadwal", ActionView},
	{PermBookCounseling, "/api/v1/user/counselor-schedules", ActionGet},
	{PermBookCounseling, "/api/v1/user/counseling/*", WildcardAction},
	{PermViewHistory, "/user/riwayat", ActionView},
	{PermViewHistory, "/api/v1/user/counselings", ActionGet},
	{PermViewHistory, "/api/v1/user/reports", ActionGet},
}

// SeedDefaultPolicies loads RolePermissions and Rules into e. Existing
// identical policies are skipped.
func SeedDefaultPolicies(e policyStore) error {
	var grouping [][]string
	for role, perms := range RolePermissions {
		for _, p := range perms {
			if !e.HasGroupingPolicy(string(role), string(p)) {
				grouping = append(grouping, []string{string(role), string(p)})
			}
		}
	}
	if len(grouping) > 0 {
		if _, err := e.AddGroupingPolicies(grouping); err != nil {
			return fmt.Errorf("seed role permissions: %w", err)
		}
	}

	var policies [][]string
	for _, r := range Rules {
		if !e.HasPolicy(string(r.Permission), r.Pattern, string(r.Action)) {
			policies = append(policies, []string{string(r.Permission), r.Pattern, string(r.Action)})
		}
	}
	if len(policies) > 0 {
		if _, err := e.AddPolicies(policies); err != nil {
			return fmt.Errorf("seed route rules: %w", err)
		}
	}
	return nil
}
