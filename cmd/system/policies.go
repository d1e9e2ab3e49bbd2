package system

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/polijecare/polijecare_web/cmd/cmdutil"
	"github.com/polijecare/polijecare_web/pkg/authorize"
)

// NewPoliciesCommand prints the effective role model: each role's
// permissions, landing page and the routes it may reach.
func NewPoliciesCommand() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "policies",
		Short: "Print the role, permission and route policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdutil.UseCLILogger(cmd)
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			e, err := authorize.NewEnforcerFromConfig(cfg)
			if err != nil {
				return err
			}
			auth, err := authorize.NewAuthorization(e)
			if err != nil {
				return err
			}

			roles := []authorize.Role{authorize.RoleOperator, authorize.RoleKonselor, authorize.RoleUser}
			if role != "" {
				r, ok := authorize.ParseRole(role)
				if !ok {
					return fmt.Errorf("unknown role %q", role)
				}
				roles = []authorize.Role{r}
			}

			out := cmd.OutOrStdout()
			for _, r := range roles {
				perms := auth.PermissionsFor(context.Background(), r)
				fmt.Fprintf(out, "\n%s  (landing: %s)\n", strings.ToUpper(string(r)), authorize.DefaultRedirect(r))

				table := tablewriter.NewWriter(out)
				table.SetHeader([]string{"Permission", "Route", "Action"})
				table.SetAutoWrapText(false)
				table.SetAutoMergeCells(true)
				for _, p := range perms {
					for _, rule := range rulesOf(p) {
						table.Append([]string{string(p), rule.Pattern, string(rule.Action)})
					}
				}
				table.Render()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "only print this role (operator, konselor, user)")

	return cmd
}

func rulesOf(p authorize.Permission) []authorize.Rule {
	var out []authorize.Rule
	for _, r := range authorize.Rules {
		if r.Permission == p {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}
