// Package counseling exposes the schedule resolver and the booking flow on
// the command line.
package counseling

import (
	"github.com/spf13/cobra"
)

func NewCounselingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counseling",
		Short: "Resolve counselor schedules and book counseling sessions",
	}

	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newSlotsCommand())
	cmd.AddCommand(newBookCommand())
	cmd.AddCommand(newStatusCommand())

	return cmd
}
