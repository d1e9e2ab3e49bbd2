package counseling

import (
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/polijecare/polijecare_web/cmd/cmdutil"
	"github.com/polijecare/polijecare_web/internal/app"
	"github.com/polijecare/polijecare_web/internal/counseling"
	"github.com/polijecare/polijecare_web/internal/service/schedule"
)

func newSlotsCommand() *cobra.Command {
	var counselorID int64

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List a counselor's weekly slots with their next dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cmdutil.NewClient(cmd)
			if err != nil {
				return err
			}
			svc := schedule.New(cli.API, app.NewResolver(cli.Cfg))
			views, err := svc.Views(cmd.Context(), counselorID)
			if err != nil {
				return cmdutil.Describe(err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Hari", "Tanggal", "Jam", "Status"})
			table.SetAutoWrapText(false)
			for _, v := range views {
				table.Append([]string{
					strconv.FormatInt(v.ID, 10),
					v.Day,
					v.Tanggal,
					v.JamMulai.String() + " - " + v.JamSelesai.String(),
					paint(v.Availability),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int64Var(&counselorID, "counselor", 0, "counselor id")
	_ = cmd.MarkFlagRequired("counselor")

	return cmd
}

func paint(a counseling.Availability) string {
	switch a {
	case counseling.Available:
		return color.GreenString(a.Label())
	case counseling.Booked:
		return color.RedString(a.Label())
	default:
		return color.HiBlackString(a.Label())
	}
}
