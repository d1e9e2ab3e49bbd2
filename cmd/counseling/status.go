package counseling

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/polijecare/polijecare_web/cmd/cmdutil"
	"github.com/polijecare/polijecare_web/internal/counseling"
	"github.com/polijecare/polijecare_web/internal/service/counselingsvc"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the progress of the latest counseling request",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cmdutil.NewClient(cmd)
			if err != nil {
				return err
			}
			page, err := counselingsvc.ListHistory(cmd.Context(), cli.API, apiclient.ListParams{Page: 1, PerPage: 1})
			if err != nil {
				return cmdutil.Describe(err)
			}

			out := cmd.OutOrStdout()
			if len(page.Items) == 0 {
				fmt.Fprintln(out, counseling.EmptyTrackerMessage)
				return nil
			}
			latest := page.Items[0]
			fmt.Fprintf(out, "Konseling #%d  %s %s - %s\n", latest.ID, latest.Tanggal, latest.JamMulai, latest.JamSelesai)
			printTracker(cmd, latest.Tracker)
			if latest.Catatan != "" {
				fmt.Fprintf(out, "Catatan: %s\n", latest.Catatan)
			}
			return nil
		},
	}
}

func printTracker(cmd *cobra.Command, t counseling.Tracker) {
	out := cmd.OutOrStdout()
	if t.Empty {
		fmt.Fprintln(out, t.Placeholder)
		return
	}
	for _, s := range t.Steps {
		switch {
		case s.Current:
			color.New(color.FgCyan, color.Bold).Fprintf(out, "  ● %s\n", s.Label)
		case s.Done:
			color.New(color.FgGreen).Fprintf(out, "  ✓ %s\n", s.Label)
		default:
			color.New(color.FgHiBlack).Fprintf(out, "  ○ %s\n", s.Label)
		}
	}
}
