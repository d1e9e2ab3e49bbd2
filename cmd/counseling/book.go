package counseling

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/polijecare/polijecare_web/cmd/cmdutil"
	"github.com/polijecare/polijecare_web/internal/app"
	"github.com/polijecare/polijecare_web/internal/counseling"
	"github.com/polijecare/polijecare_web/internal/service/counselingsvc"
	"github.com/polijecare/polijecare_web/internal/service/schedule"
)

func newBookCommand() *cobra.Command {
	var (
		counselorID int64
		scheduleID  int64
		complaintID int64
		jenis       string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a counseling session for an existing complaint",
		Example: `  polijecare counseling book --counselor 3 --schedule 12 --complaint 42 --jenis "Kekerasan Verbal"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cmdutil.NewClient(cmd)
			if err != nil {
				return err
			}
			resolver := app.NewResolver(cli.Cfg)

			slots, err := schedule.New(cli.API, resolver).ForCounselor(cmd.Context(), counselorID)
			if err != nil {
				return cmdutil.Describe(err)
			}
			slot, found := counseling.FindSlot(slots, scheduleID)
			if !found {
				return fmt.Errorf("jadwal %d tidak ditemukan untuk konselor %d", scheduleID, counselorID)
			}

			out := cmd.OutOrStdout()
			navigated := make(chan string, 1)
			cfg := counselingsvc.FlowConfig(cli.Cfg)
			cfg.Navigator = counseling.NavigatorFunc(func(route string) { navigated <- route })

			flow := counseling.NewFlow(resolver, counselingsvc.NewSubmitter(cli.API), cfg)
			defer flow.Close()
			flow.SetComplaint(complaintID, jenis)

			if !flow.Select(slot) {
				return fmt.Errorf("jadwal %s %s sudah tidak tersedia (%s)",
					slot.Hari, slot.JamMulai, slot.Availability().Label())
			}

			res, err := flow.Submit(cmd.Context())
			if err != nil {
				return errors.New(counseling.DisplayError(err))
			}

			color.New(color.FgGreen).Fprintln(out, "Jadwal konseling berhasil diajukan.")
			fmt.Fprintf(out, "  tanggal : %s\n  jam     : %s - %s\n  metode  : %s\n  lokasi  : %s\n",
				res.Booking.Tanggal, res.Booking.JamMulai, res.Booking.JamSelesai, res.Booking.Metode, res.Booking.Lokasi)

			select {
			case route := <-navigated:
				fmt.Fprintf(out, "Lihat riwayat di %s\n", route)
			case <-time.After(res.RedirectAfter + time.Second):
			case <-cmd.Context().Done():
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&counselorID, "counselor", 0, "counselor id")
	cmd.Flags().Int64Var(&scheduleID, "schedule", 0, "schedule slot id")
	cmd.Flags().Int64Var(&complaintID, "complaint", 0, "id of the complaint the session is for")
	cmd.Flags().StringVar(&jenis, "jenis", "", "complaint category")
	for _, f := range []string{"counselor", "schedule", "complaint"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}
