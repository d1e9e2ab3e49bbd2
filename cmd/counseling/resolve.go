package counseling

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/polijecare/polijecare_web/cmd/cmdutil"
	"github.com/polijecare/polijecare_web/internal/counseling"
)

func newResolveCommand() *cobra.Command {
	var (
		strict bool
		from   string
	)

	cmd := &cobra.Command{
		Use:   "resolve <hari>...",
		Short: "Print the next date of each Indonesian day name",
		Example: `  polijecare counseling resolve senin rabu
  polijecare counseling resolve jumat --from 2026-01-09`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdutil.UseCLILogger(cmd)
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			loc := cfg.Location()

			opts := []counseling.ResolverOption{counseling.WithStrictWeekday(strict || cfg.Counseling.StrictWeekday)}
			if from != "" {
				day, err := time.ParseInLocation(time.DateOnly, from, loc)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				opts = append(opts, counseling.WithNow(func() time.Time { return day }))
			}
			resolver := counseling.NewResolver(loc, opts...)

			out := cmd.OutOrStdout()
			for _, hari := range args {
				date, err := resolver.ResolveDate(hari)
				if err != nil {
					fmt.Fprintf(out, "%-10s  %v\n", hari, err)
					continue
				}
				fmt.Fprintf(out, "%-10s  %s\n", hari, date)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unknown day names instead of using today")
	cmd.Flags().StringVar(&from, "from", "", "resolve relative to this date (YYYY-MM-DD) instead of today")

	return cmd
}
