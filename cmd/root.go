package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	authcmd "github.com/polijecare/polijecare_web/cmd/auth"
	counselingcmd "github.com/polijecare/polijecare_web/cmd/counseling"
	httpcmd "github.com/polijecare/polijecare_web/cmd/http"
	systemcmd "github.com/polijecare/polijecare_web/cmd/system"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "polijecare",
	Short: "PolijeCare web tier and command-line client.",
	Long: `PolijeCare is the complaint and counseling service of the campus task force.
This binary runs the web tier in front of the PolijeCare API and doubles as a
command-line client for the same API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output of CLI commands")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
	rootCmd.AddCommand(authcmd.NewAuthCommand())
	rootCmd.AddCommand(counselingcmd.NewCounselingCommand())
}
