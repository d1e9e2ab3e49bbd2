// Package auth holds the login commands of the CLI. The API token is kept in
// the credentials file so later commands can reuse it.
package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/polijecare/polijecare_web/cmd/cmdutil"
	authsvc "github.com/polijecare/polijecare_web/internal/service/auth"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
)

func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in to the PolijeCare API",
	}

	cmd.AddCommand(newLoginCommand())
	cmd.AddCommand(newLogoutCommand())
	cmd.AddCommand(newWhoamiCommand())

	return cmd
}

func newLoginCommand() *cobra.Command {
	var (
		email         string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the API token",
		Example: `  polijecare auth login --email budi@student.polije.ac.id --password-stdin < pass.txt
  polijecare auth login --email operator@polije.ac.id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cmdutil.NewClient(cmd)
			if err != nil {
				return err
			}

			if passwordStdin || password == "" {
				if !passwordStdin {
					fmt.Fprint(cmd.ErrOrStderr(), "Kata sandi: ")
				}
				password, err = readLine(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}

			svc := authsvc.New(cli.API, nil, nil)
			token, u, err := svc.Authenticate(cmd.Context(), authsvc.LoginRequest{Email: email, Password: password})
			if err != nil {
				return cmdutil.Describe(err)
			}
			if err := cli.Tokens.Save(token); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Masuk sebagai %s <%s> (%s)\n", u.Name, u.Email, u.Role)
			fmt.Fprintf(cmd.OutOrStdout(), "Token disimpan di %s\n", cli.Tokens.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored token and forget it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cmdutil.NewClient(cmd)
			if err != nil {
				return err
			}
			if _, err := cli.Tokens.Token(cmd.Context()); errors.Is(err, apiclient.ErrNoToken) {
				fmt.Fprintln(cmd.OutOrStdout(), "Belum masuk.")
				return nil
			}

			if err := cli.API.Post(cmd.Context(), "/logout", nil, nil); err != nil {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "peringatan: %v\n", cmdutil.Describe(err))
			}
			if err := cli.Tokens.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Anda telah keluar.")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account the stored token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cmdutil.NewClient(cmd)
			if err != nil {
				return err
			}
			if _, err := cli.Tokens.Token(cmd.Context()); errors.Is(err, apiclient.ErrNoToken) {
				return errors.New("belum masuk, jalankan `polijecare auth login`")
			}

			u, err := authsvc.New(cli.API, nil, nil).Me(cmd.Context())
			if err != nil {
				return cmdutil.Describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nperan: %s\nid: %d\n", u.Name, u.Email, u.Role, u.ID)
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
