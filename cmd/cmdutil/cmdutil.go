// Package cmdutil holds what every CLI command needs: config, logger and
// an API client authenticated with the stored token.
package cmdutil

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/internal/app"
	"github.com/polijecare/polijecare_web/internal/service/auth"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/logs"
	"github.com/polijecare/polijecare_web/pkg/tokenstore"
)

// LoadConfig reads the file named by the persistent --config flag.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}

// UseCLILogger installs the quiet stderr logger, or a debug one with
// --verbose.
func UseCLILogger(cmd *cobra.Command) {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	slog.SetDefault(logs.NewCLI(verbose))
}

// Client is the API client of interactive commands together with the
// credentials file it reads its token from.
type Client struct {
	Cfg    *config.Config
	API    *apiclient.Client
	Tokens *tokenstore.FileStore
}

func NewClient(cmd *cobra.Command) (*Client, error) {
	UseCLILogger(cmd)
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	store, err := tokenstore.New(cfg.CLI.CredentialsPath)
	if err != nil {
		return nil, err
	}
	api, err := app.NewAPIClient(cfg, apiclient.WithTokenSource(store))
	if err != nil {
		return nil, err
	}
	return &Client{Cfg: cfg, API: api, Tokens: store}, nil
}

// Describe turns an error into what the terminal shows: the API's own
// message when it has one.
func Describe(err error) error {
	if apiErr, ok := apiclient.AsError(err); ok {
		if apiErr.Status == 401 {
			return errors.New("token tidak berlaku lagi, jalankan `polijecare auth login`")
		}
		if msg := apiErr.Display(); msg != "" {
			return errors.New(msg)
		}
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return errors.New("email atau kata sandi salah")
	}
	return err
}
