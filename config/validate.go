package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL))
	}

	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("server.timezone %q: %w", c.Server.Timezone, err))
	}

	switch c.Authentication.Paseto.Mode {
	case "", "local", "public":
	default:
		errs = append(errs, fmt.Errorf("authentication.paseto.mode must be local or public, got %q", c.Authentication.Paseto.Mode))
	}

	if k := c.Authentication.EncryptionKey; k != "" && len(k) != 64 {
		errs = append(errs, errors.New("authentication.encryption_key must be 64 hex characters"))
	}

	if c.Counseling.NavigateDelayMillis < 0 {
		errs = append(errs, errors.New("counseling.navigate_delay_ms must not be negative"))
	}
	if !strings.HasPrefix(c.Counseling.HistoryRoute, "/") {
		errs = append(errs, fmt.Errorf("counseling.history_route %q must start with /", c.Counseling.HistoryRoute))
	}

	if c.Email.Enabled && (c.Email.SMTP.Host == "" || c.Email.From == "") {
		errs = append(errs, errors.New("email.smtp.host and email.from are required when email is enabled"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Location returns the configured local time zone, falling back to
// Asia/Jakarta and finally to a fixed UTC+7 zone.
func (c *Config) Location() *time.Location {
	tz := c.Server.Timezone
	if tz == "" {
		tz = "Asia/Jakarta"
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}
	return time.FixedZone("WIB", 7*60*60)
}

func (c *Config) NavigateDelay() time.Duration {
	return time.Duration(c.Counseling.NavigateDelayMillis) * time.Millisecond
}
