// Package geocode resolves free-text addresses and map clicks against an
// OpenStreetMap Nominatim instance for the complaint location picker.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/polijecare/polijecare_web/config"
)

const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	maxLimit       = 10
)

var (
	ErrDisabled     = errors.New("geocoding is disabled")
	ErrEmptyQuery   = errors.New("query is required")
	ErrInvalidPoint = errors.New("latitude/longitude out of range")
	ErrNotFound     = errors.New("no place found")
	ErrUpstream     = errors.New("geocoding service unavailable")
)

// Place is one Nominatim result.
type Place struct {
	PlaceID     int64   `json:"place_id"`
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Type        string  `json:"type,omitempty"`
}

type nominatimPlace struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	Error       string `json:"error"`
}

func (p nominatimPlace) place() (Place, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	return Place{PlaceID: p.PlaceID, DisplayName: p.DisplayName, Latitude: lat, Longitude: lon, Type: p.Type}, nil
}

type Geocoder interface {
	Search(ctx context.Context, q string, limit int) ([]Place, error)
	Reverse(ctx context.Context, lat, lon float64) (Place, error)
}

type Client struct {
	enabled      bool
	baseURL      string
	userAgent    string
	countryCodes string
	http         *http.Client
	limiter      *rate.Limiter
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(cfg config.GeocodingConfig, opts ...Option) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "polijecare-web"
	}

	c := &Client{
		enabled:      cfg.Enabled,
		baseURL:      base,
		userAgent:    ua,
		countryCodes: cfg.CountryCodes,
		http:         &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(rate.Limit(rps), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search looks up q and returns at most limit places.
func (c *Client) Search(ctx context.Context, q string, limit int) ([]Place, error) {
	if !c.enabled {
		return nil, ErrDisabled
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 || limit > maxLimit {
		limit = 5
	}

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("q", q)
	params.Set("limit", strconv.Itoa(limit))
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}

	var raw []nominatimPlace
	if err := c.get(ctx, "/search", params, &raw); err != nil {
		return nil, err
	}

	out := make([]Place, 0, len(raw))
	for _, r := range raw {
		p, err := r.place()
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Reverse returns the address nearest to lat/lon.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (Place, error) {
	if !c.enabled {
		return Place{}, ErrDisabled
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Place{}, ErrInvalidPoint
	}

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var raw nominatimPlace
	if err := c.get(ctx, "/reverse", params, &raw); err != nil {
		return Place{}, err
	}
	if raw.Error != "" {
		return Place{}, ErrNotFound
	}
	p, err := raw.place()
	if err != nil {
		return Place{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "id,en")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return nil
}
