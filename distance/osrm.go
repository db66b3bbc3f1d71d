package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultOSRMBaseURL is the public demo router's driving profile.
const DefaultOSRMBaseURL = "http://router.project-osrm.org/route/v1/driving"

// OSRMConfig configures the routing client.
type OSRMConfig struct {
	// BaseURL ends with the profile, e.g. ".../route/v1/driving".
	BaseURL string

	// Timeout bounds each request. Default: 10s.
	Timeout time.Duration

	// Interval is the minimum spacing between requests. The public router
	// throttles aggressive clients. Default: 100ms; negative disables pacing.
	Interval time.Duration

	// Client overrides the HTTP client.
	Client *http.Client
}

// OSRM queries an OSRM route service for driving distance.
type OSRM struct {
	base    string
	timeout time.Duration
	client  *http.Client
	limiter *rate.Limiter
}

// NewOSRM applies defaults to cfg and returns a client.
func NewOSRM(cfg OSRMConfig) *OSRM {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOSRMBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Interval == 0 {
		cfg.Interval = 100 * time.Millisecond
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{}
	}
	limit := rate.Inf
	if cfg.Interval > 0 {
		limit = rate.Every(cfg.Interval)
	}

	return &OSRM{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		client:  cfg.Client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// osrmResponse is the subset of the route response we read.
type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"` // metres
	} `json:"routes"`
}

// Distance implements Provider.
func (o *OSRM) Distance(ctx context.Context, from, to City) (float64, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.routeURL(from, to), nil)
	if err != nil {
		return 0, fmt.Errorf("osrm: build request: %w", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("osrm: %s → %s: %w", from.Name, to.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("%w: osrm status %d", ErrUpstream, resp.StatusCode)
	}
	var body osrmResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: osrm decode: %v", ErrUpstream, err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return 0, fmt.Errorf("%w: osrm code %q %s", ErrNoRoute, body.Code, body.Message)
	}

	return body.Routes[0].Distance / 1000, nil
}

// routeURL formats "{base}/{lng1},{lat1};{lng2},{lat2}?overview=false".
func (o *OSRM) routeURL(from, to City) string {
	var b strings.Builder
	b.Grow(len(o.base) + 64)
	b.WriteString(o.base)
	b.WriteByte('/')
	b.WriteString(coord(from.Lng))
	b.WriteByte(',')
	b.WriteString(coord(from.Lat))
	b.WriteByte(';')
	b.WriteString(coord(to.Lng))
	b.WriteByte(',')
	b.WriteString(coord(to.Lat))
	b.WriteString("?overview=false")

	return b.String()
}

func coord(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
