// Package planner is the HTTP client for the external trip-planning service
// that computes routes, HOS-compliant stops and daily duty-status logs.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/platform/obs"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 3
	defaultInitialWait = 200 * time.Millisecond
)

// Options configures a Client. Zero values select defaults.
type Options struct {
	// BaseURL is the service root, e.g. http://localhost:8000/api.
	BaseURL  string
	Timeout  time.Duration
	DriverID int64

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client

	MaxRetries     uint64
	InitialBackoff time.Duration
}

// Client talks to the planner service.
type Client struct {
	base     *url.URL
	session  *http.Client
	driverID int64

	maxRetries     uint64
	initialBackoff time.Duration
}

// TripRequest is the user's input for a new trip.
type TripRequest struct {
	CurrentLocationID int64
	PickupLocationID  int64
	DropoffLocationID int64
	CurrentCycleHours float64
}

// New validates opts and returns a Client.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("planner.New: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("planner.New: base url %q must be http or https", opts.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	c := &Client{
		base:           base,
		session:        opts.HTTPClient,
		driverID:       opts.DriverID,
		maxRetries:     opts.MaxRetries,
		initialBackoff: opts.InitialBackoff,
	}
	if c.session == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.session = &http.Client{Timeout: timeout}
	}
	if c.driverID <= 0 {
		c.driverID = 1
	}
	if c.maxRetries == 0 {
		c.maxRetries = defaultMaxRetries
	}
	if c.initialBackoff <= 0 {
		c.initialBackoff = defaultInitialWait
	}
	return c, nil
}

// ListLocations fetches every location known to the planner.
func (c *Client) ListLocations(ctx context.Context) (locs []domain.Location, err error) {
	const op = "list locations"
	defer obs.Time(ctx, "planner.list_locations")(&err)

	resp, err := c.doWithRetry(ctx, op, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, "locations/", nil)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := decode(resp.Body, &locs); err != nil {
		return nil, &ServiceError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if locs == nil {
		locs = []domain.Location{}
	}
	return locs, nil
}

// CreateTrip registers a trip in status planned. It is never retried: a
// repeated POST could create a second trip.
func (c *Client) CreateTrip(ctx context.Context, in TripRequest) (trip domain.Trip, err error) {
	const op = "create trip"
	defer obs.Time(ctx, "planner.create_trip")(&err)

	body, err := json.Marshal(createTripRequest{
		CurrentLocation:   in.CurrentLocationID,
		PickupLocation:    in.PickupLocationID,
		DropoffLocation:   in.DropoffLocationID,
		CurrentCycleHours: in.CurrentCycleHours,
		Driver:            c.driverID,
		Status:            domain.TripPlanned,
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("planner.Client.CreateTrip: encode: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "trips/", bytes.NewReader(body))
	if err != nil {
		return domain.Trip{}, err
	}
	resp, err := c.do(op, req)
	if err != nil {
		return domain.Trip{}, err
	}
	defer resp.Body.Close()

	if err := decode(resp.Body, &trip); err != nil {
		return domain.Trip{}, &ServiceError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return trip, nil
}

// CalculateRoute asks the planner to compute the route, stops and daily logs
// for an existing trip.
func (c *Client) CalculateRoute(ctx context.Context, tripID int64) (res RouteResult, err error) {
	const op = "calculate route"
	defer obs.Time(ctx, "planner.calculate_route")(&err)

	path := "trips/" + strconv.FormatInt(tripID, 10) + "/calculate_route/"
	resp, err := c.doWithRetry(ctx, op, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, path, nil)
	})
	if err != nil {
		return RouteResult{}, err
	}
	defer resp.Body.Close()

	var body routeResponse
	if err := decode(resp.Body, &body); err != nil {
		return RouteResult{}, &ServiceError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return body.toResult(), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u := c.base.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("planner: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends req and turns transport failures and non-2xx answers into
// *ServiceError. On success the caller owns resp.Body.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, &ServiceError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, &ServiceError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(b),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx) with
// exponential backoff, giving up when ctx is done.
func (c *Client) doWithRetry(ctx context.Context, op string, makeReq func() (*http.Request, error)) (*http.Response, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialBackoff
	b.MaxElapsedTime = 0

	var resp *http.Response
	attempt := func() error {
		req, err := makeReq()
		if err != nil {
			return backoff.Permanent(err)
		}
		r, err := c.do(op, req)
		if err != nil {
			var se *ServiceError
			if errors.As(err, &se) && se.Temporary() && ctx.Err() == nil {
				return err
			}
			return backoff.Permanent(err)
		}
		resp = r
		return nil
	}
	notify := func(err error, wait time.Duration) {
		slog.WarnContext(ctx, "planner request failed, retrying", "op", op, "wait", wait, "error", err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx)
	if err := backoff.RetryNotify(attempt, policy, notify); err != nil {
		return nil, err
	}
	return resp, nil
}

func decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
