package relay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"linkgrab/internal/httputil"
)

// ErrRelayExhausted is matched by the error returned when every relay failed.
var ErrRelayExhausted = errors.New("all relays failed")

// errProxyFailure marks a 2xx response whose body is the relay's own error page.
var errProxyFailure = errors.New("proxy returned internal error")

// AttemptError records why one relay attempt failed.
type AttemptError struct {
	Index int
	Relay string
	Err   error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("relay %d (%s): %v", e.Index+1, e.Relay, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

// ExhaustedError is returned when no relay produced a usable body.
type ExhaustedError struct {
	Target   string
	Attempts *multierror.Error
	Last     error
}

func (e *ExhaustedError) Error() string {
	last := "unknown"
	if e.Last != nil {
		last = e.Last.Error()
	}
	return fmt.Sprintf("all relays failed for %s. last error: %s", e.Target, last)
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrRelayExhausted
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Fetcher tries each relay of a Set in order and returns the first usable body.
// It holds no per-call state, so one Fetcher can serve concurrent callers.
type Fetcher struct {
	relays    Set
	client    *http.Client
	markers   []string
	timeout   time.Duration
	userAgent string
	log       logrus.FieldLogger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client used for relay requests.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithFailureMarkers replaces the proxy failure signatures.
func WithFailureMarkers(markers []string) Option {
	return func(f *Fetcher) { f.markers = append([]string(nil), markers...) }
}

// WithTimeout bounds each relay attempt. Zero disables the per-attempt bound.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithUserAgent sets the User-Agent sent to relays.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithLogger sets the logger used for per-attempt diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(f *Fetcher) { f.log = l }
}

// NewFetcher creates a Fetcher over relays.
func NewFetcher(relays Set, opts ...Option) *Fetcher {
	f := &Fetcher{
		relays:  relays,
		client:  httputil.NewClient(),
		markers: append([]string(nil), DefaultFailureMarkers...),
		timeout: 15 * time.Second,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Relays returns the relay set in use.
func (f *Fetcher) Relays() Set {
	return f.relays
}

// Fetch retrieves target through the first relay that answers with a usable
// body. Relays are tried strictly in order, each at most once, without delay.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	var attempts *multierror.Error
	var last error

	for i, t := range f.relays.templates {
		if err := ctx.Err(); err != nil {
			last = err
			attempts = multierror.Append(attempts, err)
			break
		}

		entry := f.log.WithFields(logrus.Fields{
			"relay":   t.Host(),
			"attempt": i + 1,
		})

		body, err := f.attempt(ctx, t, target)
		if err == nil {
			entry.Debug("relay succeeded")
			return body, nil
		}

		entry.WithError(err).Debug("relay failed")
		last = &AttemptError{Index: i, Relay: t.Host(), Err: err}
		attempts = multierror.Append(attempts, last)
	}

	return "", &ExhaustedError{
		Target:   target,
		Attempts: attempts,
		Last:     last,
	}
}

func (f *Fetcher) attempt(ctx context.Context, t Template, target string) (string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	body, err := httputil.GetBody(ctx, f.client, t.Wrap(target), httputil.RequestOptions{
		UserAgent: f.userAgent,
		Accept:    httputil.AcceptAny,
	})
	if err != nil {
		return "", err
	}

	text := string(body)
	for _, marker := range f.markers {
		if marker != "" && strings.Contains(text, marker) {
			return "", fmt.Errorf("%w: body contains %q", errProxyFailure, marker)
		}
	}
	return text, nil
}
