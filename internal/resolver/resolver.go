// Package resolver is the entry point that turns an arbitrary page URL into
// an ExtractionResult: it validates input, detects the platform and hands
// the URL to that platform's extractor.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"linkgrab/internal/config"
	"linkgrab/internal/extract"
	"linkgrab/internal/httputil"
	"linkgrab/internal/media"
	"linkgrab/internal/platform"
	"linkgrab/internal/relay"
)

// Resolver routes URLs to platform extractors. It holds no per-call state
// and is safe for concurrent use.
type Resolver struct {
	detector   *platform.Detector
	extractors map[media.Platform]extract.Extractor
	log        logrus.FieldLogger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDetector replaces the platform detector.
func WithDetector(d *platform.Detector) Option {
	return func(r *Resolver) { r.detector = d }
}

// WithExtractors registers extractors, replacing any for the same platform.
func WithExtractors(exts ...extract.Extractor) Option {
	return func(r *Resolver) {
		for _, e := range exts {
			r.extractors[e.Platform()] = e
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Resolver) { r.log = l }
}

// New creates a Resolver with no extractors registered beyond those given
// in opts. Use FromConfig for the standard wiring.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		detector:   platform.NewDetector(),
		extractors: map[media.Platform]extract.Extractor{},
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromConfig builds the relay fetcher and the five platform extractors
// from cfg.
func FromConfig(cfg *config.Config, log logrus.FieldLogger) (*Resolver, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	relays, err := relay.NewSet(cfg.Relays...)
	if err != nil {
		return nil, fmt.Errorf("building relay set: %w", err)
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	client := httputil.NewClient()
	fetcher := relay.NewFetcher(relays,
		relay.WithClient(client),
		relay.WithFailureMarkers(cfg.FailureMarkers),
		relay.WithTimeout(timeout),
		relay.WithUserAgent(cfg.UserAgent),
		relay.WithLogger(log),
	)

	deps := extract.Deps{
		Relay:     fetcher,
		Client:    client,
		UserAgent: cfg.UserAgent,
		Log:       log,
	}

	return New(
		WithLogger(log),
		WithExtractors(
			extract.NewYouTube(cfg.YouTubeBackend, deps),
			extract.NewInstagram(deps),
			extract.NewTikTok(deps),
			extract.NewFacebook(deps),
			extract.NewTwitter(deps),
		),
	), nil
}

// Detector returns the platform detector in use.
func (r *Resolver) Detector() *platform.Detector {
	return r.detector
}

// Resolve turns rawURL into a result. It never returns a Go error and
// never retries; relay failover happens inside the extractors.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (result media.Result) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return media.Failure(media.InvalidInput, "URL is required")
	}

	if !hasScheme(rawURL) {
		rawURL = "https://" + rawURL
	}
	if _, err := httputil.ValidateInputURL(rawURL); err != nil {
		r.log.WithError(err).Debug("rejected input URL")
		return media.Failure(media.InvalidInput, "Invalid URL. Paste a full link starting with https://")
	}

	p := r.detector.Detect(rawURL)
	ext, ok := r.extractors[p]
	if p == media.Unknown || !ok {
		return media.Failure(media.UnsupportedPlatform,
			fmt.Sprintf("Platform not detected. Supported: %s.", strings.Join(r.detector.Supported(), ", ")))
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.WithFields(logrus.Fields{
				"platform": string(p),
				"panic":    rec,
			}).Error("extractor panicked")
			result = media.Failure(media.Internal, fmt.Sprintf("Unexpected error: %v", rec))
		}
	}()

	r.log.WithFields(logrus.Fields{"platform": string(p), "url": rawURL}).Debug("dispatching")
	return ext.Extract(ctx, rawURL)
}

// hasScheme reports whether raw starts with "scheme://". Only the text
// before the first '/', '?' or '#' counts, so a URL carried in the query
// string does not.
func hasScheme(raw string) bool {
	end := strings.IndexAny(raw, "/?#")
	if end < 0 {
		return false
	}
	return strings.HasSuffix(raw[:end], ":") && strings.HasPrefix(raw[end:], "//")
}
