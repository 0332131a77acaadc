// Package extract turns platform page URLs into direct media links.
// Each supported platform has its own Extractor; all of them report
// failures as error-shaped results instead of Go errors.
package extract

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"linkgrab/internal/httputil"
	"linkgrab/internal/media"
	"linkgrab/internal/relay"
)

// Extractor resolves one platform's page URLs into media links.
type Extractor interface {
	// Platform returns the tag this extractor handles.
	Platform() media.Platform

	// Extract resolves url. It never panics on upstream data and always
	// returns a result that satisfies media.Result.Validate.
	Extract(ctx context.Context, url string) media.Result
}

// PageFetcher retrieves a third-party page through the relay set.
type PageFetcher interface {
	Fetch(ctx context.Context, target string) (string, error)
}

// Deps carries the collaborators shared by all extractors.
type Deps struct {
	Relay     PageFetcher
	Client    *http.Client // direct calls (YouTube backend)
	UserAgent string
	Log       logrus.FieldLogger
}

func (d Deps) withDefaults() Deps {
	if d.Client == nil {
		d.Client = httputil.NewClient()
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	return d
}

// fail logs the underlying cause and returns a curated error result.
// Relay exhaustion is reported as such regardless of the kind the caller
// would otherwise use, since no upstream content was ever seen.
func fail(log logrus.FieldLogger, p media.Platform, kind media.ErrorKind, message string, cause error) media.Result {
	if cause != nil && errors.Is(cause, relay.ErrRelayExhausted) {
		kind = media.RelayExhausted
	}
	entry := log.WithFields(logrus.Fields{
		"platform": string(p),
		"kind":     string(kind),
	})
	if cause != nil {
		entry = entry.WithError(cause)
	}
	entry.Debug("extraction failed")
	return media.Failure(kind, message)
}
