package media

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// Status is the outcome of one resolution attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrorKind classifies a failed resolution.
type ErrorKind string

const (
	InvalidInput             ErrorKind = "invalid_input"
	UnsupportedPlatform      ErrorKind = "unsupported_platform"
	RelayExhausted           ErrorKind = "relay_exhausted"
	UpstreamStructureChanged ErrorKind = "upstream_structure_changed"
	NoMediaFound             ErrorKind = "no_media_found"
	BackendUnavailable       ErrorKind = "backend_unavailable"
	Internal                 ErrorKind = "internal"
)

// Result is the normalized outcome of resolving one URL. Exactly one of the
// success fields (Platform, Title, Thumbnail, Links) or the error fields
// (Message, Kind) is populated.
type Result struct {
	Status    Status
	Platform  Platform
	Title     string
	Thumbnail string
	Links     []Link

	Message string
	Kind    ErrorKind
}

// Success builds a successful result. Links with an empty URL are dropped;
// if none remain the result is a NoMediaFound failure instead.
func Success(platform Platform, title, thumbnail string, links []Link) Result {
	links = lo.Filter(links, func(l Link, _ int) bool { return l.URL != "" })
	if len(links) == 0 {
		return Failure(NoMediaFound, "No media found at this link.")
	}
	if title == "" {
		title = "Media"
	}
	return Result{
		Status:    StatusSuccess,
		Platform:  platform,
		Title:     title,
		Thumbnail: thumbnail,
		Links:     links,
	}
}

// Failure builds an error result. An empty message is replaced with a
// generic one so that error results always carry a message.
func Failure(kind ErrorKind, message string) Result {
	if message == "" {
		message = "Extraction failed."
	}
	return Result{
		Status:  StatusError,
		Message: message,
		Kind:    kind,
	}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Validate checks the structural invariants of a result.
func (r Result) Validate() error {
	switch r.Status {
	case StatusSuccess:
		if len(r.Links) == 0 {
			return fmt.Errorf("success result has no links")
		}
		for i, l := range r.Links {
			if l.URL == "" {
				return fmt.Errorf("link %d has empty URL", i)
			}
		}
		if r.Message != "" || r.Kind != "" {
			return fmt.Errorf("success result carries error fields")
		}
	case StatusError:
		if r.Message == "" {
			return fmt.Errorf("error result has no message")
		}
		if len(r.Links) != 0 {
			return fmt.Errorf("error result carries links")
		}
	default:
		return fmt.Errorf("unknown status %q", r.Status)
	}
	return nil
}

type jsonLink struct {
	Quality     string `json:"quality"`
	URL         string `json:"url"`
	Format      string `json:"format"`
	Ext         string `json:"ext"`
	IsAudioOnly bool   `json:"isAudioOnly,omitempty"`
}

type jsonResult struct {
	Status        Status     `json:"status"`
	Platform      Platform   `json:"platform,omitempty"`
	Title         string     `json:"title,omitempty"`
	Thumbnail     *string    `json:"thumbnail,omitempty"`
	DownloadLinks []jsonLink `json:"downloadLinks,omitempty"`
	Message       string     `json:"message,omitempty"`
	Kind          ErrorKind  `json:"kind,omitempty"`
}

// MarshalJSON encodes the result using the field names the web front end
// consumed (downloadLinks, format, ext).
func (r Result) MarshalJSON() ([]byte, error) {
	out := jsonResult{
		Status:  r.Status,
		Message: r.Message,
		Kind:    r.Kind,
	}
	if r.OK() {
		thumb := r.Thumbnail
		out.Platform = r.Platform
		out.Title = r.Title
		out.Thumbnail = &thumb
		out.DownloadLinks = lo.Map(r.Links, func(l Link, _ int) jsonLink {
			return jsonLink{
				Quality:     l.Quality,
				URL:         l.URL,
				Format:      l.Kind.String(),
				Ext:         l.Extension,
				IsAudioOnly: l.Kind == Audio,
			}
		})
	}
	return json.Marshal(out)
}
