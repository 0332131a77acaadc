// Package platform classifies page URLs into supported platform tags.
package platform

import (
	"strings"

	"github.com/samber/lo"

	"linkgrab/internal/httputil"
	"linkgrab/internal/media"
)

// Signature lists the substrings that identify a platform.
type Signature struct {
	Platform media.Platform
	Needles  []string
}

// DefaultSignatures returns the built-in signatures in detection order.
// Order matters: the first signature with a matching needle wins.
func DefaultSignatures() []Signature {
	return []Signature{
		{Platform: media.YouTube, Needles: []string{"youtube.com", "youtu.be"}},
		{Platform: media.Instagram, Needles: []string{"instagram.com"}},
		{Platform: media.TikTok, Needles: []string{"tiktok.com"}},
		{Platform: media.Facebook, Needles: []string{"facebook.com", "fb.watch"}},
		{Platform: media.Twitter, Needles: []string{"twitter.com", "x.com"}},
	}
}

// Detector matches URLs against an ordered signature list.
type Detector struct {
	signatures []Signature
}

// NewDetector creates a Detector. With no signatures the defaults are used.
func NewDetector(signatures ...Signature) *Detector {
	if len(signatures) == 0 {
		signatures = DefaultSignatures()
	}
	cp := make([]Signature, len(signatures))
	for i, s := range signatures {
		cp[i] = Signature{
			Platform: s.Platform,
			Needles:  lo.Map(s.Needles, func(n string, _ int) string { return strings.ToLower(n) }),
		}
	}
	return &Detector{signatures: cp}
}

// Detect returns the platform of rawURL, or media.Unknown.
// The query string and fragment are ignored so that tracking parameters
// can neither cause nor change a match.
func (d *Detector) Detect(rawURL string) media.Platform {
	subject := strings.ToLower(httputil.StripQuery(strings.TrimSpace(rawURL)))
	for _, s := range d.signatures {
		for _, needle := range s.Needles {
			if strings.Contains(subject, needle) {
				return s.Platform
			}
		}
	}
	return media.Unknown
}

// Signatures returns a copy of the signature table.
func (d *Detector) Signatures() []Signature {
	return lo.Map(d.signatures, func(s Signature, _ int) Signature {
		return Signature{Platform: s.Platform, Needles: append([]string(nil), s.Needles...)}
	})
}

// Supported returns the display names of the detectable platforms in order.
func (d *Detector) Supported() []string {
	return lo.Uniq(lo.Map(d.signatures, func(s Signature, _ int) string {
		return s.Platform.DisplayName()
	}))
}
