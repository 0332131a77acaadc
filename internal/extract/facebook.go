package extract

import (
	"context"
	"fmt"
	"strings"

	"linkgrab/internal/media"
)

const (
	facebookFailure = "Facebook extraction failed. Video might be private."
	facebookNoVideo = "No Facebook video found. Video might be private."
)

var (
	facebookHD = jsonField("playable_url_quality_hd")
	facebookSD = jsonField("playable_url")
)

// Facebook scrapes the lighter mobile page for playable URLs.
type Facebook struct {
	deps Deps
}

// NewFacebook creates a Facebook extractor.
func NewFacebook(deps Deps) *Facebook {
	return &Facebook{deps: deps.withDefaults()}
}

func (f *Facebook) Platform() media.Platform { return media.Facebook }

// MobileURL swaps the desktop host for the mobile one.
func MobileURL(pageURL string) string {
	return strings.Replace(pageURL, "www.facebook.com", "m.facebook.com", 1)
}

// Extract resolves a Facebook video page, preferring the HD stream.
func (f *Facebook) Extract(ctx context.Context, pageURL string) media.Result {
	html, err := f.deps.Relay.Fetch(ctx, MobileURL(pageURL))
	if err != nil {
		return fail(f.deps.Log, media.Facebook, media.RelayExhausted, facebookFailure, err)
	}

	raw, idx := firstField(html, facebookHD, facebookSD)
	if idx < 0 {
		return fail(f.deps.Log, media.Facebook, media.NoMediaFound, facebookNoVideo,
			fmt.Errorf("no playable_url in page source"))
	}

	quality := "HD"
	if idx == 1 {
		quality = "SD"
	}

	// Page JSON escapes slashes and ampersands; drop what remains after
	// decoding the known sequences.
	videoURL := strings.ReplaceAll(unescapeURL(raw), `\`, "")

	meta := parseMeta(html)
	title := meta.first("og:title", "twitter:title")
	if title == "" {
		title = "Facebook Video"
	}

	return media.Success(media.Facebook, title, meta.first("og:image"), []media.Link{
		media.NewLink(quality, videoURL, media.Video, "mp4"),
	})
}
