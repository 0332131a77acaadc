package extract

import (
	"context"
	"fmt"

	"linkgrab/internal/media"
)

const (
	twitterFailure = "Twitter/X extraction failed."
	twitterNoVideo = "Twitter/X video not found."
)

var twitterContentURL = jsonField("contentUrl")

// Twitter reads the structured contentUrl of a post, falling back to its
// og:video meta tag.
type Twitter struct {
	deps Deps
}

// NewTwitter creates a Twitter/X extractor.
func NewTwitter(deps Deps) *Twitter {
	return &Twitter{deps: deps.withDefaults()}
}

func (t *Twitter) Platform() media.Platform { return media.Twitter }

// Extract resolves a Twitter/X post URL.
func (t *Twitter) Extract(ctx context.Context, pageURL string) media.Result {
	html, err := t.deps.Relay.Fetch(ctx, pageURL)
	if err != nil {
		return fail(t.deps.Log, media.Twitter, media.RelayExhausted, twitterFailure, err)
	}

	meta := parseMeta(html)

	videoURL, ok := fieldValue(html, twitterContentURL)
	if ok {
		videoURL = unescapeURL(videoURL)
	} else {
		videoURL = meta.first("og:video", "og:video:url", "og:video:secure_url")
	}
	if videoURL == "" {
		return fail(t.deps.Log, media.Twitter, media.NoMediaFound, twitterNoVideo,
			fmt.Errorf("no contentUrl or og:video in page"))
	}

	title := meta.first("og:title", "twitter:title")
	if title == "" {
		title = "X / Twitter Media"
	}

	return media.Success(media.Twitter, title, meta.first("og:image", "twitter:image"), []media.Link{
		media.NewLink("Best", videoURL, media.Video, "mp4"),
	})
}
