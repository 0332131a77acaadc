package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"

	"linkgrab/internal/media"
)

const tiktokFailure = "TikTok extraction failed. Link might be invalid."

// Candidate video fields in priority order.
var tiktokVideoFields = [...]string{"playAddr", "downloadAddr", "contentUrl"}

var tiktokPatterns = []*regexp.Regexp{
	jsonField(tiktokVideoFields[0]),
	jsonField(tiktokVideoFields[1]),
	jsonField(tiktokVideoFields[2]),
}

// TikTok combines oEmbed metadata with the video address embedded in the page.
type TikTok struct {
	deps Deps
}

// NewTikTok creates a TikTok extractor.
func NewTikTok(deps Deps) *TikTok {
	return &TikTok{deps: deps.withDefaults()}
}

func (t *TikTok) Platform() media.Platform { return media.TikTok }

type tiktokOEmbed struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	AuthorName   string `json:"author_name"`
}

// Extract resolves a TikTok video page.
func (t *TikTok) Extract(ctx context.Context, pageURL string) media.Result {
	meta := t.oembed(ctx, pageURL)

	html, err := t.deps.Relay.Fetch(ctx, pageURL)
	if err != nil {
		return fail(t.deps.Log, media.TikTok, media.RelayExhausted, tiktokFailure, err)
	}

	raw, idx := firstField(html, tiktokPatterns...)
	if idx < 0 {
		return fail(t.deps.Log, media.TikTok, media.NoMediaFound, tiktokFailure,
			fmt.Errorf("none of %v found in page", tiktokVideoFields))
	}
	t.deps.Log.WithField("field", tiktokVideoFields[idx]).Debug("tiktok video address found")

	title := meta.Title
	if title == "" {
		title = "TikTok Video"
	}

	return media.Success(media.TikTok, title, meta.ThumbnailURL, []media.Link{
		media.NewLink("HD (No Watermark)", unescapeURL(raw), media.Video, "mp4"),
	})
}

// oembed fetches title and thumbnail. Metadata is optional: any failure
// is logged and an empty value returned so the page can still be scraped.
func (t *TikTok) oembed(ctx context.Context, pageURL string) tiktokOEmbed {
	var meta tiktokOEmbed

	body, err := t.deps.Relay.Fetch(ctx, "https://www.tiktok.com/oembed?url="+url.QueryEscape(pageURL))
	if err != nil {
		t.deps.Log.WithError(err).Debug("tiktok oembed unavailable")
		return meta
	}
	if err := json.Unmarshal([]byte(body), &meta); err != nil {
		t.deps.Log.WithError(err).Debug("tiktok oembed unparsable")
		return tiktokOEmbed{}
	}
	return meta
}
