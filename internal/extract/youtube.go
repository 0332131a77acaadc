package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"linkgrab/internal/httputil"
	"linkgrab/internal/media"
)

// DefaultYouTubeBackend resolves YouTube URLs server-side, so no relay is needed.
const DefaultYouTubeBackend = "https://ytdl-six.vercel.app/api"

const youtubeFailure = "YouTube extraction failed. The API may be rate limited."

// YouTube delegates resolution to a dedicated backend service.
type YouTube struct {
	backend string
	deps    Deps
}

// NewYouTube creates a YouTube extractor using the given backend base URL.
func NewYouTube(backend string, deps Deps) *YouTube {
	if backend == "" {
		backend = DefaultYouTubeBackend
	}
	return &YouTube{backend: backend, deps: deps.withDefaults()}
}

func (y *YouTube) Platform() media.Platform { return media.YouTube }

// flexString accepts either a JSON string or a number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type backendFormat struct {
	QualityLabel flexString `json:"qualityLabel"`
	Quality      flexString `json:"quality"`
	URL          string     `json:"url"`
	Ext          string     `json:"ext"`
	MimeType     string     `json:"mimeType"`
}

type backendThumbnail struct {
	URL string `json:"url"`
}

type backendResponse struct {
	Title      string             `json:"title"`
	Thumbnail  string             `json:"thumbnail"`
	Thumbnails []backendThumbnail `json:"thumbnails"`
	URL        string             `json:"url"`
	Formats    []backendFormat    `json:"formats"`
}

// Extract asks the backend for the formats of a YouTube video.
func (y *YouTube) Extract(ctx context.Context, pageURL string) media.Result {
	apiURL, err := y.requestURL(pageURL)
	if err != nil {
		return fail(y.deps.Log, media.YouTube, media.BackendUnavailable, youtubeFailure, err)
	}

	body, err := httputil.GetBody(ctx, y.deps.Client, apiURL, httputil.RequestOptions{
		UserAgent: y.deps.UserAgent,
		Accept:    httputil.AcceptJSON,
	})
	if err != nil {
		return fail(y.deps.Log, media.YouTube, media.BackendUnavailable, youtubeFailure,
			fmt.Errorf("calling backend: %w", err))
	}

	var resp backendResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fail(y.deps.Log, media.YouTube, media.BackendUnavailable, youtubeFailure,
			fmt.Errorf("parsing backend response: %w", err))
	}

	links := resp.links()
	if len(links) == 0 {
		return fail(y.deps.Log, media.YouTube, media.NoMediaFound, youtubeFailure,
			fmt.Errorf("no download links returned from backend"))
	}

	title := resp.Title
	if title == "" {
		title = "YouTube Video"
	}
	thumb := resp.Thumbnail
	if thumb == "" && len(resp.Thumbnails) > 0 {
		thumb = resp.Thumbnails[0].URL
	}

	return media.Success(media.YouTube, title, thumb, links)
}

func (y *YouTube) requestURL(pageURL string) (string, error) {
	u, err := url.Parse(y.backend)
	if err != nil {
		return "", fmt.Errorf("parsing backend URL: %w", err)
	}
	q := u.Query()
	q.Set("url", pageURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// links maps the backend payload to media links: the formats list when
// present, otherwise the single best-effort url.
func (r backendResponse) links() []media.Link {
	var links []media.Link
	for _, f := range r.Formats {
		if f.URL == "" {
			continue
		}
		quality := string(f.QualityLabel)
		if quality == "" {
			quality = string(f.Quality)
		}
		if quality == "" {
			quality = "Unknown"
		} else if _, err := strconv.Atoi(quality); err == nil {
			quality += "p"
		}

		kind := media.Video
		if strings.HasPrefix(strings.ToLower(f.MimeType), "audio/") {
			kind = media.Audio
		}
		links = append(links, media.NewLink(quality, f.URL, kind, f.Ext))
	}

	if len(links) == 0 && r.URL != "" {
		links = append(links, media.NewLink("Best", r.URL, media.Video, "mp4"))
	}
	return links
}
