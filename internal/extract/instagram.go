package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"linkgrab/internal/media"
)

var instagramPostPattern = regexp.MustCompile(`/(?:p|reel|tv)/([a-zA-Z0-9_-]+)`)

const (
	instagramInvalid     = "Invalid Instagram URL. Use a post, reel or tv link."
	instagramUnreachable = "Instagram could not be reached. Try again later."
	instagramLoginWall   = "Instagram login wall hit. Try a public link."
	instagramChanged     = "Instagram structure changed or private post."
	instagramNoMedia     = "No media found in this Instagram post."
)

// Instagram reads a post's structured data endpoint through the relays.
type Instagram struct {
	deps Deps
}

// NewInstagram creates an Instagram extractor.
func NewInstagram(deps Deps) *Instagram {
	return &Instagram{deps: deps.withDefaults()}
}

func (i *Instagram) Platform() media.Platform { return media.Instagram }

type instagramNode struct {
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	DisplayURL string `json:"display_url"`
	Children   *struct {
		Edges []struct {
			Node instagramNode `json:"node"`
		} `json:"edges"`
	} `json:"edge_sidecar_to_children"`
}

type instagramResponse struct {
	GraphQL *struct {
		ShortcodeMedia *instagramNode `json:"shortcode_media"`
	} `json:"graphql"`
}

// ShortcodeFromURL returns the post identifier of a /p/, /reel/ or /tv/ URL.
func ShortcodeFromURL(pageURL string) (string, bool) {
	m := instagramPostPattern.FindStringSubmatch(pageURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Extract resolves an Instagram post, reel or IGTV URL.
func (i *Instagram) Extract(ctx context.Context, pageURL string) media.Result {
	shortcode, ok := ShortcodeFromURL(pageURL)
	if !ok {
		return fail(i.deps.Log, media.Instagram, media.InvalidInput, instagramInvalid,
			fmt.Errorf("no post identifier in %q", pageURL))
	}

	apiURL := fmt.Sprintf("https://www.instagram.com/p/%s/?__a=1&__d=dis", shortcode)
	body, err := i.deps.Relay.Fetch(ctx, apiURL)
	if err != nil {
		return fail(i.deps.Log, media.Instagram, media.RelayExhausted, instagramUnreachable, err)
	}

	var resp instagramResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return fail(i.deps.Log, media.Instagram, media.UpstreamStructureChanged, instagramLoginWall,
			fmt.Errorf("parsing structured data: %w", err))
	}

	if resp.GraphQL == nil || resp.GraphQL.ShortcodeMedia == nil {
		return fail(i.deps.Log, media.Instagram, media.UpstreamStructureChanged, instagramChanged,
			fmt.Errorf("graphql.shortcode_media missing"))
	}

	node := resp.GraphQL.ShortcodeMedia
	links := node.links()
	if len(links) == 0 {
		return fail(i.deps.Log, media.Instagram, media.NoMediaFound, instagramNoMedia,
			fmt.Errorf("media node has no video or display URL"))
	}

	title := node.Title
	if title == "" {
		title = "Instagram Media"
	}
	return media.Success(media.Instagram, title, node.DisplayURL, links)
}

// links returns one link per carousel child, or a single link for the node.
// A video URL is preferred over the display image.
func (n *instagramNode) links() []media.Link {
	if n.Children != nil && len(n.Children.Edges) > 0 {
		total := len(n.Children.Edges)
		var links []media.Link
		for idx, e := range n.Children.Edges {
			if l, ok := e.Node.link(); ok {
				l.Quality = fmt.Sprintf("Original (%d/%d)", idx+1, total)
				links = append(links, l)
			}
		}
		if len(links) > 0 {
			return links
		}
	}

	if l, ok := n.link(); ok {
		return []media.Link{l}
	}
	return nil
}

func (n *instagramNode) link() (media.Link, bool) {
	switch {
	case n.VideoURL != "":
		return media.NewLink("Original", n.VideoURL, media.Video, "mp4"), true
	case n.DisplayURL != "":
		return media.NewLink("Original", n.DisplayURL, media.Image, "jpg"), true
	default:
		return media.Link{}, false
	}
}
