// Package media defines shared types for the linkgrab resolver.
package media

import "strings"

// Kind classifies a downloadable asset.
type Kind int

const (
	Video Kind = iota
	Audio
	Image
)

func (k Kind) String() string {
	switch k {
	case Video:
		return "video"
	case Audio:
		return "audio"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

// DefaultExtension returns the file extension assumed for a kind when the
// source did not report one.
func (k Kind) DefaultExtension() string {
	switch k {
	case Audio:
		return "m4a"
	case Image:
		return "jpg"
	default:
		return "mp4"
	}
}

// Platform is the tag of a supported source site.
type Platform string

const (
	Unknown   Platform = ""
	YouTube   Platform = "youtube"
	Instagram Platform = "instagram"
	TikTok    Platform = "tiktok"
	Facebook  Platform = "facebook"
	Twitter   Platform = "twitter"
)

// DisplayName returns the human readable platform name.
func (p Platform) DisplayName() string {
	switch p {
	case YouTube:
		return "YouTube"
	case Instagram:
		return "Instagram"
	case TikTok:
		return "TikTok"
	case Facebook:
		return "Facebook"
	case Twitter:
		return "Twitter"
	default:
		return "Unknown"
	}
}

// Link is one concrete downloadable asset.
type Link struct {
	Quality   string // Display label, e.g. "HD", "720p", "Original"
	URL       string // Absolute resource URL
	Kind      Kind
	Extension string // Lowercase, no dot
}

// NewLink builds a Link, normalizing the extension and falling back to the
// kind's default when ext is empty.
func NewLink(quality, url string, kind Kind, ext string) Link {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "" {
		ext = kind.DefaultExtension()
	}
	return Link{
		Quality:   quality,
		URL:       url,
		Kind:      kind,
		Extension: ext,
	}
}
