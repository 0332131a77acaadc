package player

import (
	"reflect"
	"testing"

	"linkgrab/internal/media"
)

func TestNew(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mpv", "mpv"},
		{"VLC", "vlc"},
		{"iina", "iina"},
		{"celluloid", "celluloid"},
		{"", "mpv"},
		{"winamp", "mpv"},
	}
	for _, tt := range tests {
		if got := New(tt.in).Name(); got != tt.want {
			t.Errorf("New(%q).Name() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArgs(t *testing.T) {
	video := media.NewLink("720p", "https://cdn.example/v.mp4", media.Video, "mp4")
	image := media.NewLink("Original", "https://cdn.example/i.jpg", media.Image, "jpg")
	title := "Clip; rm -rf ~"

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"mpv video", (&MPV{}).args(video, title), []string{
			"https://cdn.example/v.mp4", "--force-media-title=Clip; rm -rf ~", "--really-quiet",
		}},
		{"mpv image", (&MPV{}).args(image, title), []string{
			"https://cdn.example/i.jpg", "--force-media-title=Clip; rm -rf ~", "--really-quiet", "--image-display-duration=inf",
		}},
		{"vlc", (&VLC{}).args(video, title), []string{
			"https://cdn.example/v.mp4", "--meta-title", "Clip; rm -rf ~", "--play-and-exit",
		}},
		{"generic", (&Generic{name: "iina"}).args(video, title), []string{
			"https://cdn.example/v.mp4", "--force-media-title=Clip; rm -rf ~",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("args = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
