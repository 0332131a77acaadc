package media

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLinkExtension(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		ext  string
		want string
	}{
		{"explicit", Video, "webm", "webm"},
		{"uppercase with dot", Video, ".MP4", "mp4"},
		{"video default", Video, "", "mp4"},
		{"audio default", Audio, "", "m4a"},
		{"image default", Image, "  ", "jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLink("Best", "https://x/a", tt.kind, tt.ext)
			if got.Extension != tt.want {
				t.Errorf("Extension = %q, want %q", got.Extension, tt.want)
			}
		})
	}
}

func TestSuccessWithoutLinksIsFailure(t *testing.T) {
	r := Success(TikTok, "title", "", nil)
	if r.OK() {
		t.Fatal("success with zero links must become an error")
	}
	if r.Kind != NoMediaFound {
		t.Errorf("Kind = %q, want %q", r.Kind, NoMediaFound)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSuccessDropsEmptyURLs(t *testing.T) {
	r := Success(YouTube, "Demo", "", []Link{
		NewLink("360p", "", Video, ""),
		NewLink("720p", "https://x/720.mp4", Video, "mp4"),
	})
	if !r.OK() {
		t.Fatalf("expected success, got %+v", r)
	}
	if len(r.Links) != 1 || r.Links[0].Quality != "720p" {
		t.Errorf("Links = %+v, want only the 720p link", r.Links)
	}
}

func TestFailureAlwaysHasMessage(t *testing.T) {
	r := Failure(Internal, "")
	if r.Message == "" {
		t.Error("failure message should never be empty")
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidateRejectsBrokenResults(t *testing.T) {
	tests := []struct {
		name string
		r    Result
	}{
		{"success without links", Result{Status: StatusSuccess}},
		{"success with empty url", Result{Status: StatusSuccess, Links: []Link{{Quality: "HD"}}}},
		{"error without message", Result{Status: StatusError}},
		{"error with links", Result{Status: StatusError, Message: "x", Links: []Link{{URL: "https://x"}}}},
		{"unknown status", Result{Status: "pending"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	r := Success(Instagram, "Reel", "", []Link{NewLink("Original", "https://x/a.m4a", Audio, "")})

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)

	for _, want := range []string{
		`"status":"success"`,
		`"platform":"instagram"`,
		`"thumbnail":""`,
		`"downloadLinks":[{"quality":"Original","url":"https://x/a.m4a","format":"audio","ext":"m4a","isAudioOnly":true}]`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}

	data, _ = json.Marshal(Failure(InvalidInput, "URL is required"))
	if got := string(data); got != `{"status":"error","message":"URL is required","kind":"invalid_input"}` {
		t.Errorf("error JSON = %s", got)
	}
}
