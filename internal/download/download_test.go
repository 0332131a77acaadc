package download

import (
	"bytes"
	"context"
	"crypto/x509"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"linkgrab/internal/httputil"
	"linkgrab/internal/media"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		link  media.Link
		want  string
	}{
		{"video", "Never Gonna Give You Up", media.NewLink("720p", "https://cdn.example/v", media.Video, "mp4"), "Never Gonna Give You Up.mp4"},
		{"audio default ext", "Song", media.Link{Kind: media.Audio}, "Song.m4a"},
		{"slash in title", "X / Twitter Media", media.NewLink("Best", "https://cdn.example/v", media.Video, ""), "X - Twitter Media.mp4"},
		{"traversal", "../../etc/passwd", media.NewLink("Best", "https://cdn.example/i", media.Image, "jpg"), "_-_-etc-passwd.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.title, tt.link); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestDownload(t *testing.T) {
	payload := bytes.Repeat([]byte("frame"), 1024)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/video.mp4" {
			http.NotFound(w, r)
			return
		}
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	link := media.NewLink("HD", srv.URL+"/video.mp4", media.Video, "mp4")

	var progress bytes.Buffer
	path, err := Download(context.Background(), link, "Clip", dir, Options{
		Client:   srv.Client(),
		Progress: &progress,
	})
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}

	if path != filepath.Join(dir, "Clip.mp4") {
		t.Errorf("path = %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("downloaded %d bytes, want %d", len(got), len(payload))
	}
	if progress.Len() == 0 {
		t.Error("expected progress output")
	}
}

func TestDownloadHTTPErrorLeavesNoFile(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	dir := t.TempDir()
	link := media.NewLink("HD", srv.URL+"/video.mp4", media.Video, "mp4")

	_, err := Download(context.Background(), link, "Clip", dir, Options{Client: srv.Client()})
	if err == nil || !strings.Contains(err.Error(), "status 410") {
		t.Fatalf("Download() error = %v, want status 410", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("output dir not empty: %v", entries)
	}
}

func TestDownloadRejectsPlainHTTP(t *testing.T) {
	link := media.NewLink("HD", "http://cdn.example/video.mp4", media.Video, "mp4")
	if _, err := Download(context.Background(), link, "Clip", t.TempDir(), Options{}); err == nil {
		t.Error("expected plain http link to be rejected")
	}
}

func TestDownloadSlowTransferOutlastsHeaderTimeout(t *testing.T) {
	const chunks = 4
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for i := 0; i < chunks; i++ {
			w.Write([]byte("0123456789"))
			flusher.Flush()
			time.Sleep(400 * time.Millisecond)
		}
	}))
	defer srv.Close()

	// Headers arrive immediately; the body takes well over the header timeout.
	client := httputil.NewStreamClient(300 * time.Millisecond)
	pool := x509.NewCertPool()
	pool.AddCert(srv.Certificate())
	client.Transport.(*http.Transport).TLSClientConfig.RootCAs = pool

	dir := t.TempDir()
	link := media.NewLink("HD", srv.URL+"/slow.mp4", media.Video, "mp4")

	path, err := Download(context.Background(), link, "Slow", dir, Options{Client: client})
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != chunks*10 {
		t.Errorf("downloaded %d bytes, want %d", len(got), chunks*10)
	}
}

func TestDownloadCancelledContextRemovesPartialFile(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for {
			if _, err := w.Write([]byte("0123456789")); err != nil {
				return
			}
			flusher.Flush()
			select {
			case <-r.Context().Done():
				return
			case <-time.After(50 * time.Millisecond):
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	dir := t.TempDir()
	link := media.NewLink("HD", srv.URL+"/endless.mp4", media.Video, "mp4")

	if _, err := Download(ctx, link, "Endless", dir, Options{Client: srv.Client()}); err == nil {
		t.Fatal("expected cancellation error")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("partial file left behind: %v", entries)
	}
}
