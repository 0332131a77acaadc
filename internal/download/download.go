// Package download streams a resolved media link to a local file.
// Output paths are validated against directory traversal and partial
// files are removed when the transfer fails.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"linkgrab/internal/httputil"
	"linkgrab/internal/media"
)

// Options controls a download.
type Options struct {
	// Client defaults to httputil.NewStreamClient; a client with an
	// overall Timeout cuts off long transfers.
	Client    *http.Client
	UserAgent string
	// Progress receives the progress bar; nil disables it.
	Progress io.Writer
}

// Filename returns the file name a link is saved under.
func Filename(title string, link media.Link) string {
	ext := link.Extension
	if ext == "" {
		ext = link.Kind.DefaultExtension()
	}
	// Keep titles like "X / Twitter Media" whole instead of letting
	// SanitizeFilename reduce them to their last path element.
	name := strings.TrimSpace(strings.ReplaceAll(title, "/", "-"))
	return httputil.SanitizeFilename(name + "." + ext)
}

// Download fetches link into outputDir and returns the written path.
func Download(ctx context.Context, link media.Link, title, outputDir string, opts Options) (string, error) {
	if opts.Client == nil {
		opts.Client = httputil.NewStreamClient(httputil.StreamHeaderTimeout)
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath, err := httputil.SafeDownloadPath(absDir, Filename(title, link))
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	resp, err := httputil.Get(ctx, opts.Client, link.URL, httputil.RequestOptions{
		UserAgent: opts.UserAgent,
		Accept:    httputil.AcceptAny,
	})
	if err != nil {
		return "", fmt.Errorf("requesting media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("requesting media: %w", &httputil.StatusError{Code: resp.StatusCode})
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}

	var dst io.Writer = f
	if opts.Progress != nil {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("downloading"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
		)
		defer fmt.Fprintln(opts.Progress)
		dst = io.MultiWriter(f, bar)
	}

	_, copyErr := io.Copy(dst, resp.Body)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(outputPath)
		if copyErr != nil {
			return "", fmt.Errorf("download failed: %w", copyErr)
		}
		return "", fmt.Errorf("writing output file: %w", closeErr)
	}

	return outputPath, nil
}
