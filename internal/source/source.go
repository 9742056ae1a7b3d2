package source

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"navboard/internal/nav"
)

// Source yields the raw NAV CSV body.
type Source interface {
	Fetch(ctx context.Context) (string, error)
	String() string
}

// New picks an HTTP source for http(s) URLs and a file source otherwise.
// A zero timeout leaves the request unbounded.
func New(location string, timeout time.Duration) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTP{URL: location, Client: &http.Client{Timeout: timeout}}
	}
	return File{Path: location}
}

// HTTP fetches the CSV with a single GET.
type HTTP struct {
	URL    string
	Client *http.Client
}

func (h *HTTP) String() string { return h.URL }

// Fetch returns the body on a 2xx answer. Any other status, or a transport
// failure, is reported as *nav.DataUnavailableError. There is no retry.
func (h *HTTP) Fetch(ctx context.Context) (string, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return "", nav.Unavailable(0, "build request: %v", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")
	resp, err := client.Do(req)
	if err != nil {
		return "", nav.Unavailable(0, "%v", err)
	}
	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nav.Unavailable(resp.StatusCode, "%s returned %d: %s", h.URL, resp.StatusCode, preview(body))
	}
	if readErr != nil {
		return "", nav.Unavailable(0, "failed to read response: %v", readErr)
	}
	return string(body), nil
}

// File reads the CSV from disk.
type File struct{ Path string }

func (f File) String() string { return f.Path }

func (f File) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", nav.Unavailable(0, "%v", err)
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nav.Unavailable(http.StatusNotFound, "%s: %v", f.Path, err)
		}
		return "", nav.Unavailable(0, "%v", err)
	}
	return string(b), nil
}

// Static serves a fixed body; handy for tests and for embedding a snapshot.
type Static string

func (s Static) String() string { return "static" }

func (s Static) Fetch(context.Context) (string, error) { return string(s), nil }

func preview(body []byte) string {
	p := string(body)
	if len(p) > 120 {
		p = p[:120]
	}
	return strings.TrimSpace(p)
}
