package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"navboard/internal/nav"
)

func TestHTTPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/nav.csv":
			w.Write([]byte("Date,NAV\n01-01-2020,10\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	body, err := New(srv.URL+"/nav.csv", 0).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if body != "Date,NAV\n01-01-2020,10\n" {
		t.Errorf("Fetch() = %q", body)
	}

	_, err = New(srv.URL+"/missing.csv", 0).Fetch(context.Background())
	var due *nav.DataUnavailableError
	if !errors.As(err, &due) {
		t.Fatalf("Fetch() error = %v, want DataUnavailableError", err)
	}
	if due.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", due.Status)
	}
}

func TestHTTPFetchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, 0).Fetch(context.Background())
	if !errors.Is(err, nav.ErrDataUnavailable) {
		t.Fatalf("Fetch() error = %v, want ErrDataUnavailable", err)
	}
	var due *nav.DataUnavailableError
	if errors.As(err, &due) && due.Status != 0 {
		t.Errorf("Status = %d, want 0", due.Status)
	}
}

func TestFileFetch(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nav.csv")
	if err := os.WriteFile(p, []byte("Date,NAV\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := New(p, 0)
	if _, ok := src.(File); !ok {
		t.Fatalf("New(%q) = %T, want File", p, src)
	}
	body, err := src.Fetch(context.Background())
	if err != nil || body != "Date,NAV\n" {
		t.Fatalf("Fetch() = %q, %v", body, err)
	}

	_, err = New(filepath.Join(dir, "nope.csv"), 0).Fetch(context.Background())
	var due *nav.DataUnavailableError
	if !errors.As(err, &due) || due.Status != http.StatusNotFound {
		t.Fatalf("Fetch() error = %v, want 404 DataUnavailableError", err)
	}
}
