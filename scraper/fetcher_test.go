package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPFetcherReturnsBody(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer ts.Close()

	f := NewHTTPFetcher(5*time.Second, "test-agent")
	body, err := f.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "<html><body>ok</body></html>" {
		t.Errorf("body: got %q", body)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent: got %q, want test-agent", gotUA)
	}
}

func TestHTTPFetcherNonSuccessIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := NewHTTPFetcher(5*time.Second, "ua").Fetch(context.Background(), ts.URL)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestHTTPFetcherTimeoutIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer ts.Close()

	_, err := NewHTTPFetcher(50*time.Millisecond, "ua").Fetch(context.Background(), ts.URL)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable on timeout, got %v", err)
	}
}

func TestHTTPFetcherDetectsRobotCheck(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<form action="/errors/validateCaptcha"></form>`))
	}))
	defer ts.Close()

	_, err := NewHTTPFetcher(5*time.Second, "ua").Fetch(context.Background(), ts.URL)
	if !errors.Is(err, ErrBlocked) || !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrBlocked wrapping ErrUnavailable, got %v", err)
	}
}
