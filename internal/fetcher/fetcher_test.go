package fetcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"job104-crawler/internal/config"
	"job104-crawler/internal/observability"
)

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	cfg := config.Default()
	f := NewFetcher(cfg, observability.Nop())

	resp, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUA != cfg.HTTP.UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, cfg.HTTP.UserAgent)
	}
	if string(resp.Body) != "<html></html>" {
		t.Errorf("body = %q", resp.Body)
	}
}

func TestFetchDecodesGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte("壓縮內容"))
		_ = zw.Close()
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	f := NewFetcher(config.Default(), observability.Nop())

	resp, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(resp.Body) != "壓縮內容" {
		t.Errorf("body = %q", resp.Body)
	}
}

func TestFetchReturnsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(config.Default(), observability.Nop())

	resp, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewFetcher(config.Default(), observability.Nop())
	if _, err := f.Fetch(context.Background(), url); err == nil {
		t.Fatal("expected error from closed server")
	}
}
