package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"job104-crawler/internal/config"
	"job104-crawler/internal/observability"
)

// PageSource returns the HTML behind a URL.
type PageSource interface {
	Fetch(ctx context.Context, urlStr string) (*FetchResponse, error)
}

type Fetcher struct {
	client *http.Client
	cfg    *config.Config
	logger *observability.Logger
}

type FetchResponse struct {
	StatusCode int
	Body       []byte
	URL        string
	Headers    http.Header
}

func NewFetcher(cfg *config.Config, logger *observability.Logger) *Fetcher {
	client := &http.Client{
		// zero means no timeout: a hanging request blocks the run
		Timeout: cfg.GetTotalTimeout(),
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Fetcher{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch issues a single GET. Non-2xx answers are returned, not treated as errors.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req.Header.Set("User-Agent", f.cfg.HTTP.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	if f.cfg.HTTP.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.cfg.HTTP.AcceptLanguage)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", urlStr, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("Failed to close response body", "error", err.Error())
		}
	}()

	reader := resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip body of %s: %w", urlStr, err)
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", urlStr, err)
	}

	f.logger.Debug("Page fetched",
		"url", urlStr,
		"status", resp.StatusCode,
		"content_encoding", resp.Header.Get("Content-Encoding"),
		"content_type", resp.Header.Get("Content-Type"),
		"body_bytes", len(body),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("Non-success status", "url", urlStr, "status", resp.StatusCode)
	}

	return &FetchResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
		URL:        resp.Request.URL.String(),
		Headers:    resp.Header,
	}, nil
}
