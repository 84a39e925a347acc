package fetcher

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"job104-crawler/internal/config"
	"job104-crawler/internal/observability"
)

// BrowserFetcher renders pages in a headless Chrome. One browser serves the
// whole run; call Close when done.
type BrowserFetcher struct {
	browser *rod.Browser
	cfg     *config.Config
	logger  *observability.Logger
}

func NewBrowserFetcher(cfg *config.Config, logger *observability.Logger) (*BrowserFetcher, error) {
	l := launcher.New().Headless(true)
	if cfg.Rod.ChromePath != "" {
		l = l.Bin(cfg.Rod.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &BrowserFetcher{browser: browser, cfg: cfg, logger: logger}, nil
}

func (b *BrowserFetcher) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			b.logger.Warn("Failed to close page", "error", err.Error())
		}
	}()

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.cfg.HTTP.UserAgent}); err != nil {
		return nil, fmt.Errorf("failed to set user agent: %w", err)
	}

	timed := page.Timeout(b.cfg.GetRodPageTimeout())
	if err := timed.Navigate(urlStr); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", urlStr, err)
	}
	if err := timed.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load %s: %w", urlStr, err)
	}

	html, err := timed.HTML()
	if err != nil {
		return nil, fmt.Errorf("read html of %s: %w", urlStr, err)
	}

	b.logger.Debug("Page rendered", "url", urlStr, "body_bytes", len(html))

	return &FetchResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(html),
		URL:        urlStr,
	}, nil
}

func (b *BrowserFetcher) Close() error {
	return b.browser.Close()
}
