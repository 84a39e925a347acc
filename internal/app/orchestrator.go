package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"job104-crawler/internal/fetcher"
	"job104-crawler/internal/observability"
	"job104-crawler/internal/scraper"
)

type Orchestrator struct {
	logger   *observability.Logger
	source   fetcher.PageSource
	scraper  *scraper.Scraper
	baseURL  string
	progress *Progress
}

func NewOrchestrator(
	logger *observability.Logger,
	source fetcher.PageSource,
	s *scraper.Scraper,
	baseURL string,
	progressOut io.Writer,
) *Orchestrator {
	return &Orchestrator{
		logger:   logger,
		source:   source,
		scraper:  s,
		baseURL:  baseURL,
		progress: NewProgress(progressOut, time.Second),
	}
}

type CrawlStats struct {
	TotalPages    int
	TotalRecords  int
	StoppedReason string
}

// Run crawls every results page for keyword and area while the progress
// indicator runs beside it. The indicator has exited by the time Run returns.
func (o *Orchestrator) Run(ctx context.Context, keyword, area string) ([]scraper.JobRecord, *CrawlStats, error) {
	progressCtx, stopProgress := context.WithCancel(ctx)
	defer stopProgress()

	var g errgroup.Group
	g.Go(func() error {
		return o.progress.Run(progressCtx)
	})

	records, stats, err := o.crawl(ctx, keyword, area)

	stopProgress()
	if waitErr := g.Wait(); waitErr != nil && err == nil {
		err = waitErr
	}

	return records, stats, err
}

func (o *Orchestrator) crawl(ctx context.Context, keyword, area string) ([]scraper.JobRecord, *CrawlStats, error) {
	urls := scraper.NewURLBuilder(o.baseURL, keyword, area)
	stats := &CrawlStats{}
	var records []scraper.JobRecord

	o.logger.Info("Starting crawl",
		"keyword", keyword,
		"area", area,
		"base_url", o.baseURL,
	)

	for pageNum := 1; ; pageNum++ {
		pageURL := urls.Page(pageNum)
		o.logger.Info("Processing page", "page", pageNum, "url", pageURL)

		resp, err := o.source.Fetch(ctx, pageURL)
		if err != nil {
			o.logger.Error("Fetch failed",
				"page", pageNum,
				"url", pageURL,
				"error", err.Error(),
			)
			stats.StoppedReason = fmt.Sprintf("fetch error at page %d: %v", pageNum, err)
			return nil, stats, fmt.Errorf("fetch page %d: %w", pageNum, err)
		}

		pageRecords, err := o.scraper.ParseListing(string(resp.Body))
		if err != nil {
			o.logger.Error("Parse listing failed",
				"page", pageNum,
				"error", err.Error(),
			)
			stats.StoppedReason = fmt.Sprintf("parse error at page %d: %v", pageNum, err)
			return nil, stats, fmt.Errorf("parse page %d: %w", pageNum, err)
		}

		if len(pageRecords) == 0 {
			o.logger.Info("No listings found on page", "page", pageNum)
			stats.StoppedReason = fmt.Sprintf("no listings on page %d", pageNum)
			break
		}

		records = append(records, pageRecords...)
		stats.TotalPages++
		stats.TotalRecords += len(pageRecords)

		o.logger.Debug("Page parsed",
			"page", pageNum,
			"listings", len(pageRecords),
			"total", stats.TotalRecords,
		)
	}

	o.logger.Info("Crawl completed",
		"total_pages", stats.TotalPages,
		"total_records", stats.TotalRecords,
		"reason", stats.StoppedReason,
	)

	return records, stats, nil
}
