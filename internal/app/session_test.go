package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"job104-crawler/internal/config"
	"job104-crawler/internal/fetcher"
	"job104-crawler/internal/observability"
	"job104-crawler/internal/scraper"
	"job104-crawler/internal/stats"
)

func newTestSession(t *testing.T, ps *pageServer, archiveDSN string, input string) (*Session, *bytes.Buffer, *config.Config) {
	t.Helper()
	srv := httptest.NewServer(ps)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.Site.SearchURL = srv.URL + "/jobs/search/"
	cfg.Output.Dir = filepath.Join(t.TempDir(), "vacancies_excel")
	if archiveDSN != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.DSN = archiveDSN
	}

	logger := observability.Nop()
	var out bytes.Buffer
	o := NewOrchestrator(logger, fetcher.NewFetcher(cfg, logger), scraper.NewScraper(cfg.Selectors, cfg.Site.LinkScheme), cfg.Site.SearchURL, &bytes.Buffer{})

	archive, err := OpenArchive(cfg, logger)
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	if archive != nil {
		t.Cleanup(func() { _ = archive.Close() })
	}

	s := NewSession(cfg, logger, o, archive, strings.NewReader(input), &out)
	s.now = func() time.Time { return time.Date(2024, 9, 3, 12, 0, 0, 0, time.Local) }
	return s, &out, cfg
}

func twoPages() *pageServer {
	return &pageServer{pages: map[string]string{
		"1": listing("a", "月薪30,000~45,000元") + listing("b", "待遇面議"),
		"2": listing("c", "月薪28,000~60,000元"),
	}}
}

func TestSessionReportMode(t *testing.T) {
	ps := twoPages()
	s, out, _ := newTestSession(t, ps, "", "golang\n台北市 台中市\n1.\n")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		promptKeyword, promptLocation, "資料爬取完成", promptMode,
		"執行日期: 2024-09-03", "職缺數量: 3", "薪資平均:40500.00", "最高薪資:60000", "最低薪資:28000",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestSessionExportModeTwice(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "vacancies_excel")
	path := filepath.Join(outDir, "2024-09-03_golang_職缺資料.xlsx")

	for i := 0; i < 2; i++ {
		s, out, cfg := newTestSession(t, twoPages(), "", "golang\n台北市\n2\n")
		cfg.Output.Dir = outDir

		if err := s.Run(context.Background()); err != nil {
			t.Fatalf("Run #%d: %v", i+1, err)
		}
		if !strings.Contains(out.String(), "資料已存入 "+path) {
			t.Errorf("run #%d output missing path:\n%s", i+1, out.String())
		}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("workbook not readable: %v", err)
	}
	defer f.Close()

	want := []string{"104 golang的職缺", "104 golang的職缺1"}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Errorf("sheets = %v, want %v", got, want)
	}
}

func TestSessionInvalidMode(t *testing.T) {
	s, out, cfg := newTestSession(t, twoPages(), "", "golang\n台北市\n3\n")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "無效選項") {
		t.Errorf("expected invalid option message:\n%s", out.String())
	}
	if _, err := os.Stat(cfg.Output.Dir); !os.IsNotExist(err) {
		t.Errorf("output dir should not be created for an invalid option")
	}
}

func TestSessionNoResultsFails(t *testing.T) {
	ps := &pageServer{pages: map[string]string{}}
	s, _, _ := newTestSession(t, ps, "", "無此職缺\nTokyo\n1\n")

	if err := s.Run(context.Background()); !errors.Is(err, stats.ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

func TestSessionArchivesRun(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "archive.db")
	s, _, _ := newTestSession(t, twoPages(), dsn, "golang\n台北市\n1\n")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	n, err := s.archive.CountRecords(context.Background(), 1)
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if n != 3 {
		t.Errorf("archived %d records, want 3", n)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  OutputMode
	}{
		{"1", ModeReport},
		{"1.", ModeReport},
		{" 2. ", ModeExport},
		{"2", ModeExport},
		{"3", ModeInvalid},
		{"", ModeInvalid},
		{"1..", ModeInvalid},
	}

	for _, tt := range tests {
		if got := ParseMode(tt.input); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSessionReturnsWhenCancelledAtPrompt(t *testing.T) {
	cfg := config.Default()
	logger := observability.Nop()
	o := NewOrchestrator(logger, failingSource{}, scraper.NewScraper(cfg.Selectors, cfg.Site.LinkScheme), "http://invalid/", &bytes.Buffer{})

	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	s := NewSession(cfg, logger, o, nil, pr, &out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run still blocked at the keyword prompt after cancel")
	}
}
