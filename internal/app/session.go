package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"job104-crawler/internal/config"
	"job104-crawler/internal/export"
	"job104-crawler/internal/location"
	"job104-crawler/internal/normalize"
	"job104-crawler/internal/observability"
	"job104-crawler/internal/report"
	"job104-crawler/internal/stats"
	"job104-crawler/internal/storage"
)

const (
	promptKeyword  = "請輸入要搜尋的職業關鍵字:"
	promptLocation = "請輸入要搜尋的地區(ex:台北市 台中市，請用空格隔開):"
	promptMode     = "請輸入輸出選項:(1.印出資料, 2.存成excel):"
)

// OutputMode is what the user picked at the last prompt.
type OutputMode int

const (
	ModeInvalid OutputMode = iota
	ModeReport
	ModeExport
)

// ParseMode accepts "1", "1.", "2" and "2." with surrounding whitespace.
func ParseMode(input string) OutputMode {
	switch strings.TrimSpace(input) {
	case "1", "1.":
		return ModeReport
	case "2", "2.":
		return ModeExport
	default:
		return ModeInvalid
	}
}

// Session runs one interactive crawl: three prompts, the crawl, and the chosen output.
type Session struct {
	cfg          *config.Config
	logger       *observability.Logger
	orchestrator *Orchestrator
	resolver     *location.Resolver
	workbook     *export.Workbook
	archive      storage.Repository
	in           *bufio.Reader
	out          io.Writer
	now          func() time.Time
}

func NewSession(
	cfg *config.Config,
	logger *observability.Logger,
	o *Orchestrator,
	archive storage.Repository,
	in io.Reader,
	out io.Writer,
) *Session {
	return &Session{
		cfg:          cfg,
		logger:       logger,
		orchestrator: o,
		resolver:     location.NewResolver(cfg.Locations, cfg.Site.AreaJoinSep),
		workbook:     export.NewWorkbook(logger),
		archive:      archive,
		in:           bufio.NewReader(in),
		out:          out,
		now:          time.Now,
	}
}

func (s *Session) Run(ctx context.Context) error {
	keyword, err := s.ask(ctx, promptKeyword)
	if err != nil {
		return err
	}
	places, err := s.ask(ctx, promptLocation)
	if err != nil {
		return err
	}

	area := s.resolver.Resolve(normalize.Fields(places))
	s.logger.Info("Locations resolved", "input", places, "area", area)

	records, _, err := s.orchestrator.Run(ctx, keyword, area)
	if err != nil {
		return err
	}
	summary, err := stats.Aggregate(records)
	if err != nil {
		return err
	}
	runDate := s.now()

	if s.archive != nil {
		run := &storage.Run{Keyword: keyword, Area: area, FetchedAt: runDate, Records: records}
		if _, err := s.archive.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("archive run: %w", err)
		}
	}

	fmt.Fprintln(s.out, "資料爬取完成")

	choice, err := s.ask(ctx, promptMode)
	if err != nil {
		return err
	}

	switch ParseMode(choice) {
	case ModeReport:
		return report.Print(s.out, runDate, summary)
	case ModeExport:
		path := filepath.Join(s.cfg.Output.Dir, export.FileName(runDate, keyword, s.cfg.Output.FileSuffix))
		if _, err := s.workbook.AppendOrCreate(path, export.SheetName(keyword), records); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(s.out, "資料已存入 %s\n", path)
	default:
		fmt.Fprintln(s.out, "無效選項")
	}
	return nil
}

type readResult struct {
	line string
	err  error
}

// ask prints prompt and reads one line. The line terminator is dropped; the
// rest is returned verbatim. A cancelled ctx ends the wait with ctx.Err().
func (s *Session) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	// the reader goroutine outlives a cancelled prompt; the process exits right after
	result := make(chan readResult, 1)
	go func() {
		line, err := s.in.ReadString('\n')
		result <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return "", ctx.Err()
	case r := <-result:
		if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
			return "", fmt.Errorf("read input: %w", r.err)
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}
