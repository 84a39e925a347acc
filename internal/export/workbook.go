// Package export writes job records to an xlsx workbook, one sheet per call.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/xuri/excelize/v2"

	"job104-crawler/internal/observability"
	"job104-crawler/internal/scraper"
)

const maxSheetNameRunes = 31

// Header is the first row of every sheet.
var Header = []string{"職缺名稱", "職缺連結", "經歷要求", "公司名稱", "工作地區", "薪資待遇", "計薪方式", "薪資下限", "薪資上限"}

type Workbook struct {
	logger *observability.Logger
}

func NewWorkbook(logger *observability.Logger) *Workbook {
	return &Workbook{logger: logger}
}

// AppendOrCreate writes records to a new sheet at path. A missing file is
// created with records in its only sheet; an existing file gains one more sheet
// whose name does not collide with the ones already there. It returns the
// sheet name actually used.
func (w *Workbook) AppendOrCreate(path, sheet string, records []scraper.JobRecord) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("failed to lock %s: %w", path, err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.logger.Warn("Failed to release workbook lock", "path", path, "error", err.Error())
		}
	}()

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return sheet, w.createWorkbook(path, sheet, records)
	case err != nil:
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	default:
		return w.appendSheet(path, sheet, records)
	}
}

func (w *Workbook) createWorkbook(path, sheet string, records []scraper.JobRecord) error {
	f := excelize.NewFile()
	defer w.closeFile(f, path)

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if err := writeRows(f, sheet, records); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Workbook created", "path", path, "sheet", sheet, "rows", len(records))
	return nil
}

func (w *Workbook) appendSheet(path, sheet string, records []scraper.JobRecord) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer w.closeFile(f, path)

	name := UniqueSheetName(sheet, f.GetSheetList())
	if _, err := f.NewSheet(name); err != nil {
		return "", fmt.Errorf("failed to add sheet %q: %w", name, err)
	}
	if err := writeRows(f, name, records); err != nil {
		return "", err
	}
	if err := f.Save(); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Sheet appended", "path", path, "sheet", name, "rows", len(records))
	return name, nil
}

func (w *Workbook) closeFile(f *excelize.File, path string) {
	if err := f.Close(); err != nil {
		w.logger.Warn("Failed to close workbook", "path", path, "error", err.Error())
	}
}

func writeRows(f *excelize.File, sheet string, records []scraper.JobRecord) error {
	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.Title, r.Link, r.Experience, r.Company, r.Location, r.SalaryText, r.PayBasis, r.SalaryLow, r.SalaryHigh}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}

// SheetName is the sheet title for a keyword, made legal for xlsx.
func SheetName(keyword string) string {
	return truncateRunes(sanitizeSheet(fmt.Sprintf("104 %s的職缺", keyword)), maxSheetNameRunes)
}

// UniqueSheetName returns base, or base followed by the smallest positive
// number that no existing sheet uses. Comparison ignores case, as Excel does.
func UniqueSheetName(base string, existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[strings.ToLower(s)] = true
	}
	if !taken[strings.ToLower(base)] {
		return base
	}
	for n := 1; ; n++ {
		suffix := strconv.Itoa(n)
		name := truncateRunes(base, maxSheetNameRunes-len(suffix)) + suffix
		if !taken[strings.ToLower(name)] {
			return name
		}
	}
}

// FileName is "<date>_<keyword>_<suffix>.xlsx".
func FileName(runDate time.Time, keyword, suffix string) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", runDate.Format("2006-01-02"), sanitizeFile(keyword), suffix)
}

var (
	sheetReplacer = strings.NewReplacer("[", "", "]", "", ":", "", "*", "", "?", "", "/", "", "\\", "")
	fileReplacer  = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
)

func sanitizeSheet(s string) string {
	return strings.Trim(sheetReplacer.Replace(s), "'")
}

func sanitizeFile(s string) string {
	return fileReplacer.Replace(strings.TrimSpace(s))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
