package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"job104-crawler/internal/observability"
	"job104-crawler/internal/scraper"
)

func sampleRecords() []scraper.JobRecord {
	return []scraper.JobRecord{
		{
			Title: "Go 工程師", Link: "https://www.104.com.tw/job/1", Experience: "2年以上",
			Company: "甲公司", Location: "台北市", SalaryText: "月薪50,000~70,000元",
			PayBasis: "月薪", SalaryLow: 50000, SalaryHigh: 70000,
		},
		{
			Title: "SRE", Link: "https://www.104.com.tw/job/2", Experience: "經歷不拘",
			Company: "乙公司", Location: "台中市", SalaryText: "待遇面議",
			PayBasis: "待遇", SalaryLow: 40000, SalaryHigh: 40000,
		},
	}
}

func TestAppendOrCreateTwiceKeepsBothSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "2024-09-03_golang_職缺資料.xlsx")
	wb := NewWorkbook(observability.Nop())
	sheet := SheetName("golang")

	first, err := wb.AppendOrCreate(path, sheet, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, sheet, first)

	second, err := wb.AppendOrCreate(path, sheet, sampleRecords()[:1])
	require.NoError(t, err)
	assert.Equal(t, sheet+"1", second)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{first, second}, f.GetSheetList())

	rows, err := f.GetRows(first)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "Go 工程師", rows[1][0])
	assert.Equal(t, "70000", rows[1][8])

	rows, err = f.GetRows(second)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "https://www.104.com.tw/job/1", rows[1][1])
}

func TestAppendOrCreateWritesNumericBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.xlsx")
	wb := NewWorkbook(observability.Nop())

	_, err := wb.AppendOrCreate(path, "s", sampleRecords())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	typ, err := f.GetCellType("s", "H2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)
}

func TestAppendOrCreateRejectsUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := NewWorkbook(observability.Nop()).AppendOrCreate(path, "s", sampleRecords())
	assert.Error(t, err)
}

func TestUniqueSheetName(t *testing.T) {
	assert.Equal(t, "a", UniqueSheetName("a", nil))
	assert.Equal(t, "a1", UniqueSheetName("a", []string{"a"}))
	assert.Equal(t, "a2", UniqueSheetName("a", []string{"A", "a1"}))

	long := "0123456789012345678901234567890"
	got := UniqueSheetName(long, []string{long})
	assert.Equal(t, "012345678901234567890123456789"+"1", got)
	assert.Equal(t, 31, utf8.RuneCountInString(got))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "104 golang的職缺", SheetName("golang"))
	assert.Equal(t, "104 CC++的職缺", SheetName("C/C++"))
	assert.LessOrEqual(t, utf8.RuneCountInString(SheetName("非常非常非常非常非常非常非常非常非常非常長的關鍵字")), 31)
}

func TestFileName(t *testing.T) {
	d := time.Date(2024, 9, 3, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-09-03_golang_職缺資料.xlsx", FileName(d, "golang", "職缺資料"))
	assert.Equal(t, "2024-09-03_C_C++_職缺資料.xlsx", FileName(d, "C/C++", "職缺資料"))
}
