package report

import (
	"fmt"
	"io"
	"time"

	"job104-crawler/internal/stats"
)

const DateLayout = "2006-01-02"

// Print writes the run date and the aggregate figures.
func Print(w io.Writer, runDate time.Time, s stats.Summary) error {
	_, err := fmt.Fprintf(w,
		"執行日期: %s\n職缺數量: %d\n薪資平均:%.2f\n最高薪資:%d\n最低薪資:%d\n",
		runDate.Format(DateLayout), s.Total, s.AvgSalary, s.MaxSalary, s.MinSalary,
	)
	return err
}
