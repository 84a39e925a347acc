// Package stats summarises the salary bounds of a crawl.
package stats

import (
	"errors"

	"job104-crawler/internal/scraper"
)

var ErrNoRecords = errors.New("no job records to aggregate")

type Summary struct {
	Total     int
	MaxSalary int
	MinSalary int
	AvgSalary float64
}

// Aggregate takes the max of upper bounds, the min of lower bounds and the
// mean over lower and upper bounds pooled together.
func Aggregate(records []scraper.JobRecord) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrNoRecords
	}

	s := Summary{
		Total:     len(records),
		MaxSalary: records[0].SalaryHigh,
		MinSalary: records[0].SalaryLow,
	}

	// float64 so that bounds near the int range cannot overflow the sum
	var sum float64
	for _, r := range records {
		s.MaxSalary = max(s.MaxSalary, r.SalaryHigh)
		s.MinSalary = min(s.MinSalary, r.SalaryLow)
		sum += float64(r.SalaryLow) + float64(r.SalaryHigh)
	}
	s.AvgSalary = sum / float64(2*len(records))

	return s, nil
}
