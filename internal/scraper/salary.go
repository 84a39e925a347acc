package scraper

import (
	"strconv"

	"job104-crawler/internal/normalize"
)

// DefaultSalary replaces any bound that cannot be read from the salary text.
const DefaultSalary = 40000

const salarySeparator = '~'

// Bound is one side of a salary range. OK is false when the text held no
// usable number for it.
type Bound struct {
	Value int
	OK    bool
}

// OrDefault applies the fallback rule.
func (b Bound) OrDefault() int {
	if !b.OK {
		return DefaultSalary
	}
	return b.Value
}

type SalaryRange struct {
	Lower Bound
	Upper Bound
}

type salaryState int

const (
	beforeSeparator salaryState = iota
	afterSeparator
)

// ParseSalary scans the digits of text on either side of the first '~'.
// Everything that is neither a digit nor '~' is skipped, so "月薪30,000~45,000元"
// reads as 30000 and 45000. A second '~' spoils the upper bound.
func ParseSalary(text string) SalaryRange {
	var (
		state     = beforeSeparator
		low, high []byte
		spoiled   bool
	)

	for _, r := range normalize.Fold(text) {
		switch {
		case r >= '0' && r <= '9':
			if state == beforeSeparator {
				low = append(low, byte(r))
			} else {
				high = append(high, byte(r))
			}
		case r == salarySeparator:
			if state == beforeSeparator {
				state = afterSeparator
			} else {
				spoiled = true
			}
		}
	}

	rng := SalaryRange{Lower: toBound(low)}
	if !spoiled {
		rng.Upper = toBound(high)
	}
	return rng
}

func toBound(digits []byte) Bound {
	if len(digits) == 0 {
		return Bound{}
	}
	v, err := strconv.Atoi(string(digits))
	if err != nil {
		return Bound{}
	}
	return Bound{Value: v, OK: true}
}

// PayBasis is the leading two characters of the salary text, e.g. 月薪 or 時薪.
func PayBasis(text string) string {
	runes := []rune(text)
	if len(runes) <= 2 {
		return text
	}
	return string(runes[:2])
}
