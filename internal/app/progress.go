package app

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Progress draws "Loading....." on one console line until its context ends.
type Progress struct {
	out      io.Writer
	interval time.Duration
	dots     int
}

func NewProgress(out io.Writer, interval time.Duration) *Progress {
	return &Progress{out: out, interval: interval, dots: 5}
}

// Run blocks until ctx is cancelled, then clears the line and returns nil.
func (p *Progress) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		fmt.Fprint(p.out, "Loading")
		for i := 0; i < p.dots; i++ {
			select {
			case <-ctx.Done():
				fmt.Fprint(p.out, "\r")
				return nil
			case <-ticker.C:
				fmt.Fprint(p.out, ".")
			}
		}
		fmt.Fprint(p.out, "\r")
	}
}
