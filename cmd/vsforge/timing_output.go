package main

import (
	"fmt"
	"io"

	"vsforge/internal/observ"
)

func printJobTimings(out io.Writer, fixture string, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	report := timer.Report()
	for _, p := range report.Phases {
		fmt.Fprintf(out, "%s: %s %.1f ms\n", fixture, p.Name, p.DurationMS)
	}
	fmt.Fprintf(out, "%s: total %.1f ms\n", fixture, report.TotalMS)
}
