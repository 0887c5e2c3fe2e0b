package main

import (
	"encoding/json"
	"fmt"
	"io"

	"abacus/internal/diag"
	"abacus/internal/observ"
)

// timingReport mirrors the payload the driver attaches to timing
// diagnostics (driver/timings.go).
type timingReport struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// splitTimings separates timing diagnostics from the bag so pretty output
// can render them as a stage summary instead of a diagnostic line. Machine
// formats keep the bag untouched and ship the payload in the notes.
func splitTimings(bag *diag.Bag) (*diag.Bag, []timingReport) {
	if bag == nil {
		return nil, nil
	}
	var reports []timingReport
	rest := diag.NewBag(int(bag.Cap()))
	for _, d := range bag.Items() {
		if d.Code == diag.ObsTimings {
			for _, note := range d.Notes {
				var rep timingReport
				if json.Unmarshal([]byte(note.Msg), &rep) == nil {
					reports = append(reports, rep)
				}
			}
			continue
		}
		rest.Add(d)
	}
	return rest, reports
}

func printStageTimings(out io.Writer, rep timingReport) {
	if out == nil {
		return
	}
	for _, phase := range rep.Phases {
		if phase.Note != "" {
			fmt.Fprintf(out, "%s %.1f ms (%s)\n", phase.Name, phase.DurationMS, phase.Note)
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", phase.Name, phase.DurationMS)
	}
	fmt.Fprintf(out, "total %.1f ms\n", rep.TotalMS)
}
