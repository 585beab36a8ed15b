// Package tracewriter serializes MCMC trace and progress records to
// disk, following the printed-document conventions the teacher uses for
// structured output (one encoded record per line).
package tracewriter

import (
	"encoding/json"
	"fmt"
	"os"
)

// Record is one trace line: [sample_index, bic, E, E_recomputed,
// printed_tree, par_values_mapping].
type Record struct {
	Sample     int
	BIC        float64
	E          float64
	ERecompute float64
	Printed    string
	ParValues  map[string]float64
}

// MarshalJSON encodes a Record as the 6-element heterogeneous JSON array
// the trace format specifies, rather than a keyed object.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{r.Sample, r.BIC, r.E, r.ERecompute, r.Printed, r.ParValues})
}

// Writer owns the trace and progress file handles for one run. A Writer
// with both paths empty is a no-op sink (WriteFiles=false).
type Writer struct {
	trace    *os.File
	progress *os.File
}

// Open opens tracePath/progressPath according to resetFiles (truncate
// vs. append) when writeFiles is true. Empty paths are skipped.
func Open(tracePath, progressPath string, writeFiles, resetFiles bool) (*Writer, error) {
	w := &Writer{}
	if !writeFiles {
		return w, nil
	}
	flag := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if resetFiles {
		flag = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	if tracePath != "" {
		f, err := os.OpenFile(tracePath, flag, 0644)
		if err != nil {
			return nil, err
		}
		w.trace = f
	}
	if progressPath != "" {
		f, err := os.OpenFile(progressPath, flag, 0644)
		if err != nil {
			return nil, err
		}
		w.progress = f
	}
	return w, nil
}

// WriteTrace appends one JSON-array trace record, newline-delimited.
func (w *Writer) WriteTrace(r Record) error {
	if w.trace == nil {
		return nil
	}
	line, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w.trace, "%s\n", line)
	return err
}

// WriteProgress appends one "<sample_index> <E> <bic>\n" progress line.
func (w *Writer) WriteProgress(sample int, e, bic float64) error {
	if w.progress == nil {
		return nil
	}
	_, err := fmt.Fprintf(w.progress, "%d %f %f\n", sample, e, bic)
	return err
}

// Close closes whichever files are open.
func (w *Writer) Close() error {
	var err error
	if w.trace != nil {
		if cerr := w.trace.Close(); cerr != nil {
			err = cerr
		}
	}
	if w.progress != nil {
		if cerr := w.progress.Close(); cerr != nil {
			err = cerr
		}
	}
	return err
}
