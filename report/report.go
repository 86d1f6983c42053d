// Package report prints benchmark results and build information.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"pngbench/bench"
)

// Format selects the report encoding.
type Format string

const (
	FormatText       Format = "text"
	FormatJSON       Format = "json"
	FormatPrometheus Format = "prometheus"
)

var ErrUnknownFormat = errors.New("unknown report format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatPrometheus:
		return f, nil
	}
	return "", fmt.Errorf("%w %q (want text, json or prometheus)", ErrUnknownFormat, s)
}

// Meta describes the benchmarked input.
type Meta struct {
	File string
	Size int
}

// Write renders times in format f.
func Write(w io.Writer, f Format, times *bench.Times, meta Meta) error {
	switch f {
	case FormatText:
		return Text(w, times)
	case FormatJSON:
		return JSON(w, times, meta)
	case FormatPrometheus:
		return Prometheus(w, times)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, f)
}

// Text prints one "<label>: <usec> usec" line per observed sample.
func Text(w io.Writer, times *bench.Times) error {
	for _, s := range times.Samples {
		if !s.Observed() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %d usec\n", s.Name, s.Micros()); err != nil {
			return err
		}
	}
	return nil
}

type jsonReport struct {
	File    string       `json:"file"`
	Size    int          `json:"size_bytes"`
	Op      string       `json:"op"`
	Runs    int          `json:"runs"`
	Results []jsonResult `json:"results"`
}

type jsonResult struct {
	Name     string `json:"name"`
	BestNs   uint64 `json:"best_ns"`
	BestUsec uint64 `json:"best_usec"`
	Runs     int    `json:"runs"`
	Failures int    `json:"failures"`
}

func JSON(w io.Writer, times *bench.Times, meta Meta) error {
	out := jsonReport{
		File:    meta.File,
		Size:    meta.Size,
		Op:      times.Op,
		Runs:    times.Runs,
		Results: make([]jsonResult, 0, len(times.Samples)),
	}
	for _, s := range times.Samples {
		if !s.Observed() {
			continue
		}
		out.Results = append(out.Results, jsonResult{
			Name:     s.Name,
			BestNs:   s.Best,
			BestUsec: s.Micros(),
			Runs:     s.Runs,
			Failures: s.Failures,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("could not encode the report: %w", err)
	}
	return nil
}
