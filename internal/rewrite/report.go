// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"encoding/json"
	"sort"
	"time"
)

// Failure is one soft validation failure of an import run.
type Failure struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// Report collects what an import run did and the soft failures a human
// should review.
type Report struct {
	RunID      string    `json:"run_id"`
	Strict     bool      `json:"strict"`
	Committed  bool      `json:"committed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Rows       int       `json:"rows"`
	Totals     Result    `json:"totals"`
	Failures   []Failure `json:"failures"`

	reported map[cell]bool
}

// cell is the position of an import value.
type cell struct {
	file   string
	line   int
	column string
}

// Add records a soft failure. A cell is reported once, with the first
// message; Add returns false for repeats.
func (r *Report) Add(file string, line int, column, message string) bool {
	key := cell{file: file, line: line, column: column}
	if r.reported[key] {
		return false
	}
	if r.reported == nil {
		r.reported = make(map[cell]bool)
	}
	r.reported[key] = true
	r.Failures = append(r.Failures, Failure{File: file, Line: line, Column: column, Message: message})
	return true
}

// HasFailures returns true if any soft failure was recorded.
func (r *Report) HasFailures() bool {
	return len(r.Failures) > 0
}

// ByFile groups the failures per file, ordered by line and column.
func (r *Report) ByFile() map[string][]Failure {
	out := make(map[string][]Failure)
	for _, f := range r.Failures {
		out[f.File] = append(out[f.File], f)
	}
	for _, fs := range out {
		sort.SliceStable(fs, func(i, j int) bool {
			if fs[i].Line != fs[j].Line {
				return fs[i].Line < fs[j].Line
			}
			return fs[i].Column < fs[j].Column
		})
	}
	return out
}

// JSON returns the indented JSON encoding of the report.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
