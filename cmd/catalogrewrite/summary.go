// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"catalogrewrite/internal/rewrite"
)

// printSummary writes the totals and soft failures of rep to w.
func printSummary(w io.Writer, rep *rewrite.Report) {
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	blue := color.New(color.FgHiBlue).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintln(w, blue("Import run "+rep.RunID))

	t := rep.Totals
	fmt.Fprintf(w, "  rows:       %d\n", rep.Rows)
	fmt.Fprintf(w, "  created:    %s\n", green(t.Created))
	fmt.Fprintf(w, "  updated:    %s\n", green(t.Updated))
	fmt.Fprintf(w, "  redirected: %s\n", green(t.Redirected))
	fmt.Fprintf(w, "  deleted:    %s\n", yellow(t.Deleted))
	fmt.Fprintf(w, "  unchanged:  %d\n", t.Unchanged)
	fmt.Fprintf(w, "  kept:       %d\n", t.Kept)
	fmt.Fprintf(w, "  skipped:    %s\n", yellow(t.Skipped))
	if !rep.FinishedAt.IsZero() {
		fmt.Fprintf(w, "  duration:   %s\n", rep.FinishedAt.Sub(rep.StartedAt).Round(time.Millisecond))
	}

	if rep.Committed {
		fmt.Fprintln(w, green("Changes committed"))
	} else {
		fmt.Fprintln(w, red("Changes rolled back"))
	}

	if !rep.HasFailures() {
		return
	}

	byFile := rep.ByFile()
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	fmt.Fprintln(w, yellow(fmt.Sprintf("%d rows need review:", len(rep.Failures))))
	for _, f := range files {
		fmt.Fprintln(w, "  "+f)
		for _, fail := range byFile[f] {
			fmt.Fprintf(w, "    line %d, column %s: %s\n", fail.Line, fail.Column, fail.Message)
		}
	}
}
