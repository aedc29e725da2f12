// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package csvrow reads product import files row by row. Each row exposes its
// cells by header name along with its file name and line number.
package csvrow

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyFile is returned when the file has no header line.
var ErrEmptyFile = errors.New("csv file has no header")

// Reader yields the data rows of a CSV file with a header line.
type Reader struct {
	csv     *csv.Reader
	file    string
	columns []string
	header  map[string]int
}

// NewReader reads the header line of r. Header names are trimmed and
// lower-cased; the first occurrence of a repeated name wins.
func NewReader(r io.Reader, file string, delimiter rune) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1

	names, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", file, err)
	}

	columns := make([]string, len(names))
	header := make(map[string]int, len(names))
	for i, name := range names {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[i] = name
		if _, ok := header[name]; !ok && name != "" {
			header[name] = i
		}
	}
	return &Reader{csv: cr, file: file, columns: columns, header: header}, nil
}

// Columns returns the header names in file order.
func (r *Reader) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Next returns the next data row, or io.EOF after the last one. Blank lines
// are skipped.
func (r *Reader) Next() (*Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read %s: %w", r.file, err)
	}
	line, _ := r.csv.FieldPos(0)
	return &Row{header: r.header, record: record, file: r.file, line: line}, nil
}

// Row is one data row of a CSV file.
type Row struct {
	header map[string]int
	record []string
	file   string
	line   int
}

// Value returns the trimmed cell of column, or "" when the row lacks it.
func (r *Row) Value(column string) string {
	i, ok := r.header[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

// Has reports whether the file has the column and the row reaches it.
func (r *Row) Has(column string) bool {
	i, ok := r.header[column]
	return ok && i < len(r.record)
}

func (r *Row) Line() int    { return r.line }
func (r *Row) File() string { return r.file }
