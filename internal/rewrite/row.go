// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"encoding/csv"
	"strings"

	"catalogrewrite/internal/models"
)

// Import columns read by the engine.
const (
	ColumnSKU             = "sku"
	ColumnURLKey          = "url_key"
	ColumnName            = "name"
	ColumnCategories      = "categories"
	ColumnVisibility      = "visibility"
	ColumnStoreViewCode   = "store_view_code"
	ColumnProductWebsites = "product_websites"
)

// Row gives access to one line of import input.
type Row interface {
	Value(column string) string
	Has(column string) bool
	Line() int
	File() string
}

// Splitter explodes a multi-value column into its values.
type Splitter func(value string) []string

// NewSplitter returns a Splitter for the given delimiter. Values may be
// quoted to contain the delimiter; empty values are dropped.
func NewSplitter(delimiter rune) Splitter {
	return func(value string) []string {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		r := csv.NewReader(strings.NewReader(value))
		r.Comma = delimiter
		r.LazyQuotes = true
		r.TrimLeadingSpace = true

		fields, err := r.Read()
		if err != nil {
			fields = strings.Split(value, string(delimiter))
		}

		var out []string
		for _, f := range fields {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
		return out
	}
}

// ProductRow is the typed view of one import line.
type ProductRow struct {
	SKU           string
	URLKey        string
	Name          string
	Categories    []string
	Visibility    string
	StoreViewCode string
	Websites      []string
	File          string
	Line          int
}

// ParseRow reads the engine's columns from row. A missing store view code
// means the admin scope.
func ParseRow(row Row, split Splitter) ProductRow {
	value := func(column string) string {
		if !row.Has(column) {
			return ""
		}
		return strings.TrimSpace(row.Value(column))
	}

	p := ProductRow{
		SKU:           value(ColumnSKU),
		URLKey:        value(ColumnURLKey),
		Name:          value(ColumnName),
		Categories:    split(value(ColumnCategories)),
		Visibility:    value(ColumnVisibility),
		StoreViewCode: value(ColumnStoreViewCode),
		Websites:      split(value(ColumnProductWebsites)),
		File:          row.File(),
		Line:          row.Line(),
	}
	if p.StoreViewCode == "" {
		p.StoreViewCode = models.AdminStoreCode
	}
	return p
}

// IsAdmin returns true for rows of the admin scope.
func (p *ProductRow) IsAdmin() bool {
	return p.StoreViewCode == models.AdminStoreCode
}

// inherit fills every empty value from the admin row of the same SKU.
func (p *ProductRow) inherit(admin *ProductRow) {
	if p.URLKey == "" {
		p.URLKey = admin.URLKey
	}
	if p.Name == "" {
		p.Name = admin.Name
	}
	if len(p.Categories) == 0 {
		p.Categories = admin.Categories
	}
	if p.Visibility == "" {
		p.Visibility = admin.Visibility
	}
	if len(p.Websites) == 0 {
		p.Websites = admin.Websites
	}
}
