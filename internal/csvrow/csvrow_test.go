// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package csvrow

import (
	"errors"
	"io"
	"strings"
	"testing"
)

const products = "\ufeffSKU,store_view_code,url_key,categories\n" +
	"TEST-01,,bruno-hoodie,\"Default Category/Men,Default Category\"\n" +
	"\n" +
	"TEST-01,default,bruno-kapuzenpulli\n"

func TestReader(t *testing.T) {
	r, err := NewReader(strings.NewReader(products), "products.csv", ',')
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	first, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got := first.Value("sku"); got != "TEST-01" {
		t.Errorf("sku = %q, want %q", got, "TEST-01")
	}
	if got := first.Value("categories"); got != "Default Category/Men,Default Category" {
		t.Errorf("categories = %q", got)
	}
	if !first.Has("store_view_code") || first.Value("store_view_code") != "" {
		t.Errorf("store_view_code should be present and empty")
	}
	if first.Line() != 2 || first.File() != "products.csv" {
		t.Errorf("position = %s:%d, want products.csv:2", first.File(), first.Line())
	}

	second, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if second.Line() != 4 {
		t.Errorf("line = %d, want 4 (blank line skipped)", second.Line())
	}
	if second.Has("categories") {
		t.Error("short row should not have the categories column")
	}
	if got := second.Value("categories"); got != "" {
		t.Errorf("categories = %q, want empty", got)
	}
	if second.Has("name") {
		t.Error("unknown column reported as present")
	}

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReaderColumns(t *testing.T) {
	r, err := NewReader(strings.NewReader("sku; Name ;url_key\n"), "p.csv", ';')
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got := strings.Join(r.Columns(), ",")
	if got != "sku,name,url_key" {
		t.Errorf("Columns = %q", got)
	}
}

func TestReaderEmptyFile(t *testing.T) {
	if _, err := NewReader(strings.NewReader(""), "empty.csv", ','); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
}

func TestReaderMalformed(t *testing.T) {
	r, err := NewReader(strings.NewReader("sku,url_key\n\"TEST-01,oops\n"), "bad.csv", ',')
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.Next(); err == nil || errors.Is(err, io.EOF) {
		t.Errorf("expected a parse error, got %v", err)
	}
}
