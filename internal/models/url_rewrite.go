// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// EntityTypeProduct is the url_rewrite entity type of product rewrites.
const EntityTypeProduct = "product"

// Redirect types of a URL rewrite.
const (
	RedirectNone      = 0
	RedirectPermanent = 301
)

// URLRewrite maps a public request path to an internal target path within
// one store. ID is zero until the record has been persisted.
type URLRewrite struct {
	ID              int64     `json:"url_rewrite_id"`
	EntityType      string    `json:"entity_type"`
	EntityID        int64     `json:"entity_id"`
	RequestPath     string    `json:"request_path"`
	TargetPath      string    `json:"target_path"`
	RedirectType    int       `json:"redirect_type"`
	StoreID         int64     `json:"store_id"`
	Description     *string   `json:"description,omitempty"`
	IsAutogenerated bool      `json:"is_autogenerated"`
	Metadata        *Metadata `json:"metadata,omitempty"`
}

// IsPersisted returns true if the rewrite already has a durable ID.
func (r *URLRewrite) IsPersisted() bool {
	return r.ID != 0
}

// Equal reports whether two rewrites carry the same values, identity included.
func (r *URLRewrite) Equal(o *URLRewrite) bool {
	return r.ID == o.ID &&
		r.EntityType == o.EntityType &&
		r.EntityID == o.EntityID &&
		r.RequestPath == o.RequestPath &&
		r.TargetPath == o.TargetPath &&
		r.RedirectType == o.RedirectType &&
		r.StoreID == o.StoreID &&
		strPtrEqual(r.Description, o.Description) &&
		r.IsAutogenerated == o.IsAutogenerated &&
		r.Metadata.Equal(o.Metadata)
}

// Metadata is the structured payload of a category-scoped rewrite.
type Metadata struct {
	CategoryID int64 `json:"category_id"`
}

// Equal compares two possibly nil metadata values.
func (m *Metadata) Equal(o *Metadata) bool {
	if m == nil || o == nil {
		return m == nil && o == nil
	}
	return m.CategoryID == o.CategoryID
}

// UnmarshalJSON accepts the category ID both as a number and as a string,
// since older rows store it quoted.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw struct {
		CategoryID json.RawMessage `json:"category_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.CategoryID) == 0 || string(raw.CategoryID) == "null" {
		m.CategoryID = 0
		return nil
	}
	var n int64
	if err := json.Unmarshal(raw.CategoryID, &n); err == nil {
		m.CategoryID = n
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.CategoryID, &s); err != nil {
		return fmt.Errorf("metadata category_id: %w", err)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("metadata category_id %q: %w", s, err)
	}
	m.CategoryID = n
	return nil
}

// DecodeMetadata parses a stored metadata column. Empty values, "[]" and
// payloads without a category ID decode to nil.
func DecodeMetadata(raw string) (*Metadata, error) {
	if raw == "" || raw == "[]" || raw == "{}" || raw == "null" {
		return nil, nil
	}
	var m Metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if m.CategoryID == 0 {
		return nil, nil
	}
	return &m, nil
}

// EncodeMetadata serializes metadata for storage. Nil encodes to NULL.
func EncodeMetadata(m *Metadata) *string {
	if m == nil {
		return nil
	}
	s := fmt.Sprintf(`{"category_id":%d}`, m.CategoryID)
	return &s
}

// URLRewriteProductCategory relates a category-scoped rewrite to its
// product and category. Root category rewrites never have one.
type URLRewriteProductCategory struct {
	URLRewriteID int64 `json:"url_rewrite_id"`
	ProductID    int64 `json:"product_id"`
	CategoryID   int64 `json:"category_id"`
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
