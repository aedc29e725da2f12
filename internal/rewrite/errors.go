// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"errors"
	"fmt"

	"catalogrewrite/internal/models"
)

// CategoryNotFoundError is returned when a category path or ID does not
// resolve in the row's store.
type CategoryNotFoundError struct {
	Path    string
	ID      int64
	StoreID int64
}

func (e *CategoryNotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("category with path %q not found in store %d", e.Path, e.StoreID)
	}
	return fmt.Sprintf("category with ID %d not found in store %d", e.ID, e.StoreID)
}

// MissingURLPathError is returned when a non-root category used for a
// rewrite has no url_path.
type MissingURLPathError struct {
	CategoryID int64
	StoreID    int64
}

func (e *MissingURLPathError) Error() string {
	return fmt.Sprintf("category with ID %d has no url_path in store %d", e.CategoryID, e.StoreID)
}

// InvalidVisibilityError is returned for a visibility label outside the
// known set.
type InvalidVisibilityError struct {
	ProductID int64
	Label     string
}

func (e *InvalidVisibilityError) Error() string {
	return fmt.Sprintf("invalid visibility %q for product %d", e.Label, e.ProductID)
}

// UnmappedVisibilityError is returned when visibility is queried for a
// product that was never recorded.
type UnmappedVisibilityError struct {
	ProductID int64
}

func (e *UnmappedVisibilityError) Error() string {
	return fmt.Sprintf("no visibility recorded for product %d", e.ProductID)
}

// DuplicateRewriteError is returned when a rewrite or relation collides on
// (request_path, store_id). Owner is the rewrite already holding the path
// when it could be loaded.
type DuplicateRewriteError struct {
	RequestPath string
	StoreID     int64
	Owner       *models.URLRewrite
	Err         error
}

func (e *DuplicateRewriteError) Error() string {
	if e.Owner != nil {
		return fmt.Sprintf("duplicate url rewrite %q in store %d, already used by %s %d: %v",
			e.RequestPath, e.StoreID, e.Owner.EntityType, e.Owner.EntityID, e.Err)
	}
	return fmt.Sprintf("duplicate url rewrite %q in store %d: %v", e.RequestPath, e.StoreID, e.Err)
}

func (e *DuplicateRewriteError) Unwrap() error { return e.Err }

// ProductNotFoundError is returned when the row's SKU has no product.
type ProductNotFoundError struct {
	SKU string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with SKU %q can't be loaded to create url rewrites", e.SKU)
}

// MissingURLKeyError is returned when a row has neither a url_key nor a
// name to derive one from.
type MissingURLKeyError struct {
	SKU string
}

func (e *MissingURLKeyError) Error() string {
	return fmt.Sprintf("can't find a value in column %q for product with SKU %q", ColumnURLKey, e.SKU)
}

// StoreNotFoundError is returned for an unknown store view code.
type StoreNotFoundError struct {
	Code string
}

func (e *StoreNotFoundError) Error() string {
	return fmt.Sprintf("store view with code %q not found", e.Code)
}

// recoverable reports whether lenient mode may downgrade err to a soft
// failure. Visibility errors signal a broken row order and never are.
func recoverable(err error) bool {
	var (
		catErr  *CategoryNotFoundError
		dupErr  *DuplicateRewriteError
		prodErr *ProductNotFoundError
		keyErr  *MissingURLKeyError
	)
	return errors.As(err, &catErr) ||
		errors.As(err, &dupErr) ||
		errors.As(err, &prodErr) ||
		errors.As(err, &keyErr)
}
