// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import "catalogrewrite/internal/models"

// VisibilityGate maps product IDs to their visibility for one import run.
// It is recorded from the first row of a product and consulted by every
// later row of the same product.
type VisibilityGate struct {
	byProduct map[int64]models.Visibility
}

// NewVisibilityGate returns an empty gate.
func NewVisibilityGate() *VisibilityGate {
	return &VisibilityGate{byProduct: make(map[int64]models.Visibility)}
}

// Record maps productID to the visibility with the given label.
func (g *VisibilityGate) Record(productID int64, label string) error {
	v, ok := models.ParseVisibility(label)
	if !ok {
		return &InvalidVisibilityError{ProductID: productID, Label: label}
	}
	g.byProduct[productID] = v
	return nil
}

// Has returns true once productID has been recorded.
func (g *VisibilityGate) Has(productID int64) bool {
	_, ok := g.byProduct[productID]
	return ok
}

// IsVisible returns true if the product is visible in catalog or search.
func (g *VisibilityGate) IsVisible(productID int64) (bool, error) {
	v, ok := g.byProduct[productID]
	if !ok {
		return false, &UnmappedVisibilityError{ProductID: productID}
	}
	return v.IsVisible(), nil
}
