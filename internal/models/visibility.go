// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Visibility controls where a product is shown in the storefront.
type Visibility int

const (
	VisibilityNotVisibleIndividually Visibility = 1
	VisibilityCatalog                Visibility = 2
	VisibilitySearch                 Visibility = 3
	VisibilityBoth                   Visibility = 4
)

// visibilityLabels maps the import file labels to their enum values.
var visibilityLabels = map[string]Visibility{
	"Not Visible Individually": VisibilityNotVisibleIndividually,
	"Catalog":                  VisibilityCatalog,
	"Search":                   VisibilitySearch,
	"Catalog, Search":          VisibilityBoth,
}

// ParseVisibility returns the visibility for an import label.
func ParseVisibility(label string) (Visibility, bool) {
	v, ok := visibilityLabels[label]
	return v, ok
}

// IsVisible returns true unless the product is hidden from the storefront.
func (v Visibility) IsVisible() bool {
	return v != VisibilityNotVisibleIndividually
}

// String returns the import label of the visibility.
func (v Visibility) String() string {
	for label, val := range visibilityLabels {
		if val == v {
			return label
		}
	}
	return "unknown"
}
