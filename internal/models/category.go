// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SuperRootCategoryID is the implicit root every category tree hangs from.
const SuperRootCategoryID int64 = 1

// Category is a catalog category as seen from one store view. URLPath is
// store-scoped and nil when the category has none (typical for roots).
type Category struct {
	ID       int64   `json:"entity_id"`
	ParentID int64   `json:"parent_id"`
	Path     string  `json:"path"`
	URLPath  *string `json:"url_path,omitempty"`
	IsAnchor bool    `json:"is_anchor"`
}

// HasURLPath returns true if the category carries a non-empty url_path.
func (c *Category) HasURLPath() bool {
	return c.URLPath != nil && *c.URLPath != ""
}
