// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// AdminStoreCode is the code of the global (admin) store view. Rows without
// a store view code belong to this scope.
const AdminStoreCode = "admin"

// AdminStoreID is the ID of the admin store view.
const AdminStoreID int64 = 0

// Store is a store view: a storefront-locale scope in which rewrites and
// URL keys are unique.
type Store struct {
	ID             int64  `json:"store_id"`
	Code           string `json:"code"`
	WebsiteCode    string `json:"website_code"`
	RootCategoryID int64  `json:"root_category_id"`
	IsActive       bool   `json:"is_active"`
}

// IsAdmin returns true for the global admin scope.
func (s *Store) IsAdmin() bool {
	return s.Code == AdminStoreCode
}
