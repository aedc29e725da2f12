// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"catalogrewrite/internal/models"
)

// ProductStore reads products.
type ProductStore struct {
	db DBTX
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db DBTX) *ProductStore {
	return &ProductStore{db: db}
}

// FindBySKU returns the product with the given SKU, or nil if not found.
func (s *ProductStore) FindBySKU(sku string) (*models.Product, error) {
	var p models.Product
	err := s.db.QueryRow(`SELECT entity_id, sku FROM catalog_product_entity WHERE sku = $1`, sku).
		Scan(&p.ID, &p.SKU)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by sku: %w", err)
	}
	return &p, nil
}

// WebsiteCodes returns the codes of the websites the product is assigned to.
func (s *ProductStore) WebsiteCodes(productID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT w.code
		FROM catalog_product_website pw
		JOIN store_website w ON w.website_id = pw.website_id
		WHERE pw.product_id = $1
		ORDER BY w.website_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product websites: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan website code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
