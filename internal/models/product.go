// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ProductEntityTypeID is the EAV entity type ID of catalog products.
const ProductEntityTypeID int64 = 4

// AttributeCodeURLKey is the attribute holding a product's URL key.
const AttributeCodeURLKey = "url_key"

// Product is the minimal product record the rewrite import needs.
type Product struct {
	ID  int64  `json:"entity_id"`
	SKU string `json:"sku"`
}

// VarcharAttribute is one row of the product varchar attribute table.
type VarcharAttribute struct {
	ValueID     int64  `json:"value_id"`
	AttributeID int64  `json:"attribute_id"`
	StoreID     int64  `json:"store_id"`
	EntityID    int64  `json:"entity_id"`
	Value       string `json:"value"`
}
