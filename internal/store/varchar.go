// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"catalogrewrite/internal/models"
)

// VarcharStore reads and writes product varchar attribute values.
type VarcharStore struct {
	db DBTX
}

// NewVarcharStore returns a new VarcharStore.
func NewVarcharStore(db DBTX) *VarcharStore {
	return &VarcharStore{db: db}
}

const varcharQuery = `
	SELECT v.value_id, v.attribute_id, v.store_id, v.entity_id, v.value
	FROM catalog_product_entity_varchar v
	JOIN eav_attribute a ON a.attribute_id = v.attribute_id`

func scanVarchar(row *sql.Row) (*models.VarcharAttribute, error) {
	var v models.VarcharAttribute
	var value sql.NullString
	err := row.Scan(&v.ValueID, &v.AttributeID, &v.StoreID, &v.EntityID, &value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v.Value = value.String
	return &v, nil
}

// FindByCodeTypeStoreAndValue returns the attribute value equal to value in
// the given scope, or nil if no entity uses it.
func (s *VarcharStore) FindByCodeTypeStoreAndValue(code string, entityTypeID, storeID int64, value string) (*models.VarcharAttribute, error) {
	v, err := scanVarchar(s.db.QueryRow(varcharQuery+`
		WHERE a.attribute_code = $1 AND a.entity_type_id = $2 AND v.store_id = $3 AND v.value = $4
		ORDER BY v.value_id LIMIT 1`,
		code, entityTypeID, storeID, value))
	if err != nil {
		return nil, fmt.Errorf("find varchar by value: %w", err)
	}
	return v, nil
}

// FindByEntity returns the entity's own value of the attribute in the given
// store, or nil if it has none.
func (s *VarcharStore) FindByEntity(code string, entityTypeID, storeID, entityID int64) (*models.VarcharAttribute, error) {
	v, err := scanVarchar(s.db.QueryRow(varcharQuery+`
		WHERE a.attribute_code = $1 AND a.entity_type_id = $2 AND v.store_id = $3 AND v.entity_id = $4`,
		code, entityTypeID, storeID, entityID))
	if err != nil {
		return nil, fmt.Errorf("find varchar by entity: %w", err)
	}
	return v, nil
}

// Upsert sets the entity's value of the attribute in the given store.
func (s *VarcharStore) Upsert(code string, entityTypeID, storeID, entityID int64, value string) error {
	res, err := s.db.Exec(`
		INSERT INTO catalog_product_entity_varchar (attribute_id, store_id, entity_id, value)
		SELECT attribute_id, $3, $4, $5 FROM eav_attribute
		WHERE attribute_code = $1 AND entity_type_id = $2
		ON CONFLICT (entity_id, attribute_id, store_id)
		DO UPDATE SET value = EXCLUDED.value`,
		code, entityTypeID, storeID, entityID, value)
	if err != nil {
		return fmt.Errorf("upsert varchar %s: %w", code, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("upsert varchar %s: attribute not defined for entity type %d", code, entityTypeID)
	}
	return nil
}
