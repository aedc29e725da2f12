// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"fmt"

	"catalogrewrite/internal/models"
	"catalogrewrite/internal/slug"
)

func resolveProduct(ctx *RowContext) error {
	p, err := ctx.Run.engine.deps.Products.FindBySKU(ctx.Row.SKU)
	if err != nil {
		return fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return &ProductNotFoundError{SKU: ctx.Row.SKU}
	}
	ctx.Product = p
	return nil
}

// inheritAdminRow fills empty values of a store view row from the admin
// row of the same SKU.
func inheritAdminRow(ctx *RowContext) error {
	if ctx.Row.IsAdmin() {
		return nil
	}
	if admin, ok := ctx.Run.adminRows[ctx.Row.SKU]; ok {
		ctx.Row.inherit(&admin)
	}
	return nil
}

// clearRewrites deletes every rewrite of the SKU on its first row.
func clearRewrites(ctx *RowContext) error {
	r := ctx.Run
	if r.cleared[ctx.Row.SKU] {
		return nil
	}
	r.cleared[ctx.Row.SKU] = true

	n, err := r.engine.deps.Rewrites.DeleteBySKU(ctx.Row.SKU)
	if err != nil {
		return fmt.Errorf("clear url rewrites: %w", err)
	}
	if n > 0 {
		r.logger.Info("cleared url rewrites", "sku", ctx.Row.SKU, "deleted", n)
	}
	return nil
}

// resolveURLKey derives a unique url key from the name when the row has none.
func resolveURLKey(ctx *RowContext) error {
	if ctx.Row.URLKey != "" {
		return nil
	}

	e := ctx.Run.engine
	base := slug.Generate(ctx.Row.Name)
	if base == "" || e.deps.URLKeys == nil {
		ctx.Run.logger.Debug("can't initialize url key",
			"sku", ctx.Row.SKU, "file", ctx.Row.File, "line", ctx.Row.Line)
		return &MissingURLKeyError{SKU: ctx.Row.SKU}
	}

	key, err := e.deps.URLKeys.MakeUnique(base, e.opts.EntityTypeID, models.AdminStoreID, ctx.Product.ID)
	if err != nil {
		return fmt.Errorf("derive url key: %w", err)
	}
	ctx.Row.URLKey = key

	if e.deps.URLKeyWriter != nil {
		if err := e.deps.URLKeyWriter.Upsert(models.AttributeCodeURLKey, e.opts.EntityTypeID, models.AdminStoreID, ctx.Product.ID, key); err != nil {
			return fmt.Errorf("store url key: %w", err)
		}
	}
	ctx.Run.logger.Debug("url key derived from name", "sku", ctx.Row.SKU, "url_key", key)
	return nil
}

func rememberAdminRow(ctx *RowContext) error {
	if ctx.Row.IsAdmin() {
		ctx.Run.adminRows[ctx.Row.SKU] = ctx.Row
	}
	return nil
}

// recordVisibility maps the product's visibility from its first row.
func recordVisibility(ctx *RowContext) error {
	gate := ctx.Run.visibility
	if gate.Has(ctx.Product.ID) {
		return nil
	}
	return gate.Record(ctx.Product.ID, ctx.Row.Visibility)
}

// dispatchStores reconciles a store view row right away. An admin row is
// held back until its SKU is complete, so it only fans out to the stores
// without a row of their own.
func dispatchStores(ctx *RowContext) error {
	r := ctx.Run
	if ctx.Row.IsAdmin() {
		r.pending = ctx
		return nil
	}

	st, err := r.engine.deps.Stores.FindByCode(ctx.Row.StoreViewCode)
	if err != nil {
		return fmt.Errorf("load store view: %w", err)
	}
	if st == nil {
		return &StoreNotFoundError{Code: ctx.Row.StoreViewCode}
	}
	if !st.IsActive {
		r.logger.Debug("store is not active, no url rewrites created",
			"store", st.Code, "sku", ctx.Row.SKU)
		return nil
	}
	return r.reconcileStore(ctx, *st)
}
