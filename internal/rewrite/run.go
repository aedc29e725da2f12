// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"catalogrewrite/internal/models"
)

// Run is the state of one import. It is not safe for concurrent use.
type Run struct {
	ID string

	engine     *Engine
	logger     *slog.Logger
	visibility *VisibilityGate
	adminRows  map[string]ProductRow
	processed  map[string]map[string]bool
	cleared    map[string]bool
	stores     []models.Store
	pending    *RowContext
	report     *Report
}

// Process runs one import row through the pipeline. Errors that lenient
// mode may skip are recorded in the report instead of being returned.
func (r *Run) Process(row Row) error {
	p := ParseRow(row, r.engine.opts.Splitter)

	if r.pending != nil && r.pending.Row.SKU != p.SKU {
		if err := r.flush(); err != nil {
			return err
		}
	}

	r.report.Rows++
	ctx := &RowContext{Run: r, Row: p}
	err := r.engine.pipeline.Run(ctx)
	return r.handle(ctx.Row, err, columnOf(err))
}

// Finish completes the last SKU of the run.
func (r *Run) Finish() error {
	err := r.flush()
	r.report.FinishedAt = time.Now()
	return err
}

// Report returns the run's report.
func (r *Run) Report() *Report {
	return r.report
}

// handle returns err unless lenient mode may skip it, in which case it is
// recorded against the row and column.
func (r *Run) handle(row ProductRow, err error, column string) error {
	if err == nil {
		return nil
	}
	if r.engine.opts.Strict || !recoverable(err) {
		return err
	}

	if !r.report.Add(row.File, row.Line, column, err.Error()) {
		return nil
	}
	r.logger.Warn("import row skipped",
		"sku", row.SKU,
		"file", row.File,
		"line", row.Line,
		"column", column,
		"error", err,
	)
	return nil
}

// flush fans the pending admin row out to its websites' stores.
func (r *Run) flush() error {
	ctx := r.pending
	if ctx == nil {
		return nil
	}
	r.pending = nil

	err := r.fanOut(ctx)
	return r.handle(ctx.Row, err, columnOf(err))
}

func (r *Run) fanOut(ctx *RowContext) error {
	websites := ctx.Row.Websites
	if len(websites) == 0 {
		codes, err := r.engine.deps.Products.WebsiteCodes(ctx.Product.ID)
		if err != nil {
			return fmt.Errorf("load product websites: %w", err)
		}
		websites = codes
	}
	if len(websites) == 0 {
		r.logger.Debug("product has no websites, no url rewrites created", "sku", ctx.Row.SKU)
		return nil
	}

	stores, err := r.storeList()
	if err != nil {
		return err
	}

	assigned := make(map[string]bool, len(websites))
	for _, w := range websites {
		assigned[w] = true
	}
	for _, st := range stores {
		if st.IsAdmin() || !assigned[st.WebsiteCode] {
			continue
		}
		if !st.IsActive {
			r.logger.Debug("store is not active, no url rewrites created",
				"store", st.Code, "sku", ctx.Row.SKU)
			continue
		}
		if err := r.reconcileStore(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (r *Run) storeList() ([]models.Store, error) {
	if r.stores == nil {
		stores, err := r.engine.deps.Stores.List()
		if err != nil {
			return nil, fmt.Errorf("list store views: %w", err)
		}
		r.stores = stores
	}
	return r.stores, nil
}

// reconcileStore builds the product's candidates for store and reconciles
// them with storage. Every (SKU, store) pair is handled once per run.
func (r *Run) reconcileStore(ctx *RowContext, store models.Store) error {
	e := r.engine
	sku := ctx.Row.SKU

	if r.processed[sku][store.Code] {
		r.logger.Debug("url rewrites already processed", "sku", sku, "store", store.Code)
		return nil
	}
	if r.processed[sku] == nil {
		r.processed[sku] = make(map[string]bool)
	}
	r.processed[sku][store.Code] = true

	settings, err := LoadSettings(e.deps.Config, store.ID, e.opts.Overrides)
	if err != nil {
		return fmt.Errorf("load catalog settings: %w", err)
	}

	visible, err := r.visibility.IsVisible(ctx.Product.ID)
	if err != nil {
		return err
	}

	var candidates []models.URLRewrite
	if visible {
		ids, err := e.categories.Resolve(ctx.Row.Categories, store, settings, func(err error) error {
			return r.handle(ctx.Row, err, ColumnCategories)
		})
		if err != nil {
			return err
		}
		candidates, err = e.builder.Build(ctx.Product.ID, ctx.Row.URLKey, store, ids, settings, visible)
		if err != nil {
			return err
		}
	} else {
		r.logger.Debug("product is not visible, no url rewrites created", "sku", sku, "store", store.Code)
	}

	res, err := e.reconciler.Reconcile(Pass{
		ProductID:  ctx.Product.ID,
		SKU:        sku,
		Store:      store,
		URLKey:     ctx.Row.URLKey,
		Candidates: candidates,
		Visible:    visible,
		Settings:   settings,
		OnError: func(err error, column string) error {
			return r.handle(ctx.Row, err, column)
		},
	})
	r.report.Totals.Add(res)
	if err != nil {
		return err
	}

	r.logger.Debug("url rewrites reconciled",
		"sku", sku,
		"store", store.Code,
		"created", res.Created,
		"updated", res.Updated,
		"redirected", res.Redirected,
		"deleted", res.Deleted,
	)
	return nil
}

// columnOf names the import column an error is reported against.
func columnOf(err error) string {
	var (
		prodErr  *ProductNotFoundError
		keyErr   *MissingURLKeyError
		catErr   *CategoryNotFoundError
		visErr   *InvalidVisibilityError
		dupErr   *DuplicateRewriteError
		storeErr *StoreNotFoundError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &prodErr):
		return ColumnSKU
	case errors.As(err, &keyErr), errors.As(err, &dupErr):
		return ColumnURLKey
	case errors.As(err, &catErr):
		return ColumnCategories
	case errors.As(err, &visErr):
		return ColumnVisibility
	case errors.As(err, &storeErr):
		return ColumnStoreViewCode
	}
	return ""
}
