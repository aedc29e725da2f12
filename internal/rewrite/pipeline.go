// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import "catalogrewrite/internal/models"

// RowContext carries one row through the pipeline.
type RowContext struct {
	Run     *Run
	Row     ProductRow
	Product *models.Product
}

// Stage is one processing step of a row.
type Stage func(*RowContext) error

// Pipeline runs its stages in order until one fails.
type Pipeline []Stage

// Run passes ctx through every stage.
func (p Pipeline) Run(ctx *RowContext) error {
	for _, stage := range p {
		if err := stage(ctx); err != nil {
			return err
		}
	}
	return nil
}
