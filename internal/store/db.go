// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides the PostgreSQL persistence adapters used by the
// rewrite import. Every store accepts a DBTX so the host can run a whole
// import batch inside one transaction.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"catalogrewrite/internal/models"
)

// DBTX is the subset of *sql.DB and *sql.Tx the stores need.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// pgUniqueViolation is the SQLSTATE of a unique constraint violation.
const pgUniqueViolation = "23505"

// mapDuplicate converts a unique violation into models.ErrDuplicate and
// passes every other error through untouched.
func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %w", models.ErrDuplicate, err)
	}
	return err
}

// writeSavepoint names the savepoint guarding a single write.
const writeSavepoint = "store_write"

// savepoint runs fn inside a savepoint when db is a transaction. A failed
// write then rolls back to the savepoint and the transaction stays usable.
func savepoint(db DBTX, fn func() error) error {
	tx, ok := db.(*sql.Tx)
	if !ok {
		return fn()
	}
	if _, err := tx.Exec("SAVEPOINT " + writeSavepoint); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if err := fn(); err != nil {
		if _, rerr := tx.Exec("ROLLBACK TO SAVEPOINT " + writeSavepoint); rerr != nil {
			return errors.Join(err, fmt.Errorf("rollback to savepoint: %w", rerr))
		}
		return err
	}
	if _, err := tx.Exec("RELEASE SAVEPOINT " + writeSavepoint); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}
