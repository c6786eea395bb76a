package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// insertBatch runs a named multi-row INSERT inside one transaction so that a
// fan-out either lands completely or not at all. rows must be a non-empty slice
// of structs; sqlx expands the VALUES clause once per element.
func insertBatch(ctx context.Context, db *sqlx.DB, label, query string, rows interface{}) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", label, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", label, err)
	}
	committed = true
	return nil
}

func normaliseLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

// limitClause renders the LIMIT suffix of a listing query. Uncapped listings
// are reserved for single-student reads.
func limitClause(all bool, limit, fallback, max int) string {
	if all {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", normaliseLimit(limit, fallback, max))
}
