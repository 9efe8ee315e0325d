// Package repo contains all database access logic for the wedding timeline API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/wedding-timeline/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Postgres error codes mapped onto domain errors.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// constraintMessages turns constraint names into messages safe to show clients.
var constraintMessages = map[string]string{
	"presets_name_key":       "a preset with that name already exists",
	"presets_name_not_blank": "name is required",
}

func constraintMessage(name string) string {
	if msg, ok := constraintMessages[name]; ok {
		return msg
	}
	return name
}

// mapError translates driver errors into domain sentinels, keeping the
// original error in the chain.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, constraintMessage(pgErr.ConstraintName))
		case pgCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrValidation, constraintMessage(pgErr.ConstraintName))
		}
	}
	return err
}
