package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

// Querier lo que los repositorios necesitan de la conexión. Lo cumplen *pgxpool.Pool y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type scanner interface {
	Scan(dest ...any) error
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// dependent columna de otra tabla que referencia al registro que se quiere borrar.
type dependent struct {
	table  string
	column string
}

// deleteRestrict borra table.id dentro de una transacción, rechazando el borrado con
// domain.ErrHasDependents si alguna fila de deps lo referencia. Sin fila: domain.ErrNotFound.
func deleteRestrict(ctx context.Context, db Querier, table string, id int64, deps []dependent) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete %s: %w", table, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked int64
	err = tx.QueryRow(ctx, `SELECT id FROM `+table+` WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock %s: %w", table, err)
	}

	if len(deps) > 0 {
		var has bool
		if err := tx.QueryRow(ctx, dependentsQuery(deps), id).Scan(&has); err != nil {
			return fmt.Errorf("dependents %s: %w", table, err)
		}
		if has {
			return domain.ErrHasDependents
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete %s: %w", table, err)
	}
	return nil
}

// dependentsQuery SELECT EXISTS(...) OR EXISTS(...) sobre las columnas dependientes.
func dependentsQuery(deps []dependent) string {
	parts := make([]string, 0, len(deps))
	for _, d := range deps {
		parts = append(parts, fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE %s = $1)", d.table, d.column))
	}
	return "SELECT " + strings.Join(parts, " OR ")
}
