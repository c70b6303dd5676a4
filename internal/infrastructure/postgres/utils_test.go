package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Dobles: Querier y pgx.Tx mínimos
// ─────────────────────────────────────────────────────────────────────────────

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.vals[i].(int64)
		case *bool:
			*p = r.vals[i].(bool)
		}
	}
	return nil
}

type fakeTx struct {
	pgx.Tx
	rows      []fakeRow // respuestas de QueryRow en orden
	execErr   error
	queries   []string
	committed bool
}

func (t *fakeTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	t.queries = append(t.queries, sql)
	row := t.rows[0]
	t.rows = t.rows[1:]
	return row
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.queries = append(t.queries, sql)
	return pgconn.NewCommandTag("DELETE 1"), t.execErr
}

func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { return nil }

type fakeDB struct {
	Querier
	tx *fakeTx
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) { return d.tx, nil }

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return d.tx.QueryRow(ctx, sql, args...)
}

// ─────────────────────────────────────────────────────────────────────────────
// deleteRestrict
// ─────────────────────────────────────────────────────────────────────────────

func TestDeleteRestrict_SinDependientes(t *testing.T) {
	tx := &fakeTx{rows: []fakeRow{{vals: []any{int64(4)}}, {vals: []any{false}}}}

	err := deleteRestrict(context.Background(), &fakeDB{tx: tx}, "servicios", 4, servicioDependents)
	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.Contains(t, tx.queries[0], "FOR UPDATE")
	assert.Equal(t, "DELETE FROM servicios WHERE id = $1", tx.queries[2])
}

func TestDeleteRestrict_ConDependientes(t *testing.T) {
	tx := &fakeTx{rows: []fakeRow{{vals: []any{int64(4)}}, {vals: []any{true}}}}

	err := deleteRestrict(context.Background(), &fakeDB{tx: tx}, "servicios", 4, servicioDependents)
	assert.ErrorIs(t, err, domain.ErrHasDependents)
	assert.False(t, tx.committed)
	assert.Len(t, tx.queries, 2, "no se llega a ejecutar el DELETE")
}

func TestDeleteRestrict_NoExiste(t *testing.T) {
	tx := &fakeTx{rows: []fakeRow{{err: pgx.ErrNoRows}}}

	err := deleteRestrict(context.Background(), &fakeDB{tx: tx}, "usuarios", 9, userDependents)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRestrict_CarreraConClaveForanea(t *testing.T) {
	tx := &fakeTx{
		rows:    []fakeRow{{vals: []any{int64(1)}}, {vals: []any{false}}},
		execErr: &pgconn.PgError{Code: "23503"},
	}

	err := deleteRestrict(context.Background(), &fakeDB{tx: tx}, "transacciones", 1, transaccionDependents)
	assert.ErrorIs(t, err, domain.ErrHasDependents)
	assert.False(t, tx.committed)
}

func TestDeleteRestrict_SinListaDeDependientes(t *testing.T) {
	tx := &fakeTx{rows: []fakeRow{{vals: []any{int64(2)}}}}

	require.NoError(t, deleteRestrict(context.Background(), &fakeDB{tx: tx}, "mensajes", 2, nil))
	assert.Len(t, tx.queries, 2)
}

func TestDependentsQuery(t *testing.T) {
	q := dependentsQuery(userDependents)
	assert.True(t, strings.HasPrefix(q, "SELECT EXISTS (SELECT 1 FROM servicios WHERE usuario_id = $1)"))
	assert.Equal(t, len(userDependents)-1, strings.Count(q, " OR "))
	assert.Contains(t, q, "mensajes WHERE receptor_id = $1")
}

func TestPgErrorCodes(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
}

// ─────────────────────────────────────────────────────────────────────────────
// ReferenceLookup
// ─────────────────────────────────────────────────────────────────────────────

func TestReferenceLookup_TablaNoPermitida(t *testing.T) {
	l := NewReferenceLookup(&fakeDB{tx: &fakeTx{}})

	_, err := l.Exists(context.Background(), "usuarios; DROP TABLE usuarios", 1)
	assert.Error(t, err)
}

func TestReferenceLookup_Exists(t *testing.T) {
	tx := &fakeTx{rows: []fakeRow{{vals: []any{true}}}}
	l := NewReferenceLookup(&fakeDB{tx: tx})

	ok, err := l.Exists(context.Background(), repository.TablaCiudades, 100)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, tx.queries[0], "FROM ciudades WHERE id = $1")
}
