package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx: los repositorios funcionan igual
// dentro y fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Handle expone las cuatro primitivas parametrizadas sobre un Querier. Ninguna consulta se
// arma concatenando valores: todo dato viaja como argumento posicional ($1, $2, ...).
type Handle struct {
	q Querier
}

// NewHandle envuelve un pool o una tx.
func NewHandle(q Querier) *Handle {
	return &Handle{q: q}
}

// FetchOne ejecuta una consulta que devuelve a lo sumo una fila.
// El error (incluido pgx.ErrNoRows) aparece en Scan.
func (h *Handle) FetchOne(ctx context.Context, query string, args ...any) pgx.Row {
	return classifiedRow{row: h.q.QueryRow(ctx, query, args...)}
}

// FetchAll ejecuta una consulta de varias filas. El llamador debe cerrar rows.
func (h *Handle) FetchAll(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	rows, err := h.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// Insert ejecuta un INSERT ... RETURNING id y devuelve el id generado.
func (h *Handle) Insert(ctx context.Context, query string, args ...any) (string, error) {
	var id string
	if err := h.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", classify(err)
	}
	if id == "" {
		return "", fmt.Errorf("insert: no se devolvió id")
	}
	return id, nil
}

// Execute ejecuta UPDATE/DELETE y devuelve la cantidad de filas afectadas.
func (h *Handle) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	cmd, err := h.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, classify(err)
	}
	return cmd.RowsAffected(), nil
}

type classifiedRow struct {
	row pgx.Row
}

func (r classifiedRow) Scan(dest ...any) error {
	return classify(r.row.Scan(dest...))
}
