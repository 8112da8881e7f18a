package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/pkg/config"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// fakeQuerier registra la última consulta y devuelve respuestas fijas.
type fakeQuerier struct {
	lastSQL  string
	lastArgs []any
	tag      pgconn.CommandTag
	err      error
	row      pgx.Row
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return f.tag, f.err
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	return nil, f.err
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}

type fakeRow struct {
	val string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.val
	return nil
}

func TestHandle_ExecuteDevuelveFilasAfectadas(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("DELETE 1")}
	h := NewHandle(q)

	n, err := h.Execute(context.Background(), `DELETE FROM categories WHERE id = $1 AND company_id = $2`, "a", "b")

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, []any{"a", "b"}, q.lastArgs, "los valores viajan como argumentos posicionales")
}

func TestHandle_InsertDevuelveID(t *testing.T) {
	h := NewHandle(&fakeQuerier{row: fakeRow{val: "8f14e45f-ceea-467a-9575-6d2a1e8b5f3c"}})

	id, err := h.Insert(context.Background(), `INSERT INTO x DEFAULT VALUES RETURNING id::text`)

	require.NoError(t, err)
	assert.Equal(t, "8f14e45f-ceea-467a-9575-6d2a1e8b5f3c", id)
}

func TestHandle_InsertSinID_Error(t *testing.T) {
	h := NewHandle(&fakeQuerier{row: fakeRow{}})

	_, err := h.Insert(context.Background(), `INSERT INTO x DEFAULT VALUES RETURNING id::text`)

	assert.Error(t, err)
}

func TestHandle_FetchOneSinFilas(t *testing.T) {
	h := NewHandle(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}})

	var s string
	err := h.FetchOne(context.Background(), `SELECT 1`).Scan(&s)

	assert.True(t, isNoRows(err))
}

func TestClassify_PasaErroresDeDatos(t *testing.T) {
	assert.NoError(t, classify(nil))

	plain := errors.New("syntax error")
	assert.Same(t, plain, classify(plain))

	pgErr := &pgconn.PgError{Code: codeUniqueViolation}
	assert.Equal(t, codeUniqueViolation, pgCode(classify(pgErr)))
}

func TestMapWriteError(t *testing.T) {
	assert.ErrorIs(t, mapWriteError("insert", &pgconn.PgError{Code: codeUniqueViolation}), domain.ErrDuplicate)
	assert.ErrorIs(t, mapWriteError("insert", &pgconn.PgError{Code: codeForeignKeyViolation}), domain.ErrConflict)

	var ve *domain.ValidationError
	require.ErrorAs(t, mapWriteError("update", &pgconn.PgError{Code: codeInvalidText}), &ve)
	assert.Equal(t, "id", ve.Field)

	other := errors.New("boom")
	assert.ErrorIs(t, mapWriteError("delete", other), other)
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", nullable("x"))
}

func TestLoadMigrations_OrdenadasPorVersion(t *testing.T) {
	list, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, list)

	assert.Equal(t, "001", list[0].Version)
	assert.Equal(t, "init", list[0].Name)
	assert.Contains(t, list[0].SQL, "CREATE TABLE")
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Version, list[i].Version)
	}
}

func TestManager_ErrorDeConexionQuedaFijado(t *testing.T) {
	mgr := NewManager(config.DBConfig{
		DatabaseURL: "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1",
	}, logger.Nop())
	defer mgr.Close()

	_, err := mgr.Handle(context.Background())
	require.ErrorIs(t, err, domain.ErrConnection)

	_, err2 := mgr.Begin(context.Background())
	assert.ErrorIs(t, err2, domain.ErrConnection)
	assert.Same(t, err, err2, "el primer fallo se reutiliza sin reintentar")
}

func TestManager_CloseAntesDelPrimerUso(t *testing.T) {
	mgr := NewManager(config.DBConfig{
		DatabaseURL: "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1",
	}, logger.Nop())
	mgr.Close()
	mgr.Close()

	_, err := mgr.Handle(context.Background())
	require.ErrorIs(t, err, domain.ErrConnection)
	assert.ErrorIs(t, mgr.Ping(context.Background()), domain.ErrConnection)
}

func TestManager_CloseConcurrenteConPrimerPool(t *testing.T) {
	mgr := NewManager(config.DBConfig{
		DatabaseURL: "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1",
	}, logger.Nop())

	done := make(chan error)
	go func() {
		_, err := mgr.Pool(context.Background())
		done <- err
	}()
	mgr.Close()

	assert.ErrorIs(t, <-done, domain.ErrConnection)
}
