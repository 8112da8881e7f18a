package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/pkg/config"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// noCopy hace que go vet (copylocks) rechace copias de Manager.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Manager es el dueño del único pool de conexiones del proceso. El pool se crea en el
// primer uso y se reutiliza hasta Close. Si la conexión inicial falla, el error queda
// fijado: el proceso no puede atender peticiones.
type Manager struct {
	_ noCopy

	cfg config.DBConfig
	log *logger.Logger

	once sync.Once
	pool *pgxpool.Pool
	err  error
}

// NewManager construye el manager sin conectar.
func NewManager(cfg config.DBConfig, log *logger.Logger) *Manager {
	return &Manager{cfg: cfg, log: log.Component("postgres")}
}

// Pool devuelve el pool, creándolo en la primera llamada.
func (m *Manager) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	m.once.Do(func() {
		pool, err := newPool(ctx, m.cfg)
		if err != nil {
			m.log.Error().Err(err).
				Str("host", m.cfg.Host).
				Int("port", m.cfg.Port).
				Str("db", m.cfg.DBName).
				Bool("database_url", m.cfg.DatabaseURL != "").
				Msg("no se pudo conectar a PostgreSQL")
			m.err = fmt.Errorf("%w: %w", domain.ErrConnection, err)
			return
		}
		m.log.Info().Int("max_conns", m.cfg.MaxConns).Msg("pool PostgreSQL listo")
		m.pool = pool
	})
	return m.pool, m.err
}

// Handle devuelve las primitivas de consulta sobre el pool.
func (m *Manager) Handle(ctx context.Context) (*Handle, error) {
	pool, err := m.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return NewHandle(pool), nil
}

// Begin inicia una transacción en una conexión del pool.
func (m *Manager) Begin(ctx context.Context) (*Tx, error) {
	pool, err := m.Pool(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", classify(err))
	}
	return &Tx{tx: tx}, nil
}

// Ping verifica que el pool sigue respondiendo (health check).
func (m *Manager) Ping(ctx context.Context) error {
	pool, err := m.Pool(ctx)
	if err != nil {
		return err
	}
	return classify(pool.Ping(ctx))
}

// errClosed es el error fijado cuando Close llega antes que el primer uso.
var errClosed = fmt.Errorf("%w: manager cerrado", domain.ErrConnection)

// Close libera el pool si llegó a crearse. Espera a una creación en curso; si el pool nunca se
// pidió, las llamadas posteriores a Pool fallan con domain.ErrConnection.
func (m *Manager) Close() {
	m.once.Do(func() { m.err = errClosed })
	if m.pool != nil {
		m.pool.Close()
	}
}

// Tx es una transacción en curso. No admite transacciones anidadas.
type Tx struct {
	tx pgx.Tx
}

// Handle devuelve las primitivas de consulta atadas a la transacción.
func (t *Tx) Handle() *Handle {
	return NewHandle(t.tx)
}

// Commit confirma la transacción.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", classify(err))
	}
	return nil
}

// Rollback deshace la transacción. Después de Commit no hace nada.
func (t *Tx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}
