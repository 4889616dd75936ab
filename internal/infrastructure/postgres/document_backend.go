package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/store"
)

var _ store.Backend = (*DocumentBackend)(nil)

// Querier abstrae pool o tx para ejecutar consultas.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	body       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS document_revisions (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	body        JSONB NOT NULL,
	replaced_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// DocumentBackend guarda cada documento como una fila JSONB.
// El respaldo previo a sobrescribir se guarda en document_revisions dentro de la misma transacción.
type DocumentBackend struct {
	pool *pgxpool.Pool
}

// NewDocumentBackend construye el backend con el pool.
func NewDocumentBackend(pool *pgxpool.Pool) *DocumentBackend {
	return &DocumentBackend{pool: pool}
}

// EnsureSchema crea las tablas si no existen.
func (b *DocumentBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres: crear esquema: %w", err)
	}
	return nil
}

// Read devuelve el cuerpo JSON del documento.
func (b *DocumentBackend) Read(ctx context.Context, name string) ([]byte, error) {
	return readDocument(ctx, b.pool, name)
}

// Write reemplaza el documento y archiva la versión anterior.
func (b *DocumentBackend) Write(ctx context.Context, name string, data []byte) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := writeDocument(ctx, tx, name, data); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Revisions cantidad de versiones archivadas de un documento.
func (b *DocumentBackend) Revisions(ctx context.Context, name string) (int, error) {
	var n int
	err := b.pool.QueryRow(ctx, `SELECT count(*) FROM document_revisions WHERE name = $1`, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: contar revisiones %s: %w", name, err)
	}
	return n, nil
}

// CashBalance lee el saldo de caja directamente como NUMERIC (codec shopspring registrado en el pool).
func (b *DocumentBackend) CashBalance(ctx context.Context) (decimal.Decimal, error) {
	var saldo decimal.Decimal
	err := b.pool.QueryRow(ctx,
		`SELECT COALESCE((body->>'saldo')::numeric, 0) FROM documents WHERE name = $1`, store.DocCash,
	).Scan(&saldo)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("postgres: saldo de caja: %w", err)
	}
	return saldo, nil
}

func readDocument(ctx context.Context, q Querier, name string) ([]byte, error) {
	var body []byte
	err := q.QueryRow(ctx, `SELECT body FROM documents WHERE name = $1`, name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("postgres: tabla documents inexistente (ejecutar EnsureSchema): %w", err)
		}
		return nil, fmt.Errorf("postgres: leer %s: %w", name, err)
	}
	return body, nil
}

func writeDocument(ctx context.Context, q Querier, name string, data []byte) error {
	if _, err := q.Exec(ctx, `
		INSERT INTO document_revisions (name, body)
		SELECT name, body FROM documents WHERE name = $1`, name); err != nil {
		return fmt.Errorf("postgres: respaldo %s: %w", name, err)
	}
	if _, err := q.Exec(ctx, `
		INSERT INTO documents (name, body, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
		name, string(data)); err != nil {
		return fmt.Errorf("postgres: escribir %s: %w", name, err)
	}
	return nil
}
