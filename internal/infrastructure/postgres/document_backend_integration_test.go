//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/store"
)

func setupBackend(t *testing.T) *postgres.DocumentBackend {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("caja_test"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	b := postgres.NewDocumentBackend(pool)
	require.NoError(t, b.EnsureSchema(ctx))
	return b
}

func TestDocumentBackend_RoundTripYRevisiones(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()

	_, err := b.Read(ctx, store.DocCash)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	repos := store.NewRepositories(b)
	for _, monto := range []int64{100, 25} {
		require.NoError(t, repos.Cash.Update(ctx, func(l *entity.CashLedger) error {
			l.Append(entity.Movement{ID: "m", Type: entity.MovementIncome, Amount: decimal.NewFromInt(monto), Date: entity.Now()})
			return nil
		}))
	}

	ledger, err := repos.Cash.Load(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(125).Equal(ledger.Balance))

	saldo, err := b.CashBalance(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(125).Equal(saldo))

	// init (caja vacía) + 2 updates: dos versiones reemplazadas
	n, err := b.Revisions(ctx, store.DocCash)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
