package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

func TestDocument_CajaSeInicializaYPersiste(t *testing.T) {
	b := NewMemoryBackend()
	repos := NewRepositories(b)

	ledger, err := repos.Cash.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ledger.Balance.IsZero())
	assert.Empty(t, ledger.Movements)
	assert.True(t, b.Has(DocCash), "la caja vacía debe persistirse en la primera lectura")

	_, err = repos.Sales.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, b.Has(DocSales), "las demás colecciones no se escriben al leer")
}

func TestDocument_JSONCorruptoFallaSinReiniciar(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, b.Write(ctx, DocSales, []byte(`{"no": "es una lista"`)))
	repos := NewRepositories(b)

	_, err := repos.Sales.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCorruptData)

	err = repos.Sales.Update(ctx, func(s *[]entity.Sale) error {
		*s = append(*s, entity.Sale{ID: "x"})
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrCorruptData)

	raw, err := b.Read(ctx, DocSales)
	require.NoError(t, err)
	assert.Equal(t, `{"no": "es una lista"`, string(raw), "el contenido corrupto no se sobrescribe")
}

func TestDocument_ObjetoEnLugarDeListaEsCorrupto(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, b.Write(ctx, DocPayments, []byte(`{"id": "1"}`)))

	_, err := NewRepositories(b).Payments.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCorruptData)
}

func TestDocument_UpdateConErrorNoEscribe(t *testing.T) {
	b := NewMemoryBackend()
	repos := NewRepositories(b)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repos.Cash.Update(ctx, func(l *entity.CashLedger) error {
		l.Append(entity.Movement{ID: "a", Type: entity.MovementIncome, Amount: decimal.NewFromInt(5)})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ledger, err := repos.Cash.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger.Movements)
}

func TestDocument_UpdateConcurrenteNoPierdeEscrituras(t *testing.T) {
	repos := NewRepositories(NewMemoryBackend())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repos.Cash.Update(ctx, func(l *entity.CashLedger) error {
				l.Append(entity.Movement{Type: entity.MovementIncome, Amount: decimal.NewFromInt(1)})
				return nil
			})
		}()
	}
	wg.Wait()

	ledger, err := repos.Cash.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger.Movements, 50)
	assert.True(t, decimal.NewFromInt(50).Equal(ledger.Balance))
}

func TestDocument_SobreArchivos(t *testing.T) {
	fb, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	repos := NewRepositories(fb)
	ctx := context.Background()

	require.NoError(t, repos.Products.Update(ctx, func(c *entity.ProductCatalog) error {
		c.Add(entity.Product{Name: "cafe", Price: decimal.NewFromInt(3), Stock: 4})
		return nil
	}))

	reloaded := NewRepositories(fb)
	cat, err := reloaded.Products.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cat.Products, 1)
	assert.Equal(t, 1, cat.Products[0].ID)
	assert.Equal(t, 2, cat.NextID)
}
