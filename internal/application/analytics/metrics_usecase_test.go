package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/application/ports"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/domain/repository"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/store"
)

func at(y int, m time.Month, d int) entity.Timestamp {
	return entity.NewTimestamp(time.Date(y, m, d, 12, 0, 0, 0, time.Local))
}

func TestWeekLabel(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local), "10-16 marzo 2025"},
		{time.Date(2025, 3, 16, 23, 0, 0, 0, time.Local), "10-16 marzo 2025"},
		{time.Date(2025, 4, 2, 9, 0, 0, 0, time.Local), "31-6 marzo 2025"},
		{time.Date(2025, 12, 31, 9, 0, 0, 0, time.Local), "29-4 diciembre 2026"},
		{time.Date(2028, 1, 1, 9, 0, 0, 0, time.Local), "27-2 diciembre 2028"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WeekLabel(tc.in), tc.in.String())
	}
}

func TestCompute_SinDatos(t *testing.T) {
	m := Compute(nil, entity.NewCashLedger())
	assert.Equal(t, TopProductDefault, m.TopProduct.Name)
	assert.Zero(t, m.TopProduct.Quantity)
	assert.Zero(t, m.TotalSales)
	assert.True(t, m.TotalIncome.IsZero())
	assert.NotNil(t, m.SalesByDay)
	assert.Empty(t, m.ExpensesByYear)
}

func TestCompute_AgrupaVentasYEgresos(t *testing.T) {
	sales := []entity.Sale{
		{ID: "a", Total: decimal.NewFromInt(10), Date: at(2025, 3, 10), Items: []entity.SaleItem{{Name: "pan", Quantity: 2}, {Name: "café", Quantity: 1}}},
		{ID: "b", Total: decimal.NewFromInt(5), Date: at(2025, 3, 12), Items: []entity.SaleItem{{Name: "café", Quantity: 1}}},
		{ID: "c", Total: decimal.NewFromInt(7), Date: at(2025, 4, 1), Items: []entity.SaleItem{{Name: "té", Quantity: 1}}},
	}
	ledger := entity.NewCashLedger()
	ledger.Append(entity.Movement{ID: "a", Type: entity.MovementIncome, Amount: decimal.NewFromInt(10), Date: at(2025, 3, 10)})
	ledger.Append(entity.Movement{ID: "p", Type: entity.MovementExpense, Amount: decimal.NewFromInt(3), Date: at(2025, 3, 11)})
	ledger.Append(entity.Movement{ID: "q", Type: entity.MovementExpense, Amount: decimal.NewFromInt(4), Date: at(2025, 4, 2)})

	m := Compute(sales, ledger)
	assert.Equal(t, 3, m.TotalSales)
	assert.Equal(t, 2, m.TotalPayments)
	assert.Equal(t, 5, m.TotalItems)
	assert.True(t, m.TotalIncome.Equal(decimal.NewFromInt(22)))
	assert.True(t, m.TotalExpenses.Equal(decimal.NewFromInt(7)))
	assert.True(t, m.Balance.Equal(decimal.NewFromInt(3)))

	// empate pan/café en 2: gana el primero visto
	assert.Equal(t, dto.TopProductDTO{Name: "pan", Quantity: 2}, m.TopProduct)

	assert.Equal(t, 1, m.SalesByDay["2025-03-10"])
	assert.Equal(t, 2, m.SalesByWeek["10-16 marzo 2025"])
	assert.Equal(t, 2, m.SalesByMonth["2025-03"])
	assert.Equal(t, 3, m.SalesByYear["2025"])
	assert.True(t, m.IncomeByWeek["10-16 marzo 2025"].Equal(decimal.NewFromInt(15)))
	assert.True(t, m.ExpensesByWeek["31-6 marzo 2025"].Equal(decimal.NewFromInt(4)))
	assert.True(t, m.ExpensesByMonth["2025-03"].Equal(decimal.NewFromInt(3)))
}

type countingCache struct {
	stored *dto.MetricsDTO
	sets   int
}

func (c *countingCache) Get(context.Context) (*dto.MetricsDTO, bool) { return c.stored, c.stored != nil }
func (c *countingCache) Set(_ context.Context, m *dto.MetricsDTO) {
	c.stored = m
	c.sets++
}
func (c *countingCache) Invalidate(context.Context) { c.stored = nil }

func TestGetMetrics_UsaCache(t *testing.T) {
	ctx := context.Background()
	repos := store.NewRepositories(store.NewMemoryBackend())
	cache := &countingCache{}
	uc := NewMetricsUseCase(repos.Sales, repos.Cash, cache, zerolog.Nop())

	m1, err := uc.GetMetrics(ctx)
	require.NoError(t, err)
	m2, err := uc.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Same(t, m1, m2)
	assert.Equal(t, 1, cache.sets)

	cache.Invalidate(ctx)
	_, err = uc.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
}

// salesDuringWrite simula una venta registrada mientras se leen las ventas.
type salesDuringWrite struct {
	repository.SaleRepository
	onLoad func()
}

func (r salesDuringWrite) Load(ctx context.Context) ([]entity.Sale, error) {
	out, err := r.SaleRepository.Load(ctx)
	r.onLoad()
	return out, err
}

func TestGetMetrics_InvalidacionDuranteCalculoNoCachea(t *testing.T) {
	ctx := context.Background()
	repos := store.NewRepositories(store.NewMemoryBackend())
	inner := &countingCache{}
	cache := ports.NewVersionedCache(inner)

	writes := 0
	sales := salesDuringWrite{SaleRepository: repos.Sales, onLoad: func() {
		if writes == 0 {
			writes++
			cache.Invalidate(ctx)
		}
	}}
	uc := NewMetricsUseCase(sales, repos.Cash, cache, zerolog.Nop())

	m, err := uc.GetMetrics(ctx)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 0, inner.sets)
	_, ok := cache.Get(ctx)
	assert.False(t, ok)

	// sin escrituras concurrentes el siguiente cálculo sí se guarda
	_, err = uc.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.sets)
	_, ok = cache.Get(ctx)
	assert.True(t, ok)
}
