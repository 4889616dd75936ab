package cash

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/store"
)

func newLedger(t *testing.T, allowNegative bool) (*LedgerUseCase, *store.Repositories) {
	t.Helper()
	repos := store.NewRepositories(store.NewMemoryBackend())
	return NewLedgerUseCase(repos.Cash, Config{AllowNegativeBalance: allowNegative}, nil, nil, zerolog.Nop()), repos
}

func TestLedger_IngresoYEgresoDejanSaldoNegativo(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, true)

	in, err := uc.RecordIncome(ctx, dto.IncomeRequest{Total: dto.NewAmount("100"), Description: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Venta #1", in.Movement.Description)
	assert.True(t, in.Balance.Equal(decimal.NewFromInt(100)))

	out, err := uc.RecordExpense(ctx, dto.ExpenseRequest{Total: dto.NewAmount("150"), Description: "proveedor"})
	require.NoError(t, err)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(-50)))
	assert.Nil(t, out.Movement.Details)

	res, err := uc.Query(ctx, dto.CashQuery{})
	require.NoError(t, err)
	require.Len(t, res.Movements, 2)
	assert.Equal(t, entity.MovementExpense, res.Movements[0].Type, "el más reciente primero")
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(-50)))
}

func TestLedger_MontoInvalidoNoModificaCaja(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, true)

	for _, raw := range []string{"0", "-10", "abc"} {
		_, err := uc.RecordIncome(ctx, dto.IncomeRequest{Total: dto.NewAmount(raw), Description: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, raw)
		_, err = uc.RecordExpense(ctx, dto.ExpenseRequest{Total: dto.NewAmount(raw), Description: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, raw)
	}
	_, err := uc.RecordIncome(ctx, dto.IncomeRequest{Description: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	l, err := uc.Ledger(ctx)
	require.NoError(t, err)
	assert.Empty(t, l.Movements)
	assert.True(t, l.Balance.IsZero())
}

func TestLedger_SaldoInsuficienteConPoliticaEstricta(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, false)

	_, err := uc.RecordIncome(ctx, dto.IncomeRequest{Total: dto.NewAmount("100"), Description: "1"})
	require.NoError(t, err)

	_, err = uc.RecordExpense(ctx, dto.ExpenseRequest{Total: dto.NewAmount("150"), Description: "x"})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	out, err := uc.RecordExpense(ctx, dto.ExpenseRequest{Total: dto.NewAmount("100"), Description: "x", Method: "efectivo"})
	require.NoError(t, err)
	assert.True(t, out.Balance.IsZero())
	require.NotNil(t, out.Movement.Details)
	assert.Equal(t, "efectivo", out.Movement.Details.Method)
}

func TestLedger_CreditSaleEsIdempotente(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, true)
	at := entity.NewTimestamp(time.Now())

	m1, err := uc.CreditSale(ctx, "venta-1", decimal.NewFromInt(30), at)
	require.NoError(t, err)
	assert.Equal(t, "Venta #1", m1.Description)
	m2, err := uc.CreditSale(ctx, "venta-1", decimal.NewFromInt(30), at)
	require.NoError(t, err)
	assert.Equal(t, m1, m2)

	m3, err := uc.CreditSale(ctx, "venta-2", decimal.NewFromInt(5), at)
	require.NoError(t, err)
	assert.Equal(t, "Venta #2", m3.Description)

	l, err := uc.Ledger(ctx)
	require.NoError(t, err)
	assert.Len(t, l.Movements, 2)
	assert.True(t, l.Balance.Equal(decimal.NewFromInt(35)))
	assert.True(t, l.Reconciles())
}

func TestLedger_AppendExpenseDuplicado(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, true)
	in := ExpenseInput{ID: "p1", Amount: decimal.NewFromInt(10), Description: "pago"}

	_, _, err := uc.AppendExpense(ctx, in)
	require.NoError(t, err)
	_, _, err = uc.AppendExpense(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLedger_EliminarMovimientoRevierteSaldo(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, true)

	in, err := uc.RecordIncome(ctx, dto.IncomeRequest{Total: dto.NewAmount("80"), Description: "1"})
	require.NoError(t, err)
	_, err = uc.RecordExpense(ctx, dto.ExpenseRequest{Total: dto.NewAmount("30"), Description: "x"})
	require.NoError(t, err)

	balance, err := uc.DeleteMovement(ctx, in.Movement.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(-30)))

	_, err = uc.DeleteMovement(ctx, in.Movement.ID)
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
}

func TestLedger_QueryFiltraYPagina(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, true)
	for i := 0; i < 3; i++ {
		_, err := uc.RecordIncome(ctx, dto.IncomeRequest{Total: dto.NewAmount("10"), Description: "i"})
		require.NoError(t, err)
	}
	_, err := uc.RecordExpense(ctx, dto.ExpenseRequest{Total: dto.NewAmount("5"), Description: "e"})
	require.NoError(t, err)

	res, err := uc.Query(ctx, dto.CashQuery{Type: entity.MovementIncome, PageRequest: dto.PageRequest{Page: 1, PerPage: 2}})
	require.NoError(t, err)
	assert.Len(t, res.Movements, 2)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages)

	res, err = uc.Query(ctx, dto.CashQuery{PageRequest: dto.PageRequest{Page: 9}})
	require.NoError(t, err)
	assert.Empty(t, res.Movements)

	_, err = uc.Query(ctx, dto.CashQuery{Type: "otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_AttachInvoiceSinMovimientoNoHaceNada(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t, true)

	ok, err := uc.AttachInvoice(ctx, "no-existe", "FAC-2024-01-001")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = uc.CreditSale(ctx, "v1", decimal.NewFromInt(1), entity.Now())
	require.NoError(t, err)
	ok, err = uc.AttachInvoice(ctx, "v1", "FAC-2024-01-001")
	require.NoError(t, err)
	assert.True(t, ok)

	l, err := uc.Ledger(ctx)
	require.NoError(t, err)
	assert.Equal(t, "FAC-2024-01-001", l.Movements[0].InvoiceID)
}
