// Package cash contiene los casos de uso de la caja: saldo, ingresos, egresos y consulta.
package cash

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/application/ports"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/domain/repository"
)

// Config política de egresos.
type Config struct {
	// AllowNegativeBalance: si es false, un egreso mayor al saldo retorna ErrInsufficientFunds.
	AllowNegativeBalance bool
}

// ExpenseInput egreso ya validado. ID y Date vacíos se generan.
type ExpenseInput struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	Details     *entity.MovementDetails
	Date        entity.Timestamp
}

// LedgerUseCase mantiene el saldo y el historial de movimientos.
type LedgerUseCase struct {
	repo     repository.CashRepository
	cfg      Config
	cache    ports.MetricsCache
	exporter LedgerExporter
	log      zerolog.Logger
}

// NewLedgerUseCase construye el caso de uso. cache y exporter pueden ser nil.
func NewLedgerUseCase(repo repository.CashRepository, cfg Config, cache ports.MetricsCache, exporter LedgerExporter, log zerolog.Logger) *LedgerUseCase {
	if cache == nil {
		cache = ports.NoopCache{}
	}
	return &LedgerUseCase{repo: repo, cfg: cfg, cache: cache, exporter: exporter, log: log}
}

// Ledger devuelve la caja actual (la inicializa si no existe).
func (uc *LedgerUseCase) Ledger(ctx context.Context) (entity.CashLedger, error) {
	return uc.repo.Load(ctx)
}

// ── Ingresos / egresos ────────────────────────────────────────────────────────

// RecordIncome registra un ingreso manual. La descripción se guarda como "Venta #<descripcion>".
func (uc *LedgerUseCase) RecordIncome(ctx context.Context, in dto.IncomeRequest) (*dto.MovementResponse, error) {
	amount, err := positiveAmount(in.Total)
	if err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, domain.Invalid("Datos inválidos: descripcion es requerida")
	}

	m := entity.Movement{
		ID:          uuid.New().String(),
		Type:        entity.MovementIncome,
		Amount:      amount,
		Description: "Venta #" + desc,
		Date:        entity.Now(),
	}
	var balance decimal.Decimal
	err = uc.repo.Update(ctx, func(l *entity.CashLedger) error {
		l.Append(m)
		balance = l.Balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.changed(ctx, m)
	return &dto.MovementResponse{Message: "Ingreso registrado correctamente", Balance: balance, Movement: m}, nil
}

// RecordExpense registra un egreso manual con detalles opcionales.
func (uc *LedgerUseCase) RecordExpense(ctx context.Context, in dto.ExpenseRequest) (*dto.MovementResponse, error) {
	amount, err := positiveAmount(in.Total)
	if err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, domain.Invalid("Datos inválidos: descripcion es requerida")
	}
	var details *entity.MovementDetails
	if in.Recipient != "" || in.Concept != "" || in.Method != "" {
		details = &entity.MovementDetails{
			Recipient: strings.TrimSpace(in.Recipient),
			Concept:   strings.TrimSpace(in.Concept),
			Method:    strings.TrimSpace(in.Method),
		}
	}
	m, balance, err := uc.AppendExpense(ctx, ExpenseInput{Amount: amount, Description: desc, Details: details})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResponse{Message: "Egreso registrado correctamente", Balance: balance, Movement: m}, nil
}

// AppendExpense agrega un egreso validado aplicando la política de saldo.
// Lo usan los egresos manuales y el módulo de pagos.
func (uc *LedgerUseCase) AppendExpense(ctx context.Context, in ExpenseInput) (entity.Movement, decimal.Decimal, error) {
	if !in.Amount.IsPositive() {
		return entity.Movement{}, decimal.Zero, domain.ErrInvalidAmount
	}
	m := entity.Movement{
		ID:          in.ID,
		Type:        entity.MovementExpense,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		Details:     in.Details,
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Date.IsZero() {
		m.Date = entity.Now()
	}

	var balance decimal.Decimal
	err := uc.repo.Update(ctx, func(l *entity.CashLedger) error {
		if l.Find(m.ID) >= 0 {
			return fmt.Errorf("%w: movimiento %s ya existe", domain.ErrDuplicate, m.ID)
		}
		if !uc.cfg.AllowNegativeBalance && m.Amount.GreaterThan(l.Balance) {
			return domain.ErrInsufficientFunds
		}
		l.Append(m)
		balance = l.Balance
		return nil
	})
	if err != nil {
		return entity.Movement{}, decimal.Zero, err
	}
	uc.changed(ctx, m)
	return m, balance, nil
}

// CreditSale agrega el ingreso de una venta con ID == saleID y descripción "Venta #N",
// N = cantidad de ingresos + 1. Idempotente: si ya existe el movimiento lo devuelve sin cambios.
func (uc *LedgerUseCase) CreditSale(ctx context.Context, saleID string, total decimal.Decimal, at entity.Timestamp) (entity.Movement, error) {
	var m entity.Movement
	created := false
	err := uc.repo.Update(ctx, func(l *entity.CashLedger) error {
		if i := l.Find(saleID); i >= 0 {
			m = l.Movements[i]
			return nil
		}
		m = entity.Movement{
			ID:          saleID,
			Type:        entity.MovementIncome,
			Amount:      total,
			Description: fmt.Sprintf("Venta #%d", l.Count(entity.MovementIncome)+1),
			Date:        at,
		}
		l.Append(m)
		created = true
		return nil
	})
	if err != nil {
		return entity.Movement{}, err
	}
	if created {
		uc.changed(ctx, m)
	}
	return m, nil
}

// ── Consulta ──────────────────────────────────────────────────────────────────

// Query devuelve el saldo y una página de movimientos ordenados por fecha descendente.
func (uc *LedgerUseCase) Query(ctx context.Context, q dto.CashQuery) (*dto.CashResponse, error) {
	if q.Type != "" && !q.Type.Valid() {
		return nil, domain.Invalid("tipo inválido: use ingreso o egreso")
	}
	l, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	all := l.Sorted(q.Type)
	page := q.PageRequest.Normalize()
	start, end := page.Bounds(len(all))
	return &dto.CashResponse{
		Balance:      l.Balance,
		Movements:    all[start:end],
		PageResponse: dto.NewPageResponse(page, len(all)),
	}, nil
}

// HasMovement indica si existe un movimiento con ese id.
func (uc *LedgerUseCase) HasMovement(ctx context.Context, id string) (bool, error) {
	l, err := uc.repo.Load(ctx)
	if err != nil {
		return false, err
	}
	return l.Find(id) >= 0, nil
}

// ── Mantenimiento ─────────────────────────────────────────────────────────────

// DeleteMovement elimina un movimiento y revierte su efecto en el saldo.
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, id string) (decimal.Decimal, error) {
	var (
		removed entity.Movement
		balance decimal.Decimal
	)
	err := uc.repo.Update(ctx, func(l *entity.CashLedger) error {
		m, ok := l.Remove(id)
		if !ok {
			return domain.ErrMovementNotFound
		}
		removed = m
		balance = l.Balance
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	uc.log.Info().Str("movement_id", id).Str("tipo", string(removed.Type)).Str("saldo", balance.String()).Msg("movimiento eliminado")
	uc.cache.Invalidate(ctx)
	return balance, nil
}

// AttachInvoice enlaza la factura al movimiento con ese id. Si no existe no hace nada (false).
func (uc *LedgerUseCase) AttachInvoice(ctx context.Context, movementID, invoiceID string) (bool, error) {
	found := false
	err := uc.repo.Update(ctx, func(l *entity.CashLedger) error {
		if i := l.Find(movementID); i >= 0 {
			l.Movements[i].InvoiceID = invoiceID
			found = true
		}
		return nil
	})
	return found, err
}

// Export escribe la planilla de movimientos en w.
func (uc *LedgerUseCase) Export(ctx context.Context, w io.Writer) error {
	if uc.exporter == nil {
		return fmt.Errorf("cash: exportador no configurado")
	}
	l, err := uc.repo.Load(ctx)
	if err != nil {
		return err
	}
	return uc.exporter.ExportLedger(ctx, l, w)
}

func (uc *LedgerUseCase) changed(ctx context.Context, m entity.Movement) {
	uc.log.Info().
		Str("movement_id", m.ID).
		Str("tipo", string(m.Type)).
		Str("monto", m.Amount.String()).
		Msg("movimiento registrado")
	uc.cache.Invalidate(ctx)
}

func positiveAmount(a dto.Amount) (decimal.Decimal, error) {
	if !a.IsSet() {
		return decimal.Zero, domain.Invalid("Datos inválidos: total es requerido")
	}
	d, err := a.Decimal()
	if err != nil || !d.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return d, nil
}
