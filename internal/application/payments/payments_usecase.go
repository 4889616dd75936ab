// Package payments registra pagos a terceros y su egreso de caja.
package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cajaplus-api/internal/application/cash"
	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/domain/repository"
)

// ExpenseLedger puerto hacia la caja para el egreso del pago.
type ExpenseLedger interface {
	AppendExpense(ctx context.Context, in cash.ExpenseInput) (entity.Movement, decimal.Decimal, error)
}

// Config política de fechas.
type Config struct {
	StrictDates bool
}

// PaymentsUseCase casos de uso de pagos.
type PaymentsUseCase struct {
	repo   repository.PaymentRepository
	ledger ExpenseLedger
	cfg    Config
	now    func() time.Time
	log    zerolog.Logger
}

// NewPaymentsUseCase construye el caso de uso.
func NewPaymentsUseCase(repo repository.PaymentRepository, ledger ExpenseLedger, cfg Config, log zerolog.Logger) *PaymentsUseCase {
	return &PaymentsUseCase{repo: repo, ledger: ledger, cfg: cfg, now: time.Now, log: log}
}

// List devuelve todos los pagos.
func (uc *PaymentsUseCase) List(ctx context.Context) ([]entity.Payment, error) {
	all, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = []entity.Payment{}
	}
	return all, nil
}

// Register valida el pago, registra el egreso en caja y luego persiste el pago.
// Si la caja rechaza el egreso el pago no se guarda.
func (uc *PaymentsUseCase) Register(ctx context.Context, in dto.RegisterPaymentRequest) (*dto.PaymentResponse, error) {
	fields := []struct{ name, value string }{
		{"destinatario", in.Recipient},
		{"concepto", in.Concept},
		{"descripcion", in.Description},
		{"metodo", in.Method},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, domain.Invalid("El campo '%s' es obligatorio y no puede estar vacío", f.name)
		}
	}
	if !in.Amount.IsSet() {
		return nil, domain.Invalid("Faltan campos requeridos")
	}
	amount, err := in.Amount.Decimal()
	if err != nil {
		return nil, fmt.Errorf("%w: El monto no es válido", domain.ErrInvalidAmount)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: El monto debe ser mayor a cero", domain.ErrInvalidAmount)
	}

	date, err := ParseDate(in.Date, in.DateFormat, uc.cfg.StrictDates, uc.now())
	if err != nil {
		return nil, err
	}

	p := entity.Payment{
		ID:          uuid.New().String(),
		Date:        entity.NewTimestamp(date),
		Recipient:   strings.TrimSpace(in.Recipient),
		Concept:     strings.TrimSpace(in.Concept),
		Description: strings.TrimSpace(in.Description),
		Amount:      amount,
		Method:      strings.TrimSpace(in.Method),
	}

	if _, _, err := uc.ledger.AppendExpense(ctx, cash.ExpenseInput{
		ID:          p.ID,
		Amount:      p.Amount,
		Description: p.Description,
		Date:        p.Date,
		Details: &entity.MovementDetails{
			Recipient: p.Recipient,
			Concept:   p.Concept,
			Method:    p.Method,
		},
	}); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, func(all *[]entity.Payment) error {
		*all = append(*all, p)
		return nil
	}); err != nil {
		uc.log.Error().Err(err).Str("payment_id", p.ID).Msg("egreso registrado sin pago persistido")
		return nil, err
	}

	uc.log.Info().Str("payment_id", p.ID).Str("monto", p.Amount.String()).Str("destinatario", p.Recipient).Msg("pago registrado")
	return &dto.PaymentResponse{Message: "Pago y egreso registrados correctamente", Payment: p}, nil
}
