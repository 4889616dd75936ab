package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// SaleLedger puerto hacia la caja para el paso de crédito de la venta.
// CreditSale debe ser idempotente por saleID.
type SaleLedger interface {
	CreditSale(ctx context.Context, saleID string, total decimal.Decimal, at entity.Timestamp) (entity.Movement, error)
}
