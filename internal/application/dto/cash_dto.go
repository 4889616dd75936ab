package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// IncomeRequest entrada para registrar un ingreso manual.
type IncomeRequest struct {
	Total       Amount `json:"total"`
	Description string `json:"descripcion"`
}

// ExpenseRequest entrada para registrar un egreso manual.
type ExpenseRequest struct {
	Total       Amount `json:"total"`
	Description string `json:"descripcion"`
	Recipient   string `json:"destinatario"`
	Concept     string `json:"concepto"`
	Method      string `json:"metodo"`
}

// CashQuery filtros del listado de caja.
type CashQuery struct {
	Type entity.MovementType
	PageRequest
}

// CashResponse saldo y página de movimientos.
type CashResponse struct {
	Balance   decimal.Decimal   `json:"saldo"`
	Movements []entity.Movement `json:"movimientos"`
	PageResponse
}

// MovementResponse respuesta al registrar un movimiento.
type MovementResponse struct {
	Message  string          `json:"message"`
	Balance  decimal.Decimal `json:"saldo"`
	Movement entity.Movement `json:"movimiento"`
}
