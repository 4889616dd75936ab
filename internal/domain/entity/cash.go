package entity

import (
	"slices"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de caja.
type MovementType string

const (
	MovementIncome  MovementType = "ingreso"
	MovementExpense MovementType = "egreso"
)

// Valid indica si el tipo es uno de los conocidos.
func (t MovementType) Valid() bool {
	return t == MovementIncome || t == MovementExpense
}

// MovementDetails detalle estructurado de un egreso.
type MovementDetails struct {
	Recipient string `json:"destinatario"`
	Concept   string `json:"concepto"`
	Method    string `json:"metodo"`
}

// Movement entrada de caja. Amount siempre es positivo; el signo lo da Type.
// Inmutable una vez agregada salvo InvoiceID.
type Movement struct {
	ID          string           `json:"id"`
	Type        MovementType     `json:"tipo"`
	Amount      decimal.Decimal  `json:"monto"`
	Description string           `json:"descripcion"`
	Date        Timestamp        `json:"fecha"`
	Details     *MovementDetails `json:"detalles,omitempty"`
	InvoiceID   string           `json:"factura_id,omitempty"`
}

// Signed monto con signo: positivo para ingresos, negativo para egresos.
func (m Movement) Signed() decimal.Decimal {
	if m.Type == MovementExpense {
		return m.Amount.Neg()
	}
	return m.Amount
}

// CashLedger saldo de caja y su historial de movimientos.
// Balance == Σ Signed() de todos los movimientos.
type CashLedger struct {
	Balance   decimal.Decimal `json:"saldo"`
	Movements []Movement      `json:"movimientos"`
}

// NewCashLedger caja vacía con saldo 0.
func NewCashLedger() CashLedger {
	return CashLedger{Balance: decimal.Zero, Movements: []Movement{}}
}

// Append agrega el movimiento y actualiza el saldo.
func (l *CashLedger) Append(m Movement) {
	l.Movements = append(l.Movements, m)
	l.Balance = l.Balance.Add(m.Signed())
}

// Find devuelve el índice del movimiento o -1.
func (l *CashLedger) Find(id string) int {
	for i := range l.Movements {
		if l.Movements[i].ID == id {
			return i
		}
	}
	return -1
}

// Remove quita el movimiento y revierte su efecto en el saldo.
func (l *CashLedger) Remove(id string) (Movement, bool) {
	i := l.Find(id)
	if i < 0 {
		return Movement{}, false
	}
	m := l.Movements[i]
	l.Movements = slices.Delete(l.Movements, i, i+1)
	l.Balance = l.Balance.Sub(m.Signed())
	return m, true
}

// Count cantidad de movimientos del tipo indicado.
func (l *CashLedger) Count(t MovementType) int {
	n := 0
	for _, m := range l.Movements {
		if m.Type == t {
			n++
		}
	}
	return n
}

// Sum suma de montos sin signo del tipo indicado.
func (l *CashLedger) Sum(t MovementType) decimal.Decimal {
	total := decimal.Zero
	for _, m := range l.Movements {
		if m.Type == t {
			total = total.Add(m.Amount)
		}
	}
	return total
}

// Reconciles verifica que el saldo coincide con el historial.
func (l *CashLedger) Reconciles() bool {
	sum := decimal.Zero
	for _, m := range l.Movements {
		sum = sum.Add(m.Signed())
	}
	return sum.Equal(l.Balance)
}

// Sorted devuelve una copia ordenada por fecha descendente, opcionalmente filtrada por tipo.
// Con fechas iguales aparece primero el movimiento agregado después.
func (l *CashLedger) Sorted(filter MovementType) []Movement {
	out := make([]Movement, 0, len(l.Movements))
	for i := len(l.Movements) - 1; i >= 0; i-- {
		if filter != "" && l.Movements[i].Type != filter {
			continue
		}
		out = append(out, l.Movements[i])
	}
	slices.SortStableFunc(out, func(a, b Movement) int {
		return b.Date.Compare(a.Date.Time)
	})
	return out
}
