package entity

import "github.com/shopspring/decimal"

// SaleStatus estado de la venta dentro de la saga venta → caja → stock.
type SaleStatus string

const (
	SalePending   SaleStatus = "pendiente"
	SaleConfirmed SaleStatus = "confirmada"
)

// SaleItem línea de venta con el precio resuelto al momento de registrar.
type SaleItem struct {
	ProductID int             `json:"id"`
	Name      string          `json:"nombre"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

// Subtotal cantidad × precio unitario.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale venta registrada.
type Sale struct {
	ID            string          `json:"id"`
	Items         []SaleItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Date          Timestamp       `json:"fecha"`
	Status        SaleStatus      `json:"estado,omitempty"`
	CashRecorded  bool            `json:"caja_registrada"`
	StockDeducted bool            `json:"stock_descontado"`
}

// Pending indica si la saga quedó incompleta.
// Las ventas sin estado (documentos anteriores) se consideran confirmadas.
func (s Sale) Pending() bool {
	return s.Status == SalePending
}

// SaleTotal Σ cantidad × precio unitario, redondeado a 2 decimales.
func SaleTotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total.Round(2)
}

// FindSale devuelve el índice de la venta o -1.
func FindSale(sales []Sale, id string) int {
	for i := range sales {
		if sales[i].ID == id {
			return i
		}
	}
	return -1
}
