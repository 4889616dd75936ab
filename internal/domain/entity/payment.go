package entity

import "github.com/shopspring/decimal"

// Payment pago a un tercero. Comparte el ID con su egreso de caja.
type Payment struct {
	ID          string          `json:"id"`
	Date        Timestamp       `json:"fecha"`
	Recipient   string          `json:"destinatario"`
	Concept     string          `json:"concepto"`
	Description string          `json:"descripcion"`
	Amount      decimal.Decimal `json:"monto"`
	Method      string          `json:"metodo"`
}
