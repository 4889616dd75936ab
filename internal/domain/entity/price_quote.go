package entity

import "github.com/shopspring/decimal"

// PriceQuote cálculo de precio guardado en el historial.
type PriceQuote struct {
	ProductCost  decimal.Decimal `json:"costo_producto"`
	ShippingCost decimal.Decimal `json:"costo_envio"`
	Margin       decimal.Decimal `json:"margen_ganancia"`
	FinalPrice   decimal.Decimal `json:"precio_final"`
	Date         Timestamp       `json:"fecha"`
}
