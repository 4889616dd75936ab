package dto

import "github.com/shopspring/decimal"

// PriceRequest entrada de la calculadora.
type PriceRequest struct {
	ProductCost  Amount `json:"costo_producto"`
	ShippingCost Amount `json:"costo_envio"`
	Margin       Amount `json:"margen_ganancia"`
}

// PriceResponse precio final calculado.
type PriceResponse struct {
	FinalPrice decimal.Decimal `json:"precio_final"`
	IVA        decimal.Decimal `json:"iva"`
}
