package pricing

import "github.com/shopspring/decimal"

// IVARate impuesto al consumo fijo (21%).
var IVARate = decimal.RequireFromString("0.21")

var hundred = decimal.NewFromInt(100)

// FinalPrice implementa el cálculo de precio de venta (servicio de dominio).
// PrecioFinal = (Costo + Envío) × (1 + IVA) × (1 + Margen/100), redondeado a 2 decimales.
func FinalPrice(cost, shipping, marginPercent decimal.Decimal) decimal.Decimal {
	base := cost.Add(shipping)
	withTax := base.Mul(decimal.NewFromInt(1).Add(IVARate))
	return withTax.Mul(decimal.NewFromInt(1).Add(marginPercent.Div(hundred))).Round(2)
}
