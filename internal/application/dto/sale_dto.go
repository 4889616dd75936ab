package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// SaleItemRequest línea del carrito. El precio lo resuelve el servidor.
type SaleItemRequest struct {
	ProductID int `json:"id"`
	Quantity  int `json:"cantidad"`
}

// RegisterSaleRequest entrada para registrar una venta.
type RegisterSaleRequest struct {
	Items []SaleItemRequest `json:"items"`
}

// UpdateSaleRequest sobrescribe items y total sin recalcular.
type UpdateSaleRequest struct {
	Items []entity.SaleItem `json:"items"`
	Total *decimal.Decimal  `json:"total"`
}

// SaleResponse respuesta al registrar o actualizar una venta.
type SaleResponse struct {
	Message string      `json:"message"`
	Sale    entity.Sale `json:"venta"`
}

// SalePageResponse listado paginado de ventas.
type SalePageResponse struct {
	Sales []entity.Sale `json:"ventas"`
	PageResponse
}

// ReconcileResponse resultado de la reparación de ventas pendientes.
type ReconcileResponse struct {
	Repaired []string `json:"reparadas"`
}
