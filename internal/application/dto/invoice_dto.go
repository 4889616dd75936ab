package dto

import "github.com/jhoicas/cajaplus-api/internal/domain/entity"

// GenerateInvoiceRequest entrada para facturar una venta.
type GenerateInvoiceRequest struct {
	SaleID string `json:"venta_id" validate:"required"`
	Client string `json:"cliente" validate:"required"`
}

// InvoiceResponse factura generada y nombre del PDF.
type InvoiceResponse struct {
	Message string         `json:"message"`
	Invoice entity.Invoice `json:"factura"`
	PDF     string         `json:"pdf"`
}
