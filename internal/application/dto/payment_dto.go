package dto

import "github.com/jhoicas/cajaplus-api/internal/domain/entity"

// Formatos explícitos para fechas con barras.
const (
	DateFormatDMY = "dd/mm/yyyy"
	DateFormatMDY = "mm/dd/yyyy"
)

// RegisterPaymentRequest entrada para registrar un pago.
type RegisterPaymentRequest struct {
	Recipient   string `json:"destinatario"`
	Concept     string `json:"concepto"`
	Description string `json:"descripcion"`
	Amount      Amount `json:"monto"`
	Method      string `json:"metodo"`
	Date        string `json:"fecha"`
	DateFormat  string `json:"formato_fecha" validate:"omitempty,oneof=dd/mm/yyyy mm/dd/yyyy"`
}

// PaymentResponse respuesta al registrar un pago.
type PaymentResponse struct {
	Message string         `json:"message"`
	Payment entity.Payment `json:"pago"`
}
