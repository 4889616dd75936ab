package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")

	// Caja
	ErrInvalidAmount     = errors.New("Monto inválido")
	ErrInsufficientFunds = errors.New("saldo insuficiente")
	ErrMovementNotFound  = errors.New("movimiento no encontrado")

	// Ventas
	ErrEmptySale       = errors.New("No se puede registrar una venta sin items")
	ErrInvalidQuantity = errors.New("la cantidad debe ser un entero mayor a 0")
	ErrProductNotFound = errors.New("producto no encontrado")
	ErrSaleNotFound    = errors.New("Venta no encontrada")

	// Pagos
	ErrInvalidDate   = errors.New("Formato de fecha inválido. Use YYYY-MM-DD, DD/MM/YYYY o MM/DD/YYYY")
	ErrFutureDate    = errors.New("No se permiten fechas futuras")
	ErrAmbiguousDate = errors.New("fecha ambigua: indique formato_fecha (dd/mm/yyyy o mm/dd/yyyy) o use YYYY-MM-DD")

	// Facturas
	ErrInvoiceNotFound = errors.New("factura no encontrada")

	// Almacenamiento
	ErrDocumentNotFound = errors.New("documento no encontrado")
	ErrCorruptData      = errors.New("datos corruptos en el almacenamiento")
)

// ProductNotFoundError identifica el producto faltante en un carrito.
// errors.Is(err, ErrProductNotFound) es verdadero.
type ProductNotFoundError struct {
	ID int
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Producto con id %d no encontrado", e.ID)
}

// Is permite comparar contra ErrProductNotFound.
func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// ValidationError mensaje de validación de un campo concreto.
// errors.Is(err, ErrInvalidInput) es verdadero.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite comparar contra ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid construye un ValidationError con formato.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
