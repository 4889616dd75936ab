package repository

import (
	"context"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// Collection define el puerto de persistencia de un documento completo (DIP).
// Load inicializa el documento vacío si no existe; Update ejecuta un
// read-modify-write serializado: si fn retorna error no se escribe nada.
type Collection[T any] interface {
	Load(ctx context.Context) (T, error)
	Save(ctx context.Context, v T) error
	Update(ctx context.Context, fn func(*T) error) error
}

// Repositorios por colección.
type (
	ProductRepository      = Collection[entity.ProductCatalog]
	UserRepository         = Collection[entity.UserDirectory]
	SaleRepository         = Collection[[]entity.Sale]
	PaymentRepository      = Collection[[]entity.Payment]
	CashRepository         = Collection[entity.CashLedger]
	InvoiceRepository      = Collection[[]entity.Invoice]
	PriceHistoryRepository = Collection[[]entity.PriceQuote]
)
