package store

import (
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/domain/repository"
)

// Nombres de documento (sin extensión).
const (
	DocProducts     = "productos"
	DocUsers        = "usuarios"
	DocSales        = "ventas"
	DocPayments     = "pagos"
	DocCash         = "caja"
	DocInvoices     = "facturas"
	DocPriceHistory = "historial_precios"
)

var (
	_ repository.ProductRepository      = (*Document[entity.ProductCatalog])(nil)
	_ repository.UserRepository         = (*Document[entity.UserDirectory])(nil)
	_ repository.SaleRepository         = (*Document[[]entity.Sale])(nil)
	_ repository.PaymentRepository      = (*Document[[]entity.Payment])(nil)
	_ repository.CashRepository         = (*Document[entity.CashLedger])(nil)
	_ repository.InvoiceRepository      = (*Document[[]entity.Invoice])(nil)
	_ repository.PriceHistoryRepository = (*Document[[]entity.PriceQuote])(nil)
)

// Repositories agrupa las colecciones de la aplicación sobre un mismo backend.
type Repositories struct {
	Products     *Document[entity.ProductCatalog]
	Users        *Document[entity.UserDirectory]
	Sales        *Document[[]entity.Sale]
	Payments     *Document[[]entity.Payment]
	Cash         *Document[entity.CashLedger]
	Invoices     *Document[[]entity.Invoice]
	PriceHistory *Document[[]entity.PriceQuote]
}

// NewRepositories construye todas las colecciones. La caja se persiste al primer acceso.
func NewRepositories(b Backend) *Repositories {
	return &Repositories{
		Products: NewDocument(b, DocProducts, func() entity.ProductCatalog {
			return entity.ProductCatalog{NextID: 1, Products: []entity.Product{}}
		}),
		Users: NewDocument(b, DocUsers, func() entity.UserDirectory {
			return entity.UserDirectory{NextID: 1, Users: []entity.User{}}
		}),
		Sales:        NewDocument(b, DocSales, func() []entity.Sale { return []entity.Sale{} }),
		Payments:     NewDocument(b, DocPayments, func() []entity.Payment { return []entity.Payment{} }),
		Cash:         NewDocument(b, DocCash, entity.NewCashLedger, PersistOnInit()),
		Invoices:     NewDocument(b, DocInvoices, func() []entity.Invoice { return []entity.Invoice{} }),
		PriceHistory: NewDocument(b, DocPriceHistory, func() []entity.PriceQuote { return []entity.PriceQuote{} }),
	}
}
