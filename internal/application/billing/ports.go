package billing

import (
	"context"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// InvoicePDFRenderer genera la representación PDF de la factura.
type InvoicePDFRenderer interface {
	RenderInvoicePDF(ctx context.Context, invoice entity.Invoice) ([]byte, error)
}

// InvoiceFingerprinter construye el XML de la factura y su huella canónica.
type InvoiceFingerprinter interface {
	BuildInvoiceXML(ctx context.Context, invoice entity.Invoice) (xmlDoc []byte, fingerprint string, err error)
}

// ArtifactStore guarda y lee los archivos generados (PDF, XML) por nombre.
// Open retorna domain.ErrDocumentNotFound si no existe.
type ArtifactStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Open(ctx context.Context, name string) ([]byte, error)
}

// SaleReader puerto de lectura de ventas.
type SaleReader interface {
	GetSale(ctx context.Context, id string) (*entity.Sale, error)
}

// InvoiceLedger puerto hacia la caja para el enlace movimiento → factura.
type InvoiceLedger interface {
	AttachInvoice(ctx context.Context, movementID, invoiceID string) (bool, error)
}
