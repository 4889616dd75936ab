// Package billing genera facturas a partir de ventas registradas.
package billing

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/domain/repository"
)

// Extensiones de artefacto servibles.
const (
	ExtPDF = ".pdf"
	ExtXML = ".xml"
)

// InvoiceUseCase genera y consulta facturas.
type InvoiceUseCase struct {
	invoices    repository.InvoiceRepository
	sales       SaleReader
	ledger      InvoiceLedger
	renderer    InvoicePDFRenderer
	fingerprint InvoiceFingerprinter
	artifacts   ArtifactStore
	now         func() time.Time
	log         zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	sales SaleReader,
	ledger InvoiceLedger,
	renderer InvoicePDFRenderer,
	fingerprint InvoiceFingerprinter,
	artifacts ArtifactStore,
	log zerolog.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices:    invoices,
		sales:       sales,
		ledger:      ledger,
		renderer:    renderer,
		fingerprint: fingerprint,
		artifacts:   artifacts,
		now:         time.Now,
		log:         log,
	}
}

// Generate emite una factura para la venta.
//
// Flujo: venta → id FAC-YYYY-MM-NNN → XML + huella → PDF → persistir → enlazar movimiento de caja.
// Si la venta no existe no se crea nada. No hay control de doble facturación.
func (uc *InvoiceUseCase) Generate(ctx context.Context, in dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error) {
	saleID := strings.TrimSpace(in.SaleID)
	client := strings.TrimSpace(in.Client)
	if saleID == "" || client == "" {
		return nil, domain.Invalid("Datos inválidos: venta_id y cliente son requeridos")
	}
	sale, err := uc.sales.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	var invoice entity.Invoice
	err = uc.invoices.Update(ctx, func(all *[]entity.Invoice) error {
		now := uc.now()
		invoice = entity.Invoice{
			ID:     entity.NextInvoiceID(*all, now),
			Date:   entity.NewTimestamp(now),
			Client: client,
			SaleID: sale.ID,
			Items:  sale.Items,
			Total:  sale.Total,
		}

		xmlDoc, fp, err := uc.fingerprint.BuildInvoiceXML(ctx, invoice)
		if err != nil {
			return fmt.Errorf("factura: xml: %w", err)
		}
		invoice.Fingerprint = fp

		pdf, err := uc.renderer.RenderInvoicePDF(ctx, invoice)
		if err != nil {
			return fmt.Errorf("factura: pdf: %w", err)
		}
		invoice.PDF = invoice.ID + ExtPDF

		if err := uc.artifacts.Save(ctx, invoice.ID+ExtXML, xmlDoc); err != nil {
			return fmt.Errorf("factura: guardar xml: %w", err)
		}
		if err := uc.artifacts.Save(ctx, invoice.PDF, pdf); err != nil {
			return fmt.Errorf("factura: guardar pdf: %w", err)
		}

		*all = append(*all, invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}

	linked, err := uc.ledger.AttachInvoice(ctx, sale.ID, invoice.ID)
	if err != nil {
		// la factura ya existe; el enlace es secundario
		uc.log.Error().Err(err).Str("invoice_id", invoice.ID).Msg("no se pudo enlazar la factura al movimiento")
	}
	uc.log.Info().
		Str("invoice_id", invoice.ID).
		Str("sale_id", sale.ID).
		Bool("movimiento_enlazado", linked).
		Msg("factura generada")

	return &dto.InvoiceResponse{Message: "Factura generada correctamente", Invoice: invoice, PDF: invoice.PDF}, nil
}

// List devuelve todas las facturas.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]entity.Invoice, error) {
	all, err := uc.invoices.Load(ctx)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = []entity.Invoice{}
	}
	return all, nil
}

// Artifact devuelve el contenido de un PDF o XML generado.
// Solo acepta nombres simples con extensión .pdf o .xml.
func (uc *InvoiceUseCase) Artifact(ctx context.Context, filename string) ([]byte, error) {
	if !validArtifactName(filename) {
		return nil, domain.Invalid("nombre de archivo inválido")
	}
	data, err := uc.artifacts.Open(ctx, filename)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return nil, domain.ErrInvoiceNotFound
	}
	return data, err
}

func validArtifactName(name string) bool {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ExtPDF || ext == ExtXML
}
