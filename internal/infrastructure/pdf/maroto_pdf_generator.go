// Package pdf genera la representación gráfica de las facturas de Caja Plus.
//
// Layout de la página carta:
//
//	┌───────────────────────────────────────────────┐
//	│  Caja Plus                         (verde)    │
//	│  Factura: FAC-YYYY-MM-NNN                     │
//	│  Fecha / Cliente                              │
//	│  ───────────────────────────────────────────  │
//	│  Detalle de productos:                        │
//	│  Producto | Cantidad | Precio Unitario        │
//	│  ...                                          │
//	│  Total                                        │
//	│  Gracias por confiar en Caja Plus             │
//	│  Huella + QR                                  │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorBrand     = &props.Color{Red: 16, Green: 185, Blue: 129}
	colorGray      = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeaderBg  = &props.Color{Red: 220, Green: 220, Blue: 220}
	colorHeaderTxt = &props.Color{Red: 40, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoInvoiceRenderer implementa billing.InvoicePDFRenderer con Maroto v2.
type MarotoInvoiceRenderer struct {
	brand string
}

// NewMarotoInvoiceRenderer construye el generador. brand vacío = "Caja Plus".
func NewMarotoInvoiceRenderer(brand string) *MarotoInvoiceRenderer {
	return &MarotoInvoiceRenderer{brand: nonEmpty(brand, "Caja Plus")}
}

// RenderInvoicePDF genera el PDF y devuelve sus bytes.
// El salto de página lo maneja Maroto al agotar el alto útil.
func (g *MarotoInvoiceRenderer) RenderInvoicePDF(ctx context.Context, invoice entity.Invoice) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(20).WithRightMargin(20).
		WithTopMargin(15).WithBottomMargin(20).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 12}).
		WithTitle("Factura "+invoice.ID, true).
		WithAuthor(g.brand, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(g.brand, invoice)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorBrand, Thickness: 0.5}))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New("Detalle de productos:", props.Text{Style: fontstyle.Bold, Size: 12, Top: 3}),
	)))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(invoice.Items)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalRow(invoice.Total))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New(thanksLine(g.brand), props.Text{Size: 11, Style: fontstyle.Italic, Align: align.Center, Color: colorGray, Top: 3}),
	)))

	if invoice.Fingerprint != "" {
		m.AddRows(row.New(4))
		m.AddRows(fingerprintRows(invoice)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRows(brand string, invoice entity.Invoice) []core.Row {
	return []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New(brand, props.Text{Style: fontstyle.Bold, Size: 20, Color: colorBrand, Top: 1}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New("Factura: "+invoice.ID, props.Text{Style: fontstyle.Bold, Size: 12}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New("Fecha: "+invoice.Date.Format(entity.TimestampLayout), props.Text{Size: 11, Color: colorGray}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New("Cliente: "+invoice.Client, props.Text{Size: 11, Color: colorGray}),
		)),
	}
}

// tableHeaderRow cabecera gris de la tabla.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: a,
			Color: colorHeaderTxt, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(9).Add(
		h("Producto", 6, align.Left),
		h("Cantidad", 2, align.Center),
		h("Precio Unitario", 4, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorHeaderBg})
}

func tableDetailRows(items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(8).Add(
			col.New(6).Add(text.New(nonEmpty(it.Name, "-"), props.Text{Size: 11, Top: 1.5, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 11, Align: align.Center, Top: 1.5})),
			col.New(4).Add(text.New(money(it.UnitPrice), props.Text{Size: 11, Align: align.Right, Top: 1.5, Right: 1})),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(8).Add(text.New("Total:", props.Text{
			Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 3, Right: 2,
		})),
		col.New(4).Add(text.New(money(total), props.Text{
			Style: fontstyle.Bold, Size: 14, Align: align.Right, Color: colorBrand, Top: 3, Right: 1,
		})),
	)
}

// fingerprintRows huella SHA-384 del XML canónico + QR para verificación.
func fingerprintRows(invoice entity.Invoice) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Huella del documento:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
		)),
	}
	for _, chunk := range splitEvery(invoice.Fingerprint, 64) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 7, Color: colorGray, Left: 2}),
		)))
	}
	qr := fmt.Sprintf("%s|%s|%s", invoice.ID, invoice.Total.StringFixed(2), invoice.Fingerprint)
	rows = append(rows, row.New(35).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func thanksLine(brand string) string {
	return "Gracias por confiar en " + brand
}

// money formato $0.00.
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
