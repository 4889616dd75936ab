// Package export genera planillas de la caja.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// SheetName hoja con los movimientos.
const SheetName = "Movimientos"

var headers = []string{"Fecha", "Tipo", "Monto", "Descripción", "Destinatario", "Concepto", "Método", "Factura"}

// ExcelLedgerExporter implementa cash.LedgerExporter con excelize.
type ExcelLedgerExporter struct{}

func NewExcelLedgerExporter() *ExcelLedgerExporter { return &ExcelLedgerExporter{} }

// ExportLedger escribe un XLSX con los movimientos (más recientes primero) y el saldo al pie.
func (e *ExcelLedgerExporter) ExportLedger(ctx context.Context, ledger entity.CashLedger, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("export: crear hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: estilo: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}
	f.SetCellStyle(SheetName, "A1", "H1", bold)

	row := 2
	for _, m := range ledger.Sorted("") {
		amount, _ := m.Signed().Float64()
		values := []any{
			m.Date.Format(entity.TimestampLayout),
			string(m.Type),
			amount,
			m.Description,
			"", "", "",
			m.InvoiceID,
		}
		if m.Details != nil {
			values[4], values[5], values[6] = m.Details.Recipient, m.Details.Concept, m.Details.Method
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("export: fila %d: %w", row, err)
		}
		row++
	}

	balance, _ := ledger.Balance.Float64()
	f.SetCellValue(SheetName, fmt.Sprintf("B%d", row+1), "Saldo")
	f.SetCellValue(SheetName, fmt.Sprintf("C%d", row+1), balance)
	f.SetCellStyle(SheetName, fmt.Sprintf("B%d", row+1), fmt.Sprintf("C%d", row+1), bold)

	f.SetColWidth(SheetName, "A", "A", 20)
	f.SetColWidth(SheetName, "B", "B", 10)
	f.SetColWidth(SheetName, "C", "C", 12)
	f.SetColWidth(SheetName, "D", "D", 30)
	f.SetColWidth(SheetName, "E", "G", 16)
	f.SetColWidth(SheetName, "H", "H", 18)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: escribir: %w", err)
	}
	return nil
}
