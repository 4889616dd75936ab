package cash

import (
	"context"
	"io"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// LedgerExporter genera una planilla con los movimientos de caja.
type LedgerExporter interface {
	ExportLedger(ctx context.Context, ledger entity.CashLedger, w io.Writer) error
}
