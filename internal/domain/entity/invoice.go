package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoicePrefix prefijo de numeración de facturas.
const InvoicePrefix = "FAC"

// Invoice factura emitida a partir de una venta. Inmutable.
type Invoice struct {
	ID          string          `json:"id"`
	Date        Timestamp       `json:"fecha"`
	Client      string          `json:"cliente"`
	SaleID      string          `json:"venta_id"`
	Items       []SaleItem      `json:"items"`
	Total       decimal.Decimal `json:"total"`
	PDF         string          `json:"pdf,omitempty"`
	Fingerprint string          `json:"huella,omitempty"`
}

// NextInvoiceID calcula FAC-YYYY-MM-NNN. La secuencia se reinicia cada mes
// y cuenta las facturas existentes con el prefijo del mes.
func NextInvoiceID(existing []Invoice, now time.Time) string {
	prefix := fmt.Sprintf("%s-%04d-%02d-", InvoicePrefix, now.Year(), int(now.Month()))
	n := 0
	for _, inv := range existing {
		if strings.HasPrefix(inv.ID, prefix) {
			n++
		}
	}
	return fmt.Sprintf("%s%03d", prefix, n+1)
}
