package pdf

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

func TestRenderInvoicePDF_GeneraDocumento(t *testing.T) {
	inv := entity.Invoice{
		ID:     "FAC-2024-03-001",
		Date:   entity.NewTimestamp(time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local)),
		Client: "Ana",
		SaleID: "v1",
		Items: []entity.SaleItem{
			{ProductID: 1, Name: "Café", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")},
		},
		Total:       decimal.RequireFromString("21.00"),
		Fingerprint: "abc123",
	}

	data, err := NewMarotoInvoiceRenderer("").RenderInvoicePDF(context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

// pageObjects cuenta los objetos /Type /Page (sin contar /Pages).
var pageObjects = regexp.MustCompile(`/Type\s*/Page\b`)

func TestRenderInvoicePDF_MuchosItemsAgreganPaginas(t *testing.T) {
	items := make([]entity.SaleItem, 0, 80)
	for i := 1; i <= 80; i++ {
		items = append(items, entity.SaleItem{ProductID: i, Name: fmt.Sprintf("Producto %02d", i), Quantity: 1, UnitPrice: decimal.NewFromInt(2)})
	}
	inv := entity.Invoice{
		ID:          "FAC-2024-03-002",
		Date:        entity.NewTimestamp(time.Date(2024, 3, 6, 9, 0, 0, 0, time.Local)),
		Client:      "Mercado Central",
		SaleID:      "v2",
		Items:       items,
		Total:       decimal.NewFromInt(160),
		Fingerprint: "ff00",
	}

	one, err := NewMarotoInvoiceRenderer("").RenderInvoicePDF(context.Background(), entity.Invoice{
		ID: "FAC-2024-03-001", Date: inv.Date, Client: "Ana", Items: items[:1], Total: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.Len(t, pageObjects.FindAll(one, -1), 1)

	data, err := NewMarotoInvoiceRenderer("").RenderInvoicePDF(context.Background(), inv)
	require.NoError(t, err)
	assert.Greater(t, len(pageObjects.FindAll(data, -1)), 1, "80 items no entran en una página carta")
}

func TestRenderInvoicePDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoInvoiceRenderer("").RenderInvoicePDF(ctx, entity.Invoice{ID: "FAC-2024-03-001"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestThanksLine(t *testing.T) {
	assert.Equal(t, "Gracias por confiar en Caja Plus", thanksLine(NewMarotoInvoiceRenderer("").brand))
	assert.Equal(t, "Gracias por confiar en Kiosco Sur", thanksLine(NewMarotoInvoiceRenderer("Kiosco Sur").brand))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$21.00", money(decimal.NewFromInt(21)))
	assert.Equal(t, "$0.50", money(decimal.RequireFromString("0.5")))
}

func TestSplitEvery(t *testing.T) {
	assert.Equal(t, []string{"abc", "de"}, splitEvery("abcde", 3))
	assert.Nil(t, splitEvery("", 3))
}
