package invoicexml

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

func sampleInvoice() entity.Invoice {
	return entity.Invoice{
		ID:     "FAC-2024-03-001",
		Date:   entity.NewTimestamp(time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local)),
		Client: "Ana & Cía",
		SaleID: "v1",
		Items: []entity.SaleItem{
			{ProductID: 7, Name: "Café", Quantity: 2, UnitPrice: decimal.RequireFromString("10.5")},
		},
		Total: decimal.RequireFromString("21"),
	}
}

func TestBuildInvoiceXML_Contenido(t *testing.T) {
	xmlDoc, fp, err := NewBuilder().BuildInvoiceXML(context.Background(), sampleInvoice())
	require.NoError(t, err)
	assert.Len(t, fp, 96)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(xmlDoc))
	root := doc.SelectElement("Factura")
	require.NotNil(t, root)
	assert.Equal(t, "FAC-2024-03-001", root.SelectAttrValue("id", ""))
	assert.Equal(t, "Ana & Cía", root.SelectElement("Cliente").Text())
	assert.Equal(t, "21.00", root.SelectElement("Total").Text())
	item := root.SelectElement("Items").SelectElement("Item")
	require.NotNil(t, item)
	assert.Equal(t, "7", item.SelectAttrValue("producto_id", ""))
	assert.Equal(t, "21.00", item.SelectElement("Subtotal").Text())
}

func TestBuildInvoiceXML_HuellaDeterminista(t *testing.T) {
	b := NewBuilder()
	_, fp1, err := b.BuildInvoiceXML(context.Background(), sampleInvoice())
	require.NoError(t, err)
	_, fp2, err := b.BuildInvoiceXML(context.Background(), sampleInvoice())
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)

	other := sampleInvoice()
	other.Total = decimal.RequireFromString("22")
	_, fp3, err := b.BuildInvoiceXML(context.Background(), other)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3)
}

func TestFingerprint_IgnoraOrdenDeAtributos(t *testing.T) {
	a, err := Fingerprint([]byte(`<a x="1" y="2"></a>`))
	require.NoError(t, err)
	b, err := Fingerprint([]byte(`<a y='2' x='1'/>`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
