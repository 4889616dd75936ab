package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/store"
)

type fakeSales map[string]entity.Sale

func (f fakeSales) GetSale(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := f[id]
	if !ok {
		return nil, domain.ErrSaleNotFound
	}
	return &s, nil
}

type fakeLedger struct {
	movements map[string]string
}

func (f *fakeLedger) AttachInvoice(_ context.Context, movementID, invoiceID string) (bool, error) {
	if _, ok := f.movements[movementID]; !ok {
		return false, nil
	}
	f.movements[movementID] = invoiceID
	return true, nil
}

type fakeRenderer struct{ err error }

func (f fakeRenderer) RenderInvoicePDF(_ context.Context, inv entity.Invoice) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF " + inv.ID), nil
}

type fakeFingerprinter struct{}

func (fakeFingerprinter) BuildInvoiceXML(_ context.Context, inv entity.Invoice) ([]byte, string, error) {
	return []byte("<Factura id=\"" + inv.ID + "\"/>"), "huella-" + inv.ID, nil
}

type fixture struct {
	uc        *InvoiceUseCase
	ledger    *fakeLedger
	artifacts *store.MemoryArtifacts
	repos     *store.Repositories
}

func newFixture(t *testing.T, renderer InvoicePDFRenderer) fixture {
	t.Helper()
	repos := store.NewRepositories(store.NewMemoryBackend())
	sales := fakeSales{
		"v1": {ID: "v1", Total: decimal.NewFromInt(21), Items: []entity.SaleItem{{ProductID: 1, Name: "café", Quantity: 2, UnitPrice: decimal.RequireFromString("10.5")}}},
		"v2": {ID: "v2", Total: decimal.NewFromInt(4)},
	}
	ledger := &fakeLedger{movements: map[string]string{"v1": ""}}
	artifacts := store.NewMemoryArtifacts()
	uc := NewInvoiceUseCase(repos.Invoices, sales, ledger, renderer, fakeFingerprinter{}, artifacts, zerolog.Nop())
	uc.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local) }
	return fixture{uc: uc, ledger: ledger, artifacts: artifacts, repos: repos}
}

func TestGenerate_SecuenciaYEnlace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fakeRenderer{})

	res, err := f.uc.Generate(ctx, dto.GenerateInvoiceRequest{SaleID: "v1", Client: " Ana "})
	require.NoError(t, err)
	assert.Equal(t, "FAC-2024-03-001", res.Invoice.ID)
	assert.Equal(t, "FAC-2024-03-001.pdf", res.PDF)
	assert.Equal(t, "Ana", res.Invoice.Client)
	assert.Equal(t, "huella-FAC-2024-03-001", res.Invoice.Fingerprint)
	assert.True(t, res.Invoice.Total.Equal(decimal.NewFromInt(21)))
	assert.Equal(t, "FAC-2024-03-001", f.ledger.movements["v1"])

	// sin movimiento asociado: la factura se emite igual
	res2, err := f.uc.Generate(ctx, dto.GenerateInvoiceRequest{SaleID: "v2", Client: "Luis"})
	require.NoError(t, err)
	assert.Equal(t, "FAC-2024-03-002", res2.Invoice.ID)

	pdf, err := f.uc.Artifact(ctx, "FAC-2024-03-001.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF FAC-2024-03-001", string(pdf))
	xml, err := f.uc.Artifact(ctx, "FAC-2024-03-002.xml")
	require.NoError(t, err)
	assert.Contains(t, string(xml), "FAC-2024-03-002")

	all, err := f.uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGenerate_VentaInexistenteNoCreaFactura(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fakeRenderer{})

	_, err := f.uc.Generate(ctx, dto.GenerateInvoiceRequest{SaleID: "nope", Client: "Ana"})
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)

	_, err = f.uc.Generate(ctx, dto.GenerateInvoiceRequest{SaleID: "v1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := f.uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGenerate_FalloDePDFNoPersiste(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fakeRenderer{err: errors.New("sin fuentes")})

	_, err := f.uc.Generate(ctx, dto.GenerateInvoiceRequest{SaleID: "v1", Client: "Ana"})
	require.Error(t, err)

	all, err := f.uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.ledger.movements["v1"])
}

func TestArtifact_NombresInvalidos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fakeRenderer{})

	for _, name := range []string{"", "../caja.json", "a/b.pdf", `a\b.pdf`, "caja.json", "..pdf"} {
		_, err := f.uc.Artifact(ctx, name)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
	_, err := f.uc.Artifact(ctx, "FAC-2024-03-009.pdf")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}
