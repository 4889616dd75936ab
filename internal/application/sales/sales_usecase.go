// Package sales registra ventas y coordina la saga venta → caja → stock.
//
// Pasos de RegisterSale:
//  1. validar carrito y resolver productos (sin escrituras)
//  2. persistir la venta como "pendiente"
//  3. acreditar en caja (movimiento con ID == ID de la venta)
//  4. descontar stock con piso en cero
//  5. marcar la venta "confirmada"
//
// Si el proceso se interrumpe entre 2 y 5, Reconcile completa los pasos faltantes.
// Los pasos 3 y 4 son idempotentes: el movimiento de caja usa el ID de la venta y
// el catálogo guarda en ventas_aplicadas las ventas cuyo stock ya se descontó.
package sales

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/application/ports"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/domain/inventory"
	"github.com/jhoicas/cajaplus-api/internal/domain/repository"
)

// SalesUseCase casos de uso de ventas.
type SalesUseCase struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	ledger   SaleLedger
	cache    ports.MetricsCache
	log      zerolog.Logger
}

// NewSalesUseCase construye el caso de uso. cache puede ser nil.
func NewSalesUseCase(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	ledger SaleLedger,
	cache ports.MetricsCache,
	log zerolog.Logger,
) *SalesUseCase {
	if cache == nil {
		cache = ports.NoopCache{}
	}
	return &SalesUseCase{sales: sales, products: products, ledger: ledger, cache: cache, log: log}
}

// RegisterSale valida el carrito, persiste la venta y aplica caja y stock.
// Un producto inexistente aborta antes de cualquier escritura.
func (uc *SalesUseCase) RegisterSale(ctx context.Context, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	items, err := uc.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	sale := entity.Sale{
		ID:     uuid.New().String(),
		Items:  items,
		Total:  entity.SaleTotal(items),
		Date:   entity.Now(),
		Status: entity.SalePending,
	}
	if err := uc.sales.Update(ctx, func(s *[]entity.Sale) error {
		*s = append(*s, sale)
		return nil
	}); err != nil {
		return nil, err
	}

	confirmed, err := uc.complete(ctx, sale)
	if err != nil {
		uc.log.Error().Err(err).Str("sale_id", sale.ID).Msg("venta pendiente: saga incompleta")
		return nil, fmt.Errorf("venta %s pendiente de reconciliar: %w", sale.ID, err)
	}

	uc.log.Info().
		Str("sale_id", confirmed.ID).
		Str("total", confirmed.Total.String()).
		Int("items", len(confirmed.Items)).
		Msg("venta registrada")
	uc.cache.Invalidate(ctx)
	return &dto.SaleResponse{Message: "Venta registrada", Sale: confirmed}, nil
}

// resolveItems toma nombre y precio del catálogo actual; ignora precios del cliente.
func (uc *SalesUseCase) resolveItems(ctx context.Context, req []dto.SaleItemRequest) ([]entity.SaleItem, error) {
	if len(req) == 0 {
		return nil, domain.ErrEmptySale
	}
	for _, it := range req {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}
	catalog, err := uc.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]entity.SaleItem, 0, len(req))
	for _, it := range req {
		i := catalog.Find(it.ProductID)
		if i < 0 {
			return nil, &domain.ProductNotFoundError{ID: it.ProductID}
		}
		p := catalog.Products[i]
		items = append(items, entity.SaleItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
	}
	return items, nil
}

// complete ejecuta los pasos de caja y stock faltantes y confirma la venta.
func (uc *SalesUseCase) complete(ctx context.Context, sale entity.Sale) (entity.Sale, error) {
	if _, err := uc.ledger.CreditSale(ctx, sale.ID, sale.Total, sale.Date); err != nil {
		return sale, fmt.Errorf("acreditar en caja: %w", err)
	}
	sale.CashRecorded = true

	applied, err := uc.deductStock(ctx, sale.ID, sale.Items)
	if err != nil {
		return sale, fmt.Errorf("descontar stock: %w", err)
	}
	if !applied {
		uc.log.Warn().Str("sale_id", sale.ID).Msg("stock ya descontado para la venta")
	}
	sale.StockDeducted = true
	sale.Status = entity.SaleConfirmed

	err = uc.sales.Update(ctx, func(s *[]entity.Sale) error {
		i := entity.FindSale(*s, sale.ID)
		if i < 0 {
			// borrada mientras tanto: no se resucita
			return nil
		}
		(*s)[i].CashRecorded = true
		(*s)[i].StockDeducted = true
		(*s)[i].Status = entity.SaleConfirmed
		return nil
	})
	if err != nil {
		return sale, fmt.Errorf("confirmar venta: %w", err)
	}
	return sale, nil
}

// deductStock aplica la venta al catálogo una sola vez. applied=false si ya estaba aplicada.
func (uc *SalesUseCase) deductStock(ctx context.Context, saleID string, items []entity.SaleItem) (bool, error) {
	var applied bool
	err := uc.products.Update(ctx, func(c *entity.ProductCatalog) error {
		applied = c.ApplySale(saleID, items, inventory.DeductStock)
		return nil
	})
	return applied, err
}

// Reconcile completa las ventas pendientes. Devuelve los IDs reparados.
func (uc *SalesUseCase) Reconcile(ctx context.Context) ([]string, error) {
	all, err := uc.sales.Load(ctx)
	if err != nil {
		return nil, err
	}
	repaired := []string{}
	for _, s := range all {
		if !s.Pending() {
			continue
		}
		if _, err := uc.complete(ctx, s); err != nil {
			return repaired, fmt.Errorf("reconciliar venta %s: %w", s.ID, err)
		}
		uc.log.Warn().Str("sale_id", s.ID).Msg("venta pendiente reparada")
		repaired = append(repaired, s.ID)
	}
	if len(repaired) > 0 {
		uc.cache.Invalidate(ctx)
	}
	return repaired, nil
}

// ── Lectura / mantenimiento ───────────────────────────────────────────────────

// ListSales devuelve todas las ventas en orden de registro.
func (uc *SalesUseCase) ListSales(ctx context.Context) ([]entity.Sale, error) {
	all, err := uc.sales.Load(ctx)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = []entity.Sale{}
	}
	return all, nil
}

// ListSalesPage devuelve una página de ventas, más recientes primero.
func (uc *SalesUseCase) ListSalesPage(ctx context.Context, page dto.PageRequest) (*dto.SalePageResponse, error) {
	all, err := uc.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(all)
	slices.Reverse(sorted)
	slices.SortStableFunc(sorted, func(a, b entity.Sale) int {
		return b.Date.Compare(a.Date.Time)
	})
	page = page.Normalize()
	start, end := page.Bounds(len(sorted))
	return &dto.SalePageResponse{Sales: sorted[start:end], PageResponse: dto.NewPageResponse(page, len(sorted))}, nil
}

// GetSale busca una venta por id.
func (uc *SalesUseCase) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	all, err := uc.sales.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := entity.FindSale(all, id)
	if i < 0 {
		return nil, domain.ErrSaleNotFound
	}
	s := all[i]
	return &s, nil
}

// UpdateSale sobrescribe items y total tal cual llegan.
// No revalida stock ni ajusta la caja.
func (uc *SalesUseCase) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if in.Items == nil || in.Total == nil {
		return nil, domain.Invalid("Datos inválidos: items y total son requeridos")
	}
	var updated entity.Sale
	err := uc.sales.Update(ctx, func(s *[]entity.Sale) error {
		i := entity.FindSale(*s, id)
		if i < 0 {
			return domain.ErrSaleNotFound
		}
		(*s)[i].Items = in.Items
		(*s)[i].Total = *in.Total
		updated = (*s)[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("sale_id", id).Str("total", in.Total.String()).Msg("venta actualizada sin ajuste de caja ni stock")
	uc.cache.Invalidate(ctx)
	return &dto.SaleResponse{Message: "Venta actualizada correctamente", Sale: updated}, nil
}

// DeleteSale elimina la venta. No revierte el movimiento de caja ni restaura stock.
func (uc *SalesUseCase) DeleteSale(ctx context.Context, id string) error {
	err := uc.sales.Update(ctx, func(s *[]entity.Sale) error {
		i := entity.FindSale(*s, id)
		if i < 0 {
			return domain.ErrSaleNotFound
		}
		*s = slices.Delete(*s, i, i+1)
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("sale_id", id).Msg("venta eliminada")
	uc.cache.Invalidate(ctx)
	return nil
}
