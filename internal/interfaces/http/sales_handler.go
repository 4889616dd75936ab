package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cajaplus-api/internal/application/analytics"
	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/application/sales"
)

// SalesHandler maneja ventas y métricas.
type SalesHandler struct {
	uc      *sales.SalesUseCase
	metrics *analytics.MetricsUseCase
}

// NewSalesHandler construye el handler de ventas.
func NewSalesHandler(uc *sales.SalesUseCase, metrics *analytics.MetricsUseCase) *SalesHandler {
	return &SalesHandler{uc: uc, metrics: metrics}
}

// Register godoc
// @Summary      Registrar venta
// @Description  Resuelve precios del catálogo, acredita la caja y descuenta stock.
// @Tags         Ventas
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterSaleRequest  true  "Carrito"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/compras [post]
func (h *SalesHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterSale(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Description  Sin page devuelve todas las ventas en orden de registro. Con page devuelve la página, más recientes primero.
// @Tags         Ventas
// @Produce      json
// @Param        page      query  int  false  "Página"
// @Param        per_page  query  int  false  "Tamaño de página"
// @Success      200  {array}   entity.Sale
// @Router       /api/ventas/compras [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	if c.Query("page") != "" {
		out, err := h.uc.ListSalesPage(c.Context(), pageQuery(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	all, err := h.uc.ListSales(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(all)
}

// Update godoc
// @Summary      Actualizar venta
// @Description  Sobrescribe items y total. No ajusta caja ni stock.
// @Tags         Ventas
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID de la venta"
// @Param        body  body      dto.UpdateSaleRequest  true  "Items y total"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [put]
func (h *SalesHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateSale(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta
// @Tags         Ventas
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [delete]
func (h *SalesHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteSale(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Venta eliminada correctamente"})
}

// Metrics godoc
// @Summary      Métricas de ventas y caja
// @Tags         Ventas
// @Produce      json
// @Success      200  {object}  dto.MetricsDTO
// @Router       /api/ventas/metricas [get]
func (h *SalesHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.metrics.GetMetrics(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Reparar ventas pendientes
// @Tags         Ventas
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/ventas/reconciliar [post]
func (h *SalesHandler) Reconcile(c *fiber.Ctx) error {
	ids, err := h.uc.Reconcile(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(dto.ReconcileResponse{Repaired: ids})
}
