package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cajaplus-api/internal/application/cash"
	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CashHandler maneja la caja.
type CashHandler struct {
	uc *cash.LedgerUseCase
}

// NewCashHandler construye el handler de caja.
func NewCashHandler(uc *cash.LedgerUseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// Get godoc
// @Summary      Saldo y movimientos
// @Tags         Caja
// @Produce      json
// @Param        tipo      query  string  false  "ingreso | egreso"
// @Param        page      query  int     false  "Página"
// @Param        per_page  query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.CashResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/caja [get]
func (h *CashHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Query(c.Context(), dto.CashQuery{
		Type:        entity.MovementType(c.Query("tipo")),
		PageRequest: pageQuery(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Income godoc
// @Summary      Registrar ingreso
// @Tags         Caja
// @Accept       json
// @Produce      json
// @Param        body  body      dto.IncomeRequest  true  "Ingreso"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/caja/ingreso [post]
func (h *CashHandler) Income(c *fiber.Ctx) error {
	var in dto.IncomeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordIncome(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Expense godoc
// @Summary      Registrar egreso
// @Tags         Caja
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ExpenseRequest  true  "Egreso"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/caja/egreso [post]
func (h *CashHandler) Expense(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordExpense(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento
// @Description  Revierte el efecto del movimiento en el saldo. Requiere rol admin.
// @Tags         Caja
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caja/movimiento/{id} [delete]
func (h *CashHandler) DeleteMovement(c *fiber.Ctx) error {
	balance, err := h.uc.DeleteMovement(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Movimiento eliminado", "saldo": balance})
}

// Export godoc
// @Summary      Exportar caja a Excel
// @Tags         Caja
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/caja/exportar [get]
func (h *CashHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.Export(c.Context(), &buf); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="caja_%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(buf.Bytes())
}
