package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/application/usecase"
)

// CalculatorHandler calculadora de precio con IVA.
type CalculatorHandler struct {
	uc *usecase.CalculatorUseCase
}

func NewCalculatorHandler(uc *usecase.CalculatorUseCase) *CalculatorHandler {
	return &CalculatorHandler{uc: uc}
}

// Calculate godoc
// @Summary      Calcular precio final
// @Description  (costo + envío) * (1 + margen/100) * 1.21
// @Tags         Calculadora
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PriceRequest  true  "Costos y margen"
// @Success      200   {object}  dto.PriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calcular_precio [post]
func (h *CalculatorHandler) Calculate(c *fiber.Ctx) error {
	var in dto.PriceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Calculate(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de cálculos
// @Tags         Calculadora
// @Produce      json
// @Success      200  {array}  entity.PriceQuote
// @Router       /api/calcular_precio/historial [get]
func (h *CalculatorHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
