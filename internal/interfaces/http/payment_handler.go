package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/application/payments"
)

// PaymentHandler maneja pagos a terceros.
type PaymentHandler struct {
	uc *payments.PaymentsUseCase
}

func NewPaymentHandler(uc *payments.PaymentsUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// List godoc
// @Summary      Listar pagos
// @Tags         Pagos
// @Produce      json
// @Success      200  {array}  entity.Payment
// @Router       /api/pagos [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar pago
// @Description  Registra el egreso en caja y guarda el pago con el mismo id.
// @Tags         Pagos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterPaymentRequest  true  "Pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pagos [post]
func (h *PaymentHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
