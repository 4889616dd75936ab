package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cajaplus-api/internal/application/billing"
	"github.com/jhoicas/cajaplus-api/internal/application/dto"
)

// InvoiceHandler maneja facturas.
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler construye el handler de facturas.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar factura
// @Description  Genera XML con huella, PDF y registra la factura de una venta existente.
// @Tags         Facturas
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateInvoiceRequest  true  "Venta y cliente"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/facturas [post]
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Generate(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         Facturas
// @Produce      json
// @Success      200  {array}  entity.Invoice
// @Router       /api/facturas [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar PDF o XML de una factura
// @Tags         Facturas
// @Produce      application/pdf
// @Param        archivo  path  string  true  "FAC-YYYY-MM-NNN.pdf o .xml"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/pdf/{archivo} [get]
func (h *InvoiceHandler) Download(c *fiber.Ctx) error {
	name := c.Params("archivo")
	data, err := h.uc.Artifact(c.Context(), name)
	if err != nil {
		return writeError(c, err)
	}
	if strings.EqualFold(filepath.Ext(name), billing.ExtXML) {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	} else {
		c.Set(fiber.HeaderContentType, "application/pdf")
	}
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filepath.Base(name)+`"`)
	return c.Send(data)
}
