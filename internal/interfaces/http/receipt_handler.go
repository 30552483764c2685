package http

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Recepcion-api/internal/application/dto"
	appreception "github.com/jhoicas/Recepcion-api/internal/application/reception"
)

// RemisionParser puerto del parser de remisiones electrónicas XML.
type RemisionParser interface {
	Parse(r io.Reader) ([]appreception.RemisionLine, error)
}

// ReceiptHandler maneja el ciclo de vida del formulario de recepción
// (protegido, rol bodeguero o admin).
type ReceiptHandler struct {
	receipts *appreception.ReceiptUseCase
	parser   RemisionParser
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(receipts *appreception.ReceiptUseCase, parser RemisionParser) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts, parser: parser}
}

// Open godoc
// @Summary      Abrir el formulario de recepción de una orden
// @Description  Siembra un renglón por cada renglón pedido. Solo con la orden en "delivered".
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      201  {object}  dto.ReceiptFormResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [post]
func (h *ReceiptHandler) Open(c *fiber.Ctx) error {
	form, err := h.receipts.Open(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReceiptFormResponse(form))
}

// Get godoc
// @Summary      Consultar un formulario de recepción en curso
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        formId  path  string  true  "ID del formulario"
// @Success      200  {object}  dto.ReceiptFormResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{formId} [get]
func (h *ReceiptHandler) Get(c *fiber.Ctx) error {
	form, err := h.receipts.Get(c.Params("formId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReceiptFormResponse(form))
}

// UpdateLine godoc
// @Summary      Editar un renglón del formulario
// @Description  Aplica solo los campos presentes y recalcula estado y agregados.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        formId  path  string  true  "ID del formulario"
// @Param        lineId  path  string  true  "ID del renglón"
// @Param        body    body  dto.ReceiptLinePatch  true  "campos a aplicar"
// @Success      200  {object}  dto.ReceiptFormResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/receipts/{formId}/lines/{lineId} [patch]
func (h *ReceiptHandler) UpdateLine(c *fiber.Ctx) error {
	var patch dto.ReceiptLinePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	form, err := h.receipts.UpdateLine(c.Params("formId"), c.Params("lineId"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReceiptFormResponse(form))
}

// ImportRemision godoc
// @Summary      Importar una remisión electrónica XML al formulario
// @Description  Cruza los renglones por código de producto o por nombre normalizado
//
//	y completa cantidad, unidad, lote y vencimiento de los que coincidan.
//
// @Tags         receipts
// @Security     Bearer
// @Accept       application/xml
// @Produce      json
// @Param        formId  path  string  true  "ID del formulario"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/receipts/{formId}/remision [post]
func (h *ReceiptHandler) ImportRemision(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se esperaba el XML de la remisión"})
	}
	lines, err := h.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return respondError(c, err)
	}
	form, matched, err := h.receipts.ImportRemision(c.Params("formId"), lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"matched": matched,
		"form":    toReceiptFormResponse(form),
	})
}

// Totals godoc
// @Summary      Agregados actuales del formulario
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        formId  path  string  true  "ID del formulario"
// @Success      200  {object}  dto.TotalsResponse
// @Router       /api/receipts/{formId}/totals [get]
func (h *ReceiptHandler) Totals(c *fiber.Ctx) error {
	totals, err := h.receipts.Totals(c.Params("formId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TotalsResponse{
		TotalExpected:      totals.TotalExpected,
		TotalReceived:      totals.TotalReceived,
		TotalReturned:      totals.TotalReturned,
		TotalValue:         totals.TotalValue,
		ReceivedPercentage: totals.ReceivedPercentage,
	})
}

// Submit godoc
// @Summary      Enviar el formulario y crear la inspección agregada
// @Description  El formulario se descarta solo si el backend confirma la creación.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        formId  path  string  true  "ID del formulario"
// @Param        body    body  dto.SubmitReceiptRequest  true  "lote opcional, rechazo y nota"
// @Success      201  {object}  dto.InspectionResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/receipts/{formId}/submit [post]
func (h *ReceiptHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	insp, err := h.receipts.Submit(c.Context(), actorFrom(c), c.Params("formId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInspectionResponse(*insp))
}

// Discard godoc
// @Summary      Descartar un formulario sin enviarlo
// @Tags         receipts
// @Security     Bearer
// @Param        formId  path  string  true  "ID del formulario"
// @Success      204
// @Router       /api/receipts/{formId} [delete]
func (h *ReceiptHandler) Discard(c *fiber.Ctx) error {
	if err := h.receipts.Discard(c.Params("formId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
