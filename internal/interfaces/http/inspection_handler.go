package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Recepcion-api/internal/application/dto"
	appreception "github.com/jhoicas/Recepcion-api/internal/application/reception"
)

// InspectionHandler maneja las inspecciones de una orden (protegido).
type InspectionHandler struct {
	inspections *appreception.InspectionUseCase
}

// NewInspectionHandler construye el handler.
func NewInspectionHandler(inspections *appreception.InspectionUseCase) *InspectionHandler {
	return &InspectionHandler{inspections: inspections}
}

// Create godoc
// @Summary      Registrar una inspección directa
// @Description  Solo con la orden en "delivered". La validación local corre antes de llamar al backend.
// @Tags         inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.CreateInspectionRequest  true  "cantidades y lote opcional"
// @Success      201  {object}  dto.InspectionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/inspections [post]
func (h *InspectionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInspectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	insp, err := h.inspections.Create(c.Context(), actorFrom(c), appreception.CreateInspectionInput{
		OrderID:          c.Params("id"),
		BatchID:          req.BatchID,
		ActualQuantity:   req.ActualQuantity,
		RejectedQuantity: req.RejectedQuantity,
		Note:             req.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInspectionResponse(*insp))
}

// List godoc
// @Summary      Listar las inspecciones de una orden
// @Tags         inspections
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}  dto.InspectionResponse
// @Router       /api/orders/{id}/inspections [get]
func (h *InspectionHandler) List(c *fiber.Ctx) error {
	inspections, err := h.inspections.List(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InspectionResponse, 0, len(inspections))
	for _, insp := range inspections {
		out = append(out, toInspectionResponse(insp))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una inspección
// @Description  Solo mientras la orden sigue en "delivered".
// @Tags         inspections
// @Security     Bearer
// @Param        id            path  string  true  "ID de la orden"
// @Param        inspectionId  path  string  true  "ID de la inspección"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/inspections/{inspectionId} [delete]
func (h *InspectionHandler) Delete(c *fiber.Ctx) error {
	if err := h.inspections.Delete(c.Context(), actorFrom(c), c.Params("id"), c.Params("inspectionId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
