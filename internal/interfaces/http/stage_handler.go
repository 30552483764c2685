package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Recepcion-api/internal/application/dto"
	appreception "github.com/jhoicas/Recepcion-api/internal/application/reception"
)

// StageHandler maneja los avances de etapa de una orden, el estado de los
// paneles y la bitácora (protegido).
type StageHandler struct {
	stage *appreception.StageUseCase
	audit appreception.AuditTrail
}

// NewStageHandler construye el handler.
func NewStageHandler(stage *appreception.StageUseCase, audit appreception.AuditTrail) *StageHandler {
	return &StageHandler{stage: stage, audit: audit}
}

// MarkArrived godoc
// @Summary      Marcar la orden como entregada en bodega
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/arrive [post]
func (h *StageHandler) MarkArrived(c *fiber.Ctx) error {
	order, err := h.stage.MarkArrived(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// FinishInspection godoc
// @Summary      Cerrar la fase de inspección de la orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/finish-inspection [post]
func (h *StageHandler) FinishInspection(c *fiber.Ctx) error {
	order, err := h.stage.FinishInspection(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// Finalize godoc
// @Summary      Completar la recepción de la orden
// @Description  Requiere que todos los paquetes tengan ubicación asignada.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/finalize [post]
func (h *StageHandler) Finalize(c *fiber.Ctx) error {
	order, err := h.stage.Finalize(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// PanelStates godoc
// @Summary      Estado de los paneles intermedios de la orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PanelStatesResponse
// @Router       /api/orders/{id}/panels [get]
func (h *StageHandler) PanelStates(c *fiber.Ctx) error {
	order, panels, err := h.stage.PanelStates(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PanelStatesResponse{
		OrderID:    order.ID,
		Status:     string(order.Status),
		Inspection: string(panels.Inspection),
		Packaging:  string(panels.Packaging),
		PutAway:    string(panels.PutAway),
	})
}

// ListAudit godoc
// @Summary      Bitácora de recepción de la orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}  dto.AuditEntryResponse
// @Router       /api/orders/{id}/audit [get]
func (h *StageHandler) ListAudit(c *fiber.Ctx) error {
	entries, err := h.audit.ListByOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEntryResponse{
			ID: e.ID, OrderID: e.OrderID, Action: e.Action,
			Detail: e.Detail, Actor: e.Actor, At: e.At,
		})
	}
	return c.JSON(out)
}
