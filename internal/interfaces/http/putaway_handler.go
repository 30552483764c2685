package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Recepcion-api/internal/application/dto"
	appreception "github.com/jhoicas/Recepcion-api/internal/application/reception"
)

// PutAwayHandler maneja el acomodo de paquetes en ubicaciones (protegido).
type PutAwayHandler struct {
	putaway *appreception.PutAwayUseCase
}

// NewPutAwayHandler construye el handler.
func NewPutAwayHandler(putaway *appreception.PutAwayUseCase) *PutAwayHandler {
	return &PutAwayHandler{putaway: putaway}
}

// ListPackages godoc
// @Summary      Listar los paquetes de una orden con su ubicación
// @Tags         putaway
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/orders/{id}/packages [get]
func (h *PutAwayHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.putaway.ListPackages(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PackageResponse, 0, len(packages))
	allPlaced := len(packages) > 0
	for _, p := range packages {
		out = append(out, toPackageResponse(p))
		if !p.HasLocation() {
			allPlaced = false
		}
	}
	return c.JSON(fiber.Map{
		"packages":       out,
		"fully_put_away": allPlaced,
	})
}

// ClearLocation godoc
// @Summary      Retirar la asignación de ubicación de un paquete
// @Description  Solo mientras la orden está en "arranged".
// @Tags         putaway
// @Security     Bearer
// @Param        id         path  string  true  "ID de la orden"
// @Param        packageId  path  string  true  "ID del paquete"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/packages/{packageId}/location [delete]
func (h *PutAwayHandler) ClearLocation(c *fiber.Ctx) error {
	if err := h.putaway.ClearLocation(c.Context(), actorFrom(c), c.Params("id"), c.Params("packageId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
