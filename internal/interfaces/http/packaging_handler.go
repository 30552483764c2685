package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Recepcion-api/internal/application/dto"
	appreception "github.com/jhoicas/Recepcion-api/internal/application/reception"
	domainreception "github.com/jhoicas/Recepcion-api/internal/domain/reception"
)

// PackagingHandler maneja el plan de empaque de una orden (protegido).
type PackagingHandler struct {
	packaging *appreception.PackagingUseCase
}

// NewPackagingHandler construye el handler.
func NewPackagingHandler(packaging *appreception.PackagingUseCase) *PackagingHandler {
	return &PackagingHandler{packaging: packaging}
}

// BatchOptions godoc
// @Summary      Opciones de lote para las filas del plan
// @Description  Una opción por lote referenciado por alguna inspección, con su
//
//	cantidad neta aceptada como tope, más los lotes preparados localmente.
//
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}  dto.BatchOptionResponse
// @Router       /api/orders/{id}/batch-options [get]
func (h *PackagingHandler) BatchOptions(c *fiber.Ctx) error {
	options, err := h.packaging.ProposeBatchOptions(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BatchOptionResponse, 0, len(options))
	for _, opt := range options {
		out = append(out, dto.BatchOptionResponse{
			ID: opt.ID, Label: opt.Label, MaxQuantity: opt.MaxQuantity,
		})
	}
	return c.JSON(out)
}

// StageBatch godoc
// @Summary      Preparar un lote nuevo con ID temporal
// @Description  El lote no se persiste hasta comprometer el plan; su ID temporal
//
//	puede referenciarse en filas de paquete.
//
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.StageBatchRequest  true  "datos del lote"
// @Success      201  {object}  dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/staged-batches [post]
func (h *PackagingHandler) StageBatch(c *fiber.Ctx) error {
	var req dto.StageBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	production, err := time.Parse(dateLayout, req.ProductionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, se esperaba YYYY-MM-DD", Field: "production_date"})
	}
	expiry, err := time.Parse(dateLayout, req.ExpiryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, se esperaba YYYY-MM-DD", Field: "expiry_date"})
	}
	batch, err := h.packaging.StageBatch(c.Params("id"), appreception.StageBatchInput{
		MedicineID:     req.MedicineID,
		BatchCode:      req.BatchCode,
		ProductionDate: production,
		ExpiryDate:     expiry,
		SupplierID:     req.SupplierID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(*batch))
}

// StagedBatches godoc
// @Summary      Listar los lotes preparados localmente de una orden
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/orders/{id}/staged-batches [get]
func (h *PackagingHandler) StagedBatches(c *fiber.Ctx) error {
	batches := h.packaging.StagedBatches(c.Params("id"))
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return c.JSON(out)
}

// ValidatePlan godoc
// @Summary      Validar el plan de empaque sin comprometerlo
// @Description  Verifica la conservación exacta: la suma por lote debe igualar
//
//	la cantidad neta aceptada de sus inspecciones.
//
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.PlanRequest  true  "filas del plan"
// @Success      200  {object}  dto.PlanValidationResponse
// @Router       /api/orders/{id}/plan/validate [post]
func (h *PackagingHandler) ValidatePlan(c *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	validation, err := h.packaging.ValidatePlan(c.Context(), c.Params("id"), toPlanRows(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PlanValidationResponse{Valid: validation.Valid, Problems: validation.Problems})
}

// CommitPlan godoc
// @Summary      Comprometer el plan de empaque
// @Description  Persiste los lotes preparados, crea los paquetes y avanza la
//
//	orden a "arranged". Sin rollback automático: ante un fallo parcial el
//	reintento con las mismas filas es seguro (referencia de idempotencia).
//
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.PlanRequest  true  "filas del plan"
// @Success      201  {array}  dto.PackageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.PlanValidationResponse
// @Router       /api/orders/{id}/plan/commit [post]
func (h *PackagingHandler) CommitPlan(c *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	packages, err := h.packaging.CommitPlan(c.Context(), actorFrom(c), c.Params("id"), toPlanRows(req))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PackageResponse, 0, len(packages))
	for _, p := range packages {
		out = append(out, toPackageResponse(p))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func toPlanRows(req dto.PlanRequest) []domainreception.PackageRow {
	rows := make([]domainreception.PackageRow, 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, domainreception.PackageRow{
			ID:       r.ID,
			BatchID:  r.BatchID,
			Quantity: r.Quantity,
		})
	}
	return rows
}
