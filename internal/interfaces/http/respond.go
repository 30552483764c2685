package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Recepcion-api/internal/application/dto"
	appreception "github.com/jhoicas/Recepcion-api/internal/application/reception"
	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// respondError traduce errores de dominio a respuestas HTTP. Todos los
// handlers comparten el mismo mapeo.
func respondError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: ve.Message, Field: ve.Field,
		})
	}
	var pe *domain.PlanError
	if errors.As(err, &pe) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.PlanValidationResponse{
			Valid: false, Problems: pe.Problems,
		})
	}
	var re *domain.RemoteError
	if errors.As(err, &re) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "BACKEND", Message: re.Message,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrStageLocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STAGE_LOCKED", Message: "la etapa de la orden no permite esta operación"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de etapa no permitida"})
	case errors.Is(err, domain.ErrOperationInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_PROGRESS", Message: "ya hay una operación en curso para esta orden"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// ── Mapeos entidad -> DTO ─────────────────────────────────────────────────────

const dateLayout = "2006-01-02"

func toOrderResponse(order *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:         order.ID,
		ContractID: order.ContractID,
		SupplierID: order.SupplierID,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
	}
	for _, d := range order.Details {
		out.Details = append(out.Details, dto.OrderDetailResponse{
			MedicineID:   d.MedicineID,
			MedicineCode: d.MedicineCode,
			MedicineName: d.MedicineName,
			Quantity:     d.Quantity,
			Unit:         d.Unit,
			UnitPrice:    d.UnitPrice,
		})
	}
	return out
}

func toReceiptFormResponse(form *appreception.ReceiptForm) dto.ReceiptFormResponse {
	out := dto.ReceiptFormResponse{
		ID:       form.ID,
		OrderID:  form.OrderID,
		OpenedAt: form.OpenedAt,
		Totals: dto.TotalsResponse{
			TotalExpected:      form.Totals.TotalExpected,
			TotalReceived:      form.Totals.TotalReceived,
			TotalReturned:      form.Totals.TotalReturned,
			TotalValue:         form.Totals.TotalValue,
			ReceivedPercentage: form.Totals.ReceivedPercentage,
		},
	}
	for _, l := range form.Lines {
		line := dto.ReceiptLineResponse{
			ID:               l.ID,
			MedicineID:       l.MedicineID,
			ProductCode:      l.ProductCode,
			ProductName:      l.ProductName,
			ExpectedQuantity: l.ExpectedQuantity,
			ExpectedUnit:     l.ExpectedUnit,
			ActualQuantity:   l.ActualQuantity,
			ActualUnit:       l.ActualUnit,
			LotNumber:        l.LotNumber,
			Notes:            l.Notes,
			Status:           string(l.Status),
		}
		if l.ExpiryDate != nil {
			line.ExpiryDate = l.ExpiryDate.Format(dateLayout)
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

func toInspectionResponse(insp entity.Inspection) dto.InspectionResponse {
	return dto.InspectionResponse{
		ID:               insp.ID,
		OrderID:          insp.OrderID,
		BatchID:          insp.BatchID,
		ActualQuantity:   insp.ActualQuantity,
		RejectedQuantity: insp.RejectedQuantity,
		NetAccepted:      insp.NetAccepted(),
		Note:             insp.Note,
		CreatedBy:        insp.CreatedBy,
		CreatedAt:        insp.CreatedAt,
	}
}

func toBatchResponse(batch entity.Batch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:             batch.ID,
		MedicineID:     batch.MedicineID,
		BatchCode:      batch.BatchCode,
		ProductionDate: batch.ProductionDate.Format(dateLayout),
		ExpiryDate:     batch.ExpiryDate.Format(dateLayout),
		SupplierID:     batch.SupplierID,
		Temp:           batch.IsTemp(),
	}
}

func toPackageResponse(pkg entity.Package) dto.PackageResponse {
	return dto.PackageResponse{
		ID:         pkg.ID,
		OrderID:    pkg.OrderID,
		BatchID:    pkg.BatchID,
		Quantity:   pkg.Quantity,
		LocationID: pkg.LocationID,
		Reference:  pkg.Reference,
	}
}
