package http

import (
	"github.com/gofiber/fiber/v2"

	appreception "github.com/jhoicas/Recepcion-api/internal/application/reception"
)

// ReportHandler genera el acta de recepción en PDF o XLSX (protegido).
type ReportHandler struct {
	reports *appreception.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *appreception.ReportUseCase) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GetActaPDF godoc
// @Summary      Acta de recepción en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Router       /api/orders/{id}/acta.pdf [get]
func (h *ReportHandler) GetActaPDF(c *fiber.Ctx) error {
	orderID := c.Params("id")
	data, err := h.reports.GeneratePDF(c.Context(), orderID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="acta-`+orderID+`.pdf"`)
	return c.Send(data)
}

// GetActaXLSX godoc
// @Summary      Acta de recepción en XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Router       /api/orders/{id}/acta.xlsx [get]
func (h *ReportHandler) GetActaXLSX(c *fiber.Ctx) error {
	orderID := c.Params("id")
	data, err := h.reports.GenerateXLSX(c.Context(), orderID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="acta-`+orderID+`.xlsx"`)
	return c.Send(data)
}
