package reception

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// ReportData datos consolidados del acta de recepción de una orden:
// la orden con sus renglones, las inspecciones registradas y los paquetes
// con su estado de ubicación.
type ReportData struct {
	Order       *entity.Order
	Inspections []entity.Inspection
	Packages    []entity.Package

	TotalOrdered  decimal.Decimal
	TotalAccepted decimal.Decimal
	TotalRejected decimal.Decimal
	TotalValue    decimal.Decimal
}

// ActaPDFGenerator puerto del generador del acta en PDF.
type ActaPDFGenerator interface {
	GenerateActa(ctx context.Context, data *ReportData) ([]byte, error)
}

// ReportWriter puerto del exportador del acta a hoja de cálculo.
type ReportWriter interface {
	WriteReport(data *ReportData) ([]byte, error)
}

// ReportUseCase arma el acta de recepción (PDF o XLSX) desde la vista
// confirmada del backend.
type ReportUseCase struct {
	orders OrderService
	pdf    ActaPDFGenerator
	excel  ReportWriter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(orders OrderService, pdf ActaPDFGenerator, excel ReportWriter) *ReportUseCase {
	return &ReportUseCase{orders: orders, pdf: pdf, excel: excel}
}

// BuildData consolida orden, inspecciones y paquetes con sus totales.
func (uc *ReportUseCase) BuildData(ctx context.Context, orderID string) (*ReportData, error) {
	order, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	inspections, err := uc.orders.ListInspections(ctx, orderID)
	if err != nil {
		return nil, err
	}
	packages, err := uc.orders.ListPackages(ctx, orderID)
	if err != nil {
		return nil, err
	}

	data := &ReportData{
		Order:       order,
		Inspections: inspections,
		Packages:    packages,
	}
	for _, d := range order.Details {
		data.TotalOrdered = data.TotalOrdered.Add(d.Quantity)
		data.TotalValue = data.TotalValue.Add(d.Quantity.Mul(d.UnitPrice))
	}
	for _, insp := range inspections {
		data.TotalAccepted = data.TotalAccepted.Add(insp.NetAccepted())
		data.TotalRejected = data.TotalRejected.Add(insp.RejectedQuantity)
	}
	return data, nil
}

// GeneratePDF genera el acta en PDF.
func (uc *ReportUseCase) GeneratePDF(ctx context.Context, orderID string) ([]byte, error) {
	data, err := uc.BuildData(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateActa(ctx, data)
}

// GenerateXLSX genera el acta en XLSX.
func (uc *ReportUseCase) GenerateXLSX(ctx context.Context, orderID string) ([]byte, error) {
	data, err := uc.BuildData(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return uc.excel.WriteReport(data)
}
