// Package pdf implementa la generación del acta de recepción en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Acta de Recepción  │  N° Orden + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDEN: contrato / proveedor / estado                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA PEDIDO: Código | Medicamento | Cant | Unidad | Valor  │
//	│  TABLA INSPECCIONES: Lote | Aceptado | Rechazado | Revisor   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Pedido / Aceptado / Rechazado / Valor              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Recepcion-api/internal/application/reception"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ reception.ActaPDFGenerator = (*ActaGenerator)(nil)

// ActaGenerator implementa reception.ActaPDFGenerator usando Maroto v2.
type ActaGenerator struct{}

// NewActaGenerator construye el generador.
func NewActaGenerator() *ActaGenerator { return &ActaGenerator{} }

// GenerateActa genera el acta de recepción y devuelve sus bytes.
func (g *ActaGenerator) GenerateActa(_ context.Context, data *reception.ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Recepción", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(data.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Renglones pedidos"))
	m.AddRows(detailHeaderRow())
	for _, d := range data.Order.Details {
		m.AddRows(detailRow(d))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitle("Inspecciones"))
	if len(data.Inspections) == 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Sin inspecciones registradas", props.Text{
				Size: 8, Style: fontstyle.Italic, Color: colorGray,
			}),
		)))
	} else {
		m.AddRows(inspectionHeaderRow())
		for _, insp := range data.Inspections {
			m.AddRows(inspectionRow(insp))
		}
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(order *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("ACTA DE RECEPCIÓN DE MERCANCÍA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega farmacéutica", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Orden "+order.ID, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New(order.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func orderRow(order *entity.Order) core.Row {
	return row.New(10).Add(
		col.New(4).Add(
			text.New("Contrato: "+order.ContractID, props.Text{Size: 8, Top: 1}),
		),
		col.New(4).Add(
			text.New("Proveedor: "+order.SupplierID, props.Text{Size: 8, Top: 1}),
		),
		col.New(4).Add(
			text.New("Estado: "+string(order.Status), props.Text{
				Size: 8, Top: 1, Style: fontstyle.Bold, Align: align.Right,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
	))
}

func detailHeaderRow() core.Row {
	return row.New(6).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		headerCell(2, "Código"),
		headerCell(5, "Medicamento"),
		headerCell(2, "Cantidad"),
		headerCell(1, "Unidad"),
		headerCell(2, "Valor"),
	)
}

func detailRow(d entity.OrderDetail) core.Row {
	value := d.Quantity.Mul(d.UnitPrice)
	return row.New(5).Add(
		bodyCell(2, d.MedicineCode, align.Left),
		bodyCell(5, d.MedicineName, align.Left),
		bodyCell(2, d.Quantity.String(), align.Right),
		bodyCell(1, d.Unit, align.Left),
		bodyCell(2, value.StringFixed(2), align.Right),
	)
}

func inspectionHeaderRow() core.Row {
	return row.New(6).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		headerCell(3, "Lote"),
		headerCell(2, "Aceptado"),
		headerCell(2, "Rechazado"),
		headerCell(2, "Neto"),
		headerCell(3, "Revisor"),
	)
}

func inspectionRow(insp entity.Inspection) core.Row {
	batch := insp.BatchID
	if batch == "" {
		batch = "—"
	}
	return row.New(5).Add(
		bodyCell(3, batch, align.Left),
		bodyCell(2, insp.ActualQuantity.String(), align.Right),
		bodyCell(2, insp.RejectedQuantity.String(), align.Right),
		bodyCell(2, insp.NetAccepted().String(), align.Right),
		bodyCell(3, insp.CreatedBy, align.Left),
	)
}

func totalsRows(data *reception.ReportData) []core.Row {
	return []core.Row{
		totalRow("Total pedido", data.TotalOrdered.String(), false),
		totalRow("Total aceptado", data.TotalAccepted.String(), false),
		totalRow("Total rechazado", data.TotalRejected.String(), false),
		totalRow("VALOR DEL PEDIDO", "$ "+data.TotalValue.StringFixed(2), true),
	}
}

func totalRow(label, value string, emphasized bool) core.Row {
	size := 9.0
	style := fontstyle.Normal
	if emphasized {
		size = 11
		style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{
			Size: size, Style: style, Align: align.Right, Top: 1,
		})),
		col.New(4).Add(text.New(value, props.Text{
			Size: size, Style: style, Align: align.Right, Top: 1,
		})),
	)
}

func headerCell(width int, label string) core.Col {
	return col.New(width).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1, Left: 1,
	}))
}

func bodyCell(width int, value string, a align.Type) core.Col {
	return col.New(width).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1,
	}))
}
