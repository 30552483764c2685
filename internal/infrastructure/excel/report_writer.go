// Package excel exporta el acta de recepción como libro XLSX.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Recepcion-api/internal/application/reception"
)

var _ reception.ReportWriter = (*ReportWriter)(nil)

// ReportWriter implementa reception.ReportWriter con excelize. Produce un
// libro de tres hojas: pedido, inspecciones y paquetes.
type ReportWriter struct{}

func NewReportWriter() *ReportWriter { return &ReportWriter{} }

// WriteReport genera el libro y devuelve sus bytes.
func (w *ReportWriter) WriteReport(data *reception.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear estilo de encabezado: %w", err)
	}

	pedidoRows := make([][]interface{}, 0, len(data.Order.Details))
	for _, d := range data.Order.Details {
		pedidoRows = append(pedidoRows, []interface{}{
			d.MedicineCode, d.MedicineName, d.Quantity.String(), d.Unit,
			d.UnitPrice.StringFixed(2), d.Quantity.Mul(d.UnitPrice).StringFixed(2),
		})
	}
	if err := writeSheet(f, "Pedido", headerStyle,
		[]string{"Código", "Medicamento", "Cantidad", "Unidad", "Precio Unit.", "Valor"},
		pedidoRows); err != nil {
		return nil, err
	}

	inspRows := make([][]interface{}, 0, len(data.Inspections))
	for _, insp := range data.Inspections {
		inspRows = append(inspRows, []interface{}{
			insp.BatchID, insp.ActualQuantity.String(), insp.RejectedQuantity.String(),
			insp.NetAccepted().String(), insp.CreatedBy, insp.Note,
		})
	}
	if err := writeSheet(f, "Inspecciones", headerStyle,
		[]string{"Lote", "Aceptado", "Rechazado", "Neto", "Revisor", "Nota"},
		inspRows); err != nil {
		return nil, err
	}

	pkgRows := make([][]interface{}, 0, len(data.Packages))
	for _, p := range data.Packages {
		pkgRows = append(pkgRows, []interface{}{
			p.ID, p.BatchID, p.Quantity.String(), p.LocationID,
		})
	}
	if err := writeSheet(f, "Paquetes", headerStyle,
		[]string{"Paquete", "Lote", "Cantidad", "Ubicación"},
		pkgRows); err != nil {
		return nil, err
	}

	// Totales al pie de la hoja de pedido.
	base := len(pedidoRows) + 3
	totals := [][]interface{}{
		{"Total pedido", data.TotalOrdered.String()},
		{"Total aceptado", data.TotalAccepted.String()},
		{"Total rechazado", data.TotalRejected.String()},
		{"Valor del pedido", data.TotalValue.StringFixed(2)},
	}
	for i, t := range totals {
		cell := fmt.Sprintf("A%d", base+i)
		if err := f.SetSheetRow("Pedido", cell, &t); err != nil {
			return nil, fmt.Errorf("xlsx: escribir totales: %w", err)
		}
	}

	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, headerStyle int, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		if err := f.SetCellValue(name, cell, header); err != nil {
			return fmt.Errorf("xlsx: encabezado %s: %w", name, err)
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("xlsx: estilo %s: %w", name, err)
		}
	}
	for rowIdx, row := range rows {
		cell := fmt.Sprintf("A%d", rowIdx+2)
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("xlsx: fila %s: %w", name, err)
		}
	}
	for i := range headers {
		col := string(rune('A' + i))
		if err := f.SetColWidth(name, col, col, 18); err != nil {
			return fmt.Errorf("xlsx: ancho %s: %w", name, err)
		}
	}
	return nil
}
