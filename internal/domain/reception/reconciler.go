// Package reception contiene las reglas puras del flujo de recepción:
// conciliación de renglones, agregados del formulario, validación del plan de
// empaque y la máquina de etapas de la orden.
package reception

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/units"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
)

// Reconciliation resultado de conciliar un renglón: cantidad recibida ya
// convertida a la unidad esperada, faltante y estado derivado.
type Reconciliation struct {
	ConvertedReceived decimal.Decimal
	Shortfall         decimal.Decimal
	Status            entity.LineStatus
}

// Reconciler concilia renglones de recepción contra la tabla de unidades.
type Reconciler struct {
	table *units.Table
	log   *logger.Logger
}

// NewReconciler construye el conciliador.
func NewReconciler(table *units.Table, log *logger.Logger) *Reconciler {
	return &Reconciler{table: table, log: log}
}

// Reconcile calcula recibido convertido, faltante y estado para un renglón.
// Determinista: las mismas entradas producen siempre el mismo resultado.
//
// Precedencia de estados, en este orden:
//  1. recibido == 0            → pending
//  2. recibido >= esperado     → received
//  3. 0 < recibido < esperado  → partial (supera la clasificación "shortage")
//
// "shortage" solo es alcanzable como estado intermedio que partial sobreescribe.
func (r *Reconciler) Reconcile(line entity.ReceiptLine) Reconciliation {
	if line.ActualUnit != line.ExpectedUnit && !r.table.Known(line.ActualUnit, line.ExpectedUnit) {
		// Fallback deliberado de la tabla: el par no registrado se trata como
		// unidades ya correctas. Se advierte sin cambiar la semántica.
		r.log.Warn().
			Str("product", line.ProductCode).
			Str("from", line.ActualUnit).
			Str("to", line.ExpectedUnit).
			Msg("par de unidades sin factor registrado; cantidad usada sin convertir")
	}

	converted := r.table.Convert(line.ActualQuantity, line.ActualUnit, line.ExpectedUnit)

	shortfall := line.ExpectedQuantity.Sub(converted)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}

	status := entity.LineShortage
	switch {
	case converted.IsZero():
		status = entity.LinePending
	case converted.GreaterThanOrEqual(line.ExpectedQuantity):
		status = entity.LineReceived
	case converted.IsPositive() && converted.LessThan(line.ExpectedQuantity):
		status = entity.LinePartial
	}

	return Reconciliation{
		ConvertedReceived: converted,
		Shortfall:         shortfall,
		Status:            status,
	}
}
