package reception

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// Totals agregados de un formulario de recepción completo.
// TotalValue se valora con la cantidad real EN SU UNIDAD ORIGINAL (no la
// convertida): el precio está cotizado por unidad original.
type Totals struct {
	TotalExpected      decimal.Decimal
	TotalReceived      decimal.Decimal
	TotalReturned      decimal.Decimal
	TotalValue         decimal.Decimal
	ReceivedPercentage int
}

// Equal compara agregados campo a campo (igualdad de valor, no de exponente).
func (t Totals) Equal(o Totals) bool {
	return t.TotalExpected.Equal(o.TotalExpected) &&
		t.TotalReceived.Equal(o.TotalReceived) &&
		t.TotalReturned.Equal(o.TotalReturned) &&
		t.TotalValue.Equal(o.TotalValue) &&
		t.ReceivedPercentage == o.ReceivedPercentage
}

// Aggregator suma los resultados del conciliador sobre todos los renglones.
// Guarda los últimos agregados y solo dispara onChange cuando al menos un
// campo cambió, para evitar trabajo redundante aguas abajo.
type Aggregator struct {
	rec      *Reconciler
	last     *Totals
	onChange func(Totals)
}

// NewAggregator construye el agregador. onChange puede ser nil.
func NewAggregator(rec *Reconciler, onChange func(Totals)) *Aggregator {
	return &Aggregator{rec: rec, onChange: onChange}
}

// Recompute recalcula los agregados. Idempotente: recomputar con los mismos
// renglones produce los mismos valores y no vuelve a notificar.
func (a *Aggregator) Recompute(lines []entity.ReceiptLine) Totals {
	totals := Totals{
		TotalExpected: decimal.Zero,
		TotalReceived: decimal.Zero,
		TotalReturned: decimal.Zero,
		TotalValue:    decimal.Zero,
	}
	for _, line := range lines {
		rec := a.rec.Reconcile(line)
		totals.TotalExpected = totals.TotalExpected.Add(line.ExpectedQuantity)
		totals.TotalReceived = totals.TotalReceived.Add(rec.ConvertedReceived)
		totals.TotalReturned = totals.TotalReturned.Add(rec.Shortfall)
		totals.TotalValue = totals.TotalValue.Add(line.ActualQuantity.Mul(line.UnitPrice))
	}
	if totals.TotalExpected.IsPositive() {
		pct := totals.TotalReceived.
			Div(totals.TotalExpected).
			Mul(decimal.NewFromInt(100)).
			Round(0)
		totals.ReceivedPercentage = int(pct.IntPart())
	}

	if a.last == nil || !a.last.Equal(totals) {
		a.last = &totals
		if a.onChange != nil {
			a.onChange(totals)
		}
	}
	return totals
}
