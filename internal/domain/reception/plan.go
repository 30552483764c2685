package reception

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// PackageRow fila del plan de empaque: un paquete físico a crear.
// ID es estable desde que el operador agrega la fila, de modo que un reintento
// de commit pueda referenciar las mismas filas.
type PackageRow struct {
	ID       string
	BatchID  string // real o temporal (tmp-...)
	Quantity decimal.Decimal
}

// PlanValidation resultado de validar un plan. No es un error: un plan
// inválido solo deshabilita el commit y lista los problemas al operador.
type PlanValidation struct {
	Valid    bool
	Problems []string
}

// ValidatePlan verifica que el plan de empaque conserve las cantidades:
//
//	(a) existe al menos una fila;
//	(b) toda fila tiene lote seleccionado y cantidad positiva;
//	(c) para cada inspección con lote, la suma de cantidades asignadas a ese
//	    lote es EXACTAMENTE su cantidad neta aceptada (actual − rechazada).
//
// La igualdad es exacta, sin tolerancia: no se permiten commits parciales.
// Las filas que referencian lotes nuevos (temporales) solo deben cumplir (b).
func ValidatePlan(rows []PackageRow, inspections []entity.Inspection) PlanValidation {
	v := PlanValidation{Valid: true}

	if len(rows) == 0 {
		v.Valid = false
		v.Problems = append(v.Problems, "el plan no tiene filas de paquete")
		return v
	}

	assigned := make(map[string]decimal.Decimal)
	for i, row := range rows {
		if row.BatchID == "" {
			v.Valid = false
			v.Problems = append(v.Problems, fmt.Sprintf("la fila %d no tiene lote seleccionado", i+1))
			continue
		}
		if !row.Quantity.IsPositive() {
			v.Valid = false
			v.Problems = append(v.Problems, fmt.Sprintf("la fila %d tiene cantidad no positiva", i+1))
			continue
		}
		assigned[row.BatchID] = assigned[row.BatchID].Add(row.Quantity)
	}

	// Neta aceptada por lote, sumando inspecciones que comparten lote.
	net := make(map[string]decimal.Decimal)
	for _, insp := range inspections {
		if !insp.HasBatch() {
			continue
		}
		net[insp.BatchID] = net[insp.BatchID].Add(insp.NetAccepted())
	}
	for batchID, want := range net {
		got := assigned[batchID]
		if !got.Equal(want) {
			v.Valid = false
			v.Problems = append(v.Problems, fmt.Sprintf(
				"lote %s: las filas suman %s pero la cantidad neta aceptada es %s",
				batchID, got.String(), want.String()))
		}
	}

	return v
}

// FullyPutAway es verdadero si todos los paquetes tienen ubicación asignada.
// Es la compuerta de la transición arranged → completed.
func FullyPutAway(packages []entity.Package) bool {
	for _, p := range packages {
		if !p.HasLocation() {
			return false
		}
	}
	return true
}
