// Package units implementa la tabla estática de conversión de unidades usada
// para conciliar cantidades esperadas y recibidas expresadas en unidades
// distintas.
package units

import "github.com/shopspring/decimal"

// Ratio par de unidades compatibles y su factor escalar.
type Ratio struct {
	From  string
	To    string
	Value decimal.Decimal
}

// Table mapea pares de unidades registrados a su factor de conversión.
// No encadena conversiones: solo aplica factores directos.
type Table struct {
	ratios map[string]decimal.Decimal
}

// NewTable construye la tabla con los pares farmacéuticos por defecto
// (masa y volumen, en ambas direcciones).
func NewTable() *Table {
	t := &Table{ratios: make(map[string]decimal.Decimal)}
	defaults := []Ratio{
		{From: "kg", To: "g", Value: decimal.NewFromInt(1000)},
		{From: "g", To: "kg", Value: decimal.RequireFromString("0.001")},
		{From: "g", To: "mg", Value: decimal.NewFromInt(1000)},
		{From: "mg", To: "g", Value: decimal.RequireFromString("0.001")},
		{From: "kg", To: "mg", Value: decimal.NewFromInt(1000000)},
		{From: "mg", To: "kg", Value: decimal.RequireFromString("0.000001")},
		{From: "l", To: "ml", Value: decimal.NewFromInt(1000)},
		{From: "ml", To: "l", Value: decimal.RequireFromString("0.001")},
	}
	for _, r := range defaults {
		t.Register(r)
	}
	return t
}

// Register agrega o reemplaza el factor directo de un par de unidades.
// Los ratios cargados desde la base de datos se mezclan sobre los defaults.
func (t *Table) Register(r Ratio) {
	if r.From == "" || r.To == "" || !r.Value.IsPositive() {
		return
	}
	t.ratios[key(r.From, r.To)] = r.Value
}

// Known indica si existe un factor directo registrado de from a to.
// Unidades iguales siempre se consideran conocidas.
func (t *Table) Known(from, to string) bool {
	if from == to {
		return true
	}
	_, ok := t.ratios[key(from, to)]
	return ok
}

// Convert convierte quantity de from a to.
// Si las unidades coinciden devuelve la entrada sin cambios. Si hay factor
// directo registrado lo aplica. Si no hay factor (incluidos los casos que
// requerirían encadenar conversiones) devuelve la entrada SIN CAMBIOS en vez
// de fallar: una entrada ausente en la tabla degrada a "tratar como unidades
// ya correctas" y no tumba el formulario. Los llamadores pueden usar Known
// para advertir el desajuste sin alterar este comportamiento.
func (t *Table) Convert(quantity decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return quantity
	}
	if ratio, ok := t.ratios[key(from, to)]; ok {
		return quantity.Mul(ratio)
	}
	return quantity
}

func key(from, to string) string {
	return from + "->" + to
}
