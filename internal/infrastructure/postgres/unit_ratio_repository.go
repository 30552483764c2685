package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Recepcion-api/internal/domain/units"
)

// UnitRatioRepo carga ratios de conversión adicionales definidos por la
// bodega (ej. caja -> unidad por presentación) para sumarlos a los métricos
// por defecto.
type UnitRatioRepo struct {
	q Querier
}

func NewUnitRatioRepository(q Querier) *UnitRatioRepo {
	return &UnitRatioRepo{q: q}
}

// LoadAll devuelve todos los ratios configurados. Ratios inválidos (factor
// no positivo) se descartan silenciosamente en Table.Register.
func (r *UnitRatioRepo) LoadAll(ctx context.Context) ([]units.Ratio, error) {
	rows, err := r.q.Query(ctx, `SELECT from_unit, to_unit, factor FROM unit_ratios`)
	if err != nil {
		return nil, fmt.Errorf("cargar ratios de unidades: %w", err)
	}
	defer rows.Close()

	var ratios []units.Ratio
	for rows.Next() {
		var ratio units.Ratio
		if err := rows.Scan(&ratio.From, &ratio.To, &ratio.Value); err != nil {
			return nil, fmt.Errorf("leer ratio de unidades: %w", err)
		}
		ratios = append(ratios, ratio)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recorrer ratios de unidades: %w", err)
	}
	return ratios, nil
}
