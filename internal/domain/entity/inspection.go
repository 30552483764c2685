package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inspection registro persistido de lo que se revisó físicamente al recibir:
// cantidad aceptada y cantidad rechazada, con lote opcional.
// Inmutable una vez que la orden avanza más allá de "checked".
type Inspection struct {
	ID               string
	OrderID          string
	BatchID          string // vacío = sin lote asociado
	ActualQuantity   decimal.Decimal
	RejectedQuantity decimal.Decimal
	Note             string
	CreatedBy        string
	CreatedAt        time.Time
}

// NetAccepted cantidad neta aceptada: actual − rechazada.
func (i Inspection) NetAccepted() decimal.Decimal {
	return i.ActualQuantity.Sub(i.RejectedQuantity)
}

// HasBatch indica si la inspección referencia un lote.
func (i Inspection) HasBatch() bool {
	return i.BatchID != ""
}
