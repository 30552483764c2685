package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package unidad física almacenable de un lote. Se crea en bloque durante el
// empaque; después solo se muta para asignar o retirar la ubicación.
// Reference es el ID estable de la fila del plan que lo originó, enviado al
// backend para que reintentos de commit no dupliquen paquetes.
type Package struct {
	ID         string
	OrderID    string
	BatchID    string
	Quantity   decimal.Decimal
	LocationID string // vacío = sin ubicación asignada
	Reference  string
	CreatedAt  time.Time
}

// HasLocation indica si el paquete ya tiene ubicación de almacenamiento.
func (p Package) HasLocation() bool {
	return p.LocationID != ""
}
