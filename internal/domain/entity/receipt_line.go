package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de un renglón de recepción.
// "shortage" existe como clasificación intermedia pero en la práctica siempre
// la supera "partial" (ver el reconciliador); se conserva por compatibilidad.
type LineStatus string

const (
	LinePending  LineStatus = "pending"
	LinePartial  LineStatus = "partial"
	LineReceived LineStatus = "received"
	LineShortage LineStatus = "shortage"
)

// ReceiptLine renglón en memoria de un formulario de recepción en curso.
// No se persiste: al enviar el formulario se mandan los agregados derivados
// al endpoint de creación de inspecciones y el formulario se descarta.
type ReceiptLine struct {
	ID               string
	MedicineID       string
	ProductCode      string
	ProductName      string
	ExpectedQuantity decimal.Decimal
	ExpectedUnit     string
	ActualQuantity   decimal.Decimal
	ActualUnit       string
	UnitPrice        decimal.Decimal
	LotNumber        string
	ExpiryDate       *time.Time
	Notes            string
	Status           LineStatus
}
