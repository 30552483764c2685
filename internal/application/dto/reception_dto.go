package dto

import "github.com/shopspring/decimal"

// ReceiptLinePatch edición parcial de un renglón del formulario de recepción.
// Solo los campos no nulos se aplican.
type ReceiptLinePatch struct {
	ActualQuantity *decimal.Decimal `json:"actual_quantity"`
	ActualUnit     *string          `json:"actual_unit"`
	LotNumber      *string          `json:"lot_number"`
	ExpiryDate     *string          `json:"expiry_date"` // YYYY-MM-DD
	Notes          *string          `json:"notes"`
}

// SubmitReceiptRequest cierre del formulario: crea la inspección con los
// agregados derivados.
type SubmitReceiptRequest struct {
	BatchID          string          `json:"batch_id"` // opcional
	RejectedQuantity decimal.Decimal `json:"rejected_quantity"`
	Note             string          `json:"note"`
}

// CreateInspectionRequest alta directa de una inspección.
type CreateInspectionRequest struct {
	BatchID          string          `json:"batch_id"` // opcional
	ActualQuantity   decimal.Decimal `json:"actual_quantity"`
	RejectedQuantity decimal.Decimal `json:"rejected_quantity"`
	Note             string          `json:"note"`
}

// StageBatchRequest lote nuevo preparado localmente durante el empaque.
type StageBatchRequest struct {
	MedicineID     string `json:"medicine_id"`
	BatchCode      string `json:"batch_code"`
	ProductionDate string `json:"production_date"` // YYYY-MM-DD
	ExpiryDate     string `json:"expiry_date"`     // YYYY-MM-DD
	SupplierID     string `json:"supplier_id"`
}

// PackageRowRequest fila del plan de empaque. El id lo asigna el servidor al
// validar por primera vez si viene vacío y se mantiene estable en reintentos.
type PackageRowRequest struct {
	ID       string          `json:"id"`
	BatchID  string          `json:"batch_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// PlanRequest plan de empaque completo para validar o comprometer.
type PlanRequest struct {
	Rows []PackageRowRequest `json:"rows"`
}

// PlanValidationResponse resultado de validar un plan.
type PlanValidationResponse struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

// TotalsResponse agregados del formulario de recepción.
type TotalsResponse struct {
	TotalExpected      decimal.Decimal `json:"total_expected"`
	TotalReceived      decimal.Decimal `json:"total_received"`
	TotalReturned      decimal.Decimal `json:"total_returned"`
	TotalValue         decimal.Decimal `json:"total_value"`
	ReceivedPercentage int             `json:"received_percentage"`
}

// PanelStatesResponse compuertas de los paneles intermedios de una orden.
type PanelStatesResponse struct {
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	Inspection string `json:"inspection"`
	Packaging  string `json:"packaging"`
	PutAway    string `json:"put_away"`
}

// BatchOptionResponse opción de lote para el plan de empaque.
type BatchOptionResponse struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
}
