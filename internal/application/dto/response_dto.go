package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderResponse vista de una orden de importación.
type OrderResponse struct {
	ID         string                `json:"id"`
	ContractID string                `json:"contract_id"`
	SupplierID string                `json:"supplier_id"`
	Status     string                `json:"status"`
	Details    []OrderDetailResponse `json:"details"`
	CreatedAt  time.Time             `json:"created_at"`
}

// OrderDetailResponse renglón pedido de una orden.
type OrderDetailResponse struct {
	MedicineID   string          `json:"medicine_id"`
	MedicineCode string          `json:"medicine_code"`
	MedicineName string          `json:"medicine_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// ReceiptLineResponse renglón del formulario de recepción en curso.
type ReceiptLineResponse struct {
	ID               string          `json:"id"`
	MedicineID       string          `json:"medicine_id"`
	ProductCode      string          `json:"product_code"`
	ProductName      string          `json:"product_name"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	ExpectedUnit     string          `json:"expected_unit"`
	ActualQuantity   decimal.Decimal `json:"actual_quantity"`
	ActualUnit       string          `json:"actual_unit"`
	LotNumber        string          `json:"lot_number,omitempty"`
	ExpiryDate       string          `json:"expiry_date,omitempty"` // YYYY-MM-DD
	Notes            string          `json:"notes,omitempty"`
	Status           string          `json:"status"`
}

// ReceiptFormResponse formulario de recepción con sus agregados.
type ReceiptFormResponse struct {
	ID       string                `json:"id"`
	OrderID  string                `json:"order_id"`
	Lines    []ReceiptLineResponse `json:"lines"`
	Totals   TotalsResponse        `json:"totals"`
	OpenedAt time.Time             `json:"opened_at"`
}

// InspectionResponse vista de una inspección registrada.
type InspectionResponse struct {
	ID               string          `json:"id"`
	OrderID          string          `json:"order_id"`
	BatchID          string          `json:"batch_id,omitempty"`
	ActualQuantity   decimal.Decimal `json:"actual_quantity"`
	RejectedQuantity decimal.Decimal `json:"rejected_quantity"`
	NetAccepted      decimal.Decimal `json:"net_accepted"`
	Note             string          `json:"note,omitempty"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// BatchResponse vista de un lote (persistido o preparado localmente).
type BatchResponse struct {
	ID             string `json:"id"`
	MedicineID     string `json:"medicine_id"`
	BatchCode      string `json:"batch_code"`
	ProductionDate string `json:"production_date"` // YYYY-MM-DD
	ExpiryDate     string `json:"expiry_date"`     // YYYY-MM-DD
	SupplierID     string `json:"supplier_id"`
	Temp           bool   `json:"temp"`
}

// PackageResponse vista de un paquete físico.
type PackageResponse struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	BatchID    string          `json:"batch_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	LocationID string          `json:"location_id,omitempty"`
	Reference  string          `json:"reference,omitempty"`
}

// AuditEntryResponse evento de la bitácora de recepción.
type AuditEntryResponse struct {
	ID      string    `json:"id"`
	OrderID string    `json:"order_id"`
	Action  string    `json:"action"`
	Detail  string    `json:"detail"`
	Actor   string    `json:"actor"`
	At      time.Time `json:"at"`
}
