package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de importación. Secuencia lineal sin retrocesos:
// approved → delivered → checked → arranged → completed.
// rejected y cancelled se fijan fuera de este flujo (recuperación).
type OrderStatus string

const (
	OrderApproved  OrderStatus = "approved"  // aprobada, pendiente de llegada física
	OrderDelivered OrderStatus = "delivered" // mercancía llegó; inspección activa
	OrderChecked   OrderStatus = "checked"   // inspección cerrada; empaque activo
	OrderArranged  OrderStatus = "arranged"  // paquetes creados; ubicación activa
	OrderCompleted OrderStatus = "completed" // todos los paquetes ubicados
	OrderRejected  OrderStatus = "rejected"
	OrderCancelled OrderStatus = "cancelled"
)

// Order orden de compra de importación. La posee el servicio de gestión de
// órdenes; este núcleo solo la lee y solicita cambios de estado.
type Order struct {
	ID         string
	ContractID string
	SupplierID string
	Status     OrderStatus
	Details    []OrderDetail
	CreatedAt  time.Time
}

// OrderDetail renglón de la orden: medicamento, cantidad pedida y precio unitario.
type OrderDetail struct {
	MedicineID   string
	MedicineCode string
	MedicineName string
	Quantity     decimal.Decimal
	Unit         string
	UnitPrice    decimal.Decimal
}
