package reception

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// OrderService puerto de salida hacia el servicio externo de gestión de
// órdenes / inspecciones / empaque. La implementación concreta es un cliente
// REST; para tests se inyecta un mock. Autenticación, reintentos y
// persistencia son responsabilidad del backend.
type OrderService interface {
	GetOrder(ctx context.Context, id string) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) error

	ListInspections(ctx context.Context, orderID string) ([]entity.Inspection, error)
	CreateInspection(ctx context.Context, insp *entity.Inspection) (*entity.Inspection, error)
	DeleteInspection(ctx context.Context, id string) error

	CreateBatch(ctx context.Context, batch *entity.Batch) (*entity.Batch, error)

	CreatePackage(ctx context.Context, pkg *entity.Package) (*entity.Package, error)
	ListPackages(ctx context.Context, orderID string) ([]entity.Package, error)
	ClearPackageLocation(ctx context.Context, packageID string) error
}

// Actor usuario que ejecuta la operación. Se pasa explícitamente a cada caso
// de uso en lugar de leerse de estado ambiente, para mantener el núcleo
// independiente del framework.
type Actor struct {
	UserID string
	Name   string
	Role   string
}

// Notifier callback explícito de notificación al operador (en lugar de un
// sistema de alertas ambiente). level: "info" | "warn" | "error".
type Notifier func(level, message string)

// NopNotifier descarta las notificaciones.
func NopNotifier(string, string) {}

// AuditEntry evento confirmado del flujo de recepción para la bitácora local.
type AuditEntry struct {
	ID      string
	OrderID string
	Action  string
	Detail  string
	Actor   string
	At      time.Time
}

// Acciones registradas en la bitácora.
const (
	AuditStageChanged      = "stage_changed"
	AuditInspectionCreated = "inspection_created"
	AuditInspectionDeleted = "inspection_deleted"
	AuditBatchCreated      = "batch_created"
	AuditPackageCreated    = "package_created"
	AuditLocationCleared   = "location_cleared"
)

// AuditTrail puerto de la bitácora de recepción. Los casos de uso registran
// solo mutaciones confirmadas por el backend; un fallo de bitácora no debe
// revertir la operación.
type AuditTrail interface {
	Record(ctx context.Context, e AuditEntry) error
	ListByOrder(ctx context.Context, orderID string) ([]AuditEntry, error)
}

// NopAudit bitácora nula para correr sin base de datos local.
type NopAudit struct{}

func (NopAudit) Record(context.Context, AuditEntry) error { return nil }
func (NopAudit) ListByOrder(context.Context, string) ([]AuditEntry, error) {
	return nil, nil
}

// RemisionLine renglón de una remisión electrónica del proveedor, ya
// parseada. El importador del formulario la cruza contra los renglones
// esperados por código o por nombre normalizado.
type RemisionLine struct {
	ProductCode string
	ProductName string
	Quantity    decimal.Decimal
	Unit        string
	LotNumber   string
	ExpiryDate  *time.Time
}
