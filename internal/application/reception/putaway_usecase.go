package reception

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/reception"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
)

// PutAwayUseCase sigue la asignación de ubicaciones de los paquetes de una
// orden. La asignación la hace otro sistema; aquí solo se consulta la vista,
// se retira una asignación (única retracción soportada) y se evalúa la
// compuerta de cierre.
type PutAwayUseCase struct {
	orders OrderService
	audit  AuditTrail
	notify Notifier
	log    *logger.Logger
	guard  *OperationGuard
}

// NewPutAwayUseCase construye el caso de uso. guard es la guarda de operación
// compartida con el resto de los casos de uso de recepción.
func NewPutAwayUseCase(orders OrderService, audit AuditTrail, notify Notifier, log *logger.Logger, guard *OperationGuard) *PutAwayUseCase {
	if notify == nil {
		notify = NopNotifier
	}
	return &PutAwayUseCase{orders: orders, audit: audit, notify: notify, log: log, guard: guard}
}

// ListPackages vista de los paquetes de la orden con su ubicación.
func (uc *PutAwayUseCase) ListPackages(ctx context.Context, orderID string) ([]entity.Package, error) {
	return uc.orders.ListPackages(ctx, orderID)
}

// ClearLocation retira la asignación de ubicación de un paquete. Solo muta la
// ubicación, nunca la cantidad, y solo mientras el panel está activo
// (orden en arranged).
func (uc *PutAwayUseCase) ClearLocation(ctx context.Context, actor Actor, orderID, packageID string) error {
	if !uc.guard.Acquire(orderID) {
		return domain.ErrOperationInProgress
	}
	defer uc.guard.Release(orderID)

	order, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != entity.OrderArranged {
		return domain.ErrStageLocked
	}
	if err := uc.orders.ClearPackageLocation(ctx, packageID); err != nil {
		uc.notify("error", "no se pudo retirar la ubicación del paquete")
		return err
	}

	e := AuditEntry{
		ID:      uuid.New().String(),
		OrderID: orderID,
		Action:  AuditLocationCleared,
		Detail:  "paquete " + packageID,
		Actor:   actor.UserID,
		At:      time.Now(),
	}
	if err := uc.audit.Record(ctx, e); err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo registrar en bitácora")
	}
	return nil
}

// IsFullyPutAway compuerta de cierre: toda la vista de paquetes de la orden
// tiene ubicación asignada.
func (uc *PutAwayUseCase) IsFullyPutAway(ctx context.Context, orderID string) (bool, error) {
	packages, err := uc.orders.ListPackages(ctx, orderID)
	if err != nil {
		return false, err
	}
	return reception.FullyPutAway(packages), nil
}
