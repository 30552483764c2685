package reception

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/reception"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
)

// StageUseCase controla el trinquete de etapas de la orden. Toda transición
// se solicita primero al backend y solo se refleja localmente cuando la
// llamada remota tiene éxito; ante un fallo la orden queda en su última etapa
// confirmada y el operador puede reintentar.
type StageUseCase struct {
	orders OrderService
	audit  AuditTrail
	notify Notifier
	log    *logger.Logger
	guard  *OperationGuard
}

// NewStageUseCase construye el caso de uso. guard es la guarda de operación
// compartida con el resto de los casos de uso de recepción.
func NewStageUseCase(orders OrderService, audit AuditTrail, notify Notifier, log *logger.Logger, guard *OperationGuard) *StageUseCase {
	if notify == nil {
		notify = NopNotifier
	}
	return &StageUseCase{
		orders: orders,
		audit:  audit,
		notify: notify,
		log:    log,
		guard:  guard,
	}
}

// MarkArrived el operador marca la llegada física: approved → delivered.
func (uc *StageUseCase) MarkArrived(ctx context.Context, actor Actor, orderID string) (*entity.Order, error) {
	return uc.advance(ctx, actor, orderID, entity.OrderDelivered, nil)
}

// FinishInspection el operador cierra la inspección: delivered → checked.
// Una lista de inspecciones vacía está permitida; solo se advierte.
func (uc *StageUseCase) FinishInspection(ctx context.Context, actor Actor, orderID string) (*entity.Order, error) {
	return uc.advance(ctx, actor, orderID, entity.OrderChecked, func(ctx context.Context, order *entity.Order) error {
		inspections, err := uc.orders.ListInspections(ctx, orderID)
		if err != nil {
			return err
		}
		if len(inspections) == 0 {
			uc.notify("warn", "la orden se marca como inspeccionada sin registros de inspección")
		}
		return nil
	})
}

// Finalize cierre de la orden: arranged → completed. Solo procede cuando
// todos los paquetes tienen ubicación asignada.
func (uc *StageUseCase) Finalize(ctx context.Context, actor Actor, orderID string) (*entity.Order, error) {
	return uc.advance(ctx, actor, orderID, entity.OrderCompleted, func(ctx context.Context, order *entity.Order) error {
		packages, err := uc.orders.ListPackages(ctx, orderID)
		if err != nil {
			return err
		}
		if !reception.FullyPutAway(packages) {
			return domain.NewValidation("packages", "hay paquetes sin ubicación asignada")
		}
		return nil
	})
}

// PanelStates devuelve las compuertas de los tres paneles para la orden.
func (uc *StageUseCase) PanelStates(ctx context.Context, orderID string) (*entity.Order, reception.PanelStates, error) {
	order, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, reception.PanelStates{}, err
	}
	return order, reception.Panels(order.Status), nil
}

// advance valida la transición contra la tabla, ejecuta la precondición y
// pide el cambio de estado al backend. precheck puede ser nil.
func (uc *StageUseCase) advance(
	ctx context.Context,
	actor Actor,
	orderID string,
	to entity.OrderStatus,
	precheck func(context.Context, *entity.Order) error,
) (*entity.Order, error) {
	if !uc.guard.Acquire(orderID) {
		return nil, domain.ErrOperationInProgress
	}
	defer uc.guard.Release(orderID)

	order, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := reception.Transition(order.Status, to); err != nil {
		return nil, err
	}
	if precheck != nil {
		if err := precheck(ctx, order); err != nil {
			return nil, err
		}
	}

	if err := uc.orders.UpdateOrderStatus(ctx, orderID, to); err != nil {
		uc.notify("error", fmt.Sprintf("no se pudo avanzar la orden a %s", to))
		return nil, err
	}

	from := order.Status
	order.Status = to
	uc.recordAudit(ctx, actor, orderID, AuditStageChanged, fmt.Sprintf("%s -> %s", from, to))
	uc.log.Info().
		Str("order_id", orderID).
		Str("from", string(from)).
		Str("to", string(to)).
		Str("user", actor.UserID).
		Msg("etapa de la orden avanzada")
	return order, nil
}

// recordAudit registra en la bitácora sin propagar fallos: la operación ya
// fue confirmada por el backend.
func (uc *StageUseCase) recordAudit(ctx context.Context, actor Actor, orderID, action, detail string) {
	e := AuditEntry{
		ID:      uuid.New().String(),
		OrderID: orderID,
		Action:  action,
		Detail:  detail,
		Actor:   actor.UserID,
		At:      time.Now(),
	}
	if err := uc.audit.Record(ctx, e); err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo registrar en bitácora")
	}
}
