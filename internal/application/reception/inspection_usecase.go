package reception

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/reception"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
)

// InspectionUseCase administra los registros de inspección de calidad de una
// orden contra el backend. Altas y bajas solo proceden mientras la orden está
// en la etapa delivered; después los registros son inmutables.
type InspectionUseCase struct {
	orders OrderService
	audit  AuditTrail
	notify Notifier
	log    *logger.Logger
	guard  *OperationGuard
}

// NewInspectionUseCase construye el caso de uso. guard es la guarda de
// operación compartida con el resto de los casos de uso de recepción.
func NewInspectionUseCase(orders OrderService, audit AuditTrail, notify Notifier, log *logger.Logger, guard *OperationGuard) *InspectionUseCase {
	if notify == nil {
		notify = NopNotifier
	}
	return &InspectionUseCase{orders: orders, audit: audit, notify: notify, log: log, guard: guard}
}

// CreateInspectionInput entrada para registrar una inspección.
type CreateInspectionInput struct {
	OrderID          string
	BatchID          string // vacío = sin lote
	ActualQuantity   decimal.Decimal
	RejectedQuantity decimal.Decimal
	Note             string
}

// Create valida localmente (antes de cualquier llamada de red), verifica la
// compuerta de etapa y persiste la inspección vía el backend. La guarda de
// operación excluye un segundo registro concurrente sobre la misma orden.
func (uc *InspectionUseCase) Create(ctx context.Context, actor Actor, in CreateInspectionInput) (*entity.Inspection, error) {
	if in.OrderID == "" {
		return nil, domain.NewValidation("order_id", "la orden es obligatoria")
	}
	if !uc.guard.Acquire(in.OrderID) {
		return nil, domain.ErrOperationInProgress
	}
	defer uc.guard.Release(in.OrderID)
	return uc.create(ctx, actor, in)
}

// create núcleo de Create sin guarda, para llamadores que ya reservaron la
// orden (el envío del formulario de recepción).
func (uc *InspectionUseCase) create(ctx context.Context, actor Actor, in CreateInspectionInput) (*entity.Inspection, error) {
	if in.OrderID == "" {
		return nil, domain.NewValidation("order_id", "la orden es obligatoria")
	}
	if in.ActualQuantity.IsNegative() {
		return nil, domain.NewValidation("actual_quantity", "la cantidad recibida no puede ser negativa")
	}
	if in.RejectedQuantity.IsNegative() {
		return nil, domain.NewValidation("rejected_quantity", "la cantidad rechazada no puede ser negativa")
	}

	order, err := uc.orders.GetOrder(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if !reception.InspectionMutable(order.Status) {
		return nil, domain.ErrStageLocked
	}

	insp := &entity.Inspection{
		OrderID:          in.OrderID,
		BatchID:          in.BatchID,
		ActualQuantity:   in.ActualQuantity,
		RejectedQuantity: in.RejectedQuantity,
		Note:             in.Note,
		CreatedBy:        actor.UserID,
		CreatedAt:        time.Now(),
	}
	created, err := uc.orders.CreateInspection(ctx, insp)
	if err != nil {
		uc.notify("error", "no se pudo registrar la inspección")
		return nil, err
	}

	uc.recordAudit(ctx, actor, in.OrderID, AuditInspectionCreated,
		fmt.Sprintf("inspección %s: actual %s, rechazada %s",
			created.ID, created.ActualQuantity.String(), created.RejectedQuantity.String()))
	return created, nil
}

// List lista las inspecciones de una orden (lectura, sin compuerta).
func (uc *InspectionUseCase) List(ctx context.Context, orderID string) ([]entity.Inspection, error) {
	return uc.orders.ListInspections(ctx, orderID)
}

// Delete elimina una inspección. Permitido solo mientras la orden sigue en la
// etapa de inspección: pasado delivered, el panel queda bloqueado.
func (uc *InspectionUseCase) Delete(ctx context.Context, actor Actor, orderID, inspectionID string) error {
	if !uc.guard.Acquire(orderID) {
		return domain.ErrOperationInProgress
	}
	defer uc.guard.Release(orderID)

	order, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !reception.InspectionMutable(order.Status) {
		return domain.ErrStageLocked
	}
	if err := uc.orders.DeleteInspection(ctx, inspectionID); err != nil {
		uc.notify("error", "no se pudo eliminar la inspección")
		return err
	}
	uc.recordAudit(ctx, actor, orderID, AuditInspectionDeleted, "inspección "+inspectionID)
	return nil
}

func (uc *InspectionUseCase) recordAudit(ctx context.Context, actor Actor, orderID, action, detail string) {
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
