package reception

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/reception"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
)

// PackagingUseCase convierte inspecciones en paquetes físicos discretos.
// Los lotes nuevos se preparan localmente con un ID temporal (creación
// diferida) y CommitPlan los resuelve a IDs reales antes de crear paquetes.
//
// CommitPlan es una operación lógica única SIN rollback automático: si la
// creación de paquetes falla a mitad, los lotes y paquetes ya creados
// permanecen en el backend. El reintento es seguro porque cada fila conserva
// su ID estable, enviado como referencia de idempotencia.
type PackagingUseCase struct {
	orders OrderService
	audit  AuditTrail
	notify Notifier
	log    *logger.Logger
	guard  *OperationGuard

	mu     sync.Mutex
	staged map[string][]entity.Batch // lotes preparados por orden
}

// NewPackagingUseCase construye el caso de uso. guard es la guarda de
// operación compartida con el resto de los casos de uso de recepción.
func NewPackagingUseCase(orders OrderService, audit AuditTrail, notify Notifier, log *logger.Logger, guard *OperationGuard) *PackagingUseCase {
	if notify == nil {
		notify = NopNotifier
	}
	return &PackagingUseCase{
		orders: orders,
		audit:  audit,
		notify: notify,
		log:    log,
		guard:  guard,
		staged: make(map[string][]entity.Batch),
	}
}

// BatchOption opción de lote para las filas del plan: una por lote distinto
// referenciado por alguna inspección, con su cantidad neta aceptada como tope.
type BatchOption struct {
	ID          string
	Label       string
	MaxQuantity decimal.Decimal
}

// ProposeBatchOptions deriva las opciones de lote de las inspecciones de la
// orden, más los lotes nuevos preparados localmente.
func (uc *PackagingUseCase) ProposeBatchOptions(ctx context.Context, orderID string) ([]BatchOption, error) {
	inspections, err := uc.orders.ListInspections(ctx, orderID)
	if err != nil {
		return nil, err
	}

	net := make(map[string]decimal.Decimal)
	for _, insp := range inspections {
		if !insp.HasBatch() {
			continue
		}
		net[insp.BatchID] = net[insp.BatchID].Add(insp.NetAccepted())
	}

	options := make([]BatchOption, 0, len(net))
	for batchID, max := range net {
		options = append(options, BatchOption{
			ID:          batchID,
			Label:       "Lote " + batchID,
			MaxQuantity: max,
		})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].ID < options[j].ID })

	uc.mu.Lock()
	for _, b := range uc.staged[orderID] {
		options = append(options, BatchOption{
			ID:    b.ID,
			Label: "Lote nuevo " + b.BatchCode,
			// Sin inspección asociada no hay tope de conservación.
		})
	}
	uc.mu.Unlock()

	return options, nil
}

// StageBatchInput lote nuevo a preparar localmente.
type StageBatchInput struct {
	MedicineID     string
	BatchCode      string
	ProductionDate time.Time
	ExpiryDate     time.Time
	SupplierID     string
}

// StageBatch valida y prepara un lote nuevo con ID temporal. No llama a la
// red: el lote se persiste recién al comprometer el plan, lo que permite
// referenciarlo en filas de paquete antes de existir.
func (uc *PackagingUseCase) StageBatch(orderID string, in StageBatchInput) (*entity.Batch, error) {
	switch {
	case in.MedicineID == "":
		return nil, domain.NewValidation("medicine_id", "el medicamento es obligatorio")
	case in.BatchCode == "":
		return nil, domain.NewValidation("batch_code", "el código de lote es obligatorio")
	case in.SupplierID == "":
		return nil, domain.NewValidation("supplier_id", "el proveedor es obligatorio")
	case in.ProductionDate.IsZero():
		return nil, domain.NewValidation("production_date", "la fecha de producción es obligatoria")
	case in.ExpiryDate.IsZero():
		return nil, domain.NewValidation("expiry_date", "la fecha de vencimiento es obligatoria")
	case in.ExpiryDate.Before(in.ProductionDate):
		return nil, domain.NewValidation("expiry_date", "el vencimiento no puede ser anterior a la producción")
	}

	batch := entity.Batch{
		ID:             entity.TempBatchPrefix + uuid.New().String(),
		MedicineID:     in.MedicineID,
		BatchCode:      in.BatchCode,
		ProductionDate: in.ProductionDate,
		ExpiryDate:     in.ExpiryDate,
		SupplierID:     in.SupplierID,
	}

	uc.mu.Lock()
	uc.staged[orderID] = append(uc.staged[orderID], batch)
	uc.mu.Unlock()

	return &batch, nil
}

// StagedBatches lotes preparados y aún no persistidos para una orden.
func (uc *PackagingUseCase) StagedBatches(orderID string) []entity.Batch {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]entity.Batch, len(uc.staged[orderID]))
	copy(out, uc.staged[orderID])
	return out
}

// ValidatePlan valida el plan contra las inspecciones de la orden. Devuelve
// un resultado, no un error: un plan inválido solo deshabilita el commit.
func (uc *PackagingUseCase) ValidatePlan(ctx context.Context, orderID string, rows []reception.PackageRow) (reception.PlanValidation, error) {
	inspections, err := uc.orders.ListInspections(ctx, orderID)
	if err != nil {
		return reception.PlanValidation{}, err
	}
	return reception.ValidatePlan(rows, inspections), nil
}

// CommitPlan compromete el plan como operación lógica única:
//
//  1. valida etapa (checked) y conservación;
//  2. persiste los lotes preparados, resolviendo IDs temporales a reales y
//     reescribiendo las filas que los referencian;
//  3. persiste un paquete por fila (con la fila como referencia estable);
//  4. solicita el avance de la orden a arranged.
//
// Protegido contra envíos duplicados con la marca de operación en vuelo.
func (uc *PackagingUseCase) CommitPlan(ctx context.Context, actor Actor, orderID string, rows []reception.PackageRow) ([]entity.Package, error) {
	if !uc.guard.Acquire(orderID) {
		return nil, domain.ErrOperationInProgress
	}
	defer uc.guard.Release(orderID)

	order, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderChecked {
		return nil, domain.ErrStageLocked
	}

	inspections, err := uc.orders.ListInspections(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if v := reception.ValidatePlan(rows, inspections); !v.Valid {
		return nil, &domain.PlanError{Problems: v.Problems}
	}

	// Asegurar IDs estables de fila antes de tocar el backend.
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = uuid.New().String()
		}
	}

	resolved, err := uc.persistStagedBatches(ctx, actor, orderID, rows)
	if err != nil {
		uc.notify("error", "no se pudieron crear los lotes nuevos")
		return nil, err
	}
	for i := range rows {
		if realID, ok := resolved[rows[i].BatchID]; ok {
			rows[i].BatchID = realID
		}
	}

	packages := make([]entity.Package, 0, len(rows))
	for _, row := range rows {
		created, err := uc.orders.CreatePackage(ctx, &entity.Package{
			OrderID:   orderID,
			BatchID:   row.BatchID,
			Quantity:  row.Quantity,
			Reference: row.ID,
		})
		if err != nil {
			// Sin rollback: lotes y paquetes ya creados permanecen. El
			// reintento reenvía las mismas filas con las mismas referencias.
			uc.notify("error", "falló la creación de paquetes; el plan puede reintentarse")
			return nil, err
		}
		packages = append(packages, *created)
		uc.recordAudit(ctx, actor, orderID, AuditPackageCreated,
			fmt.Sprintf("paquete %s: lote %s, cantidad %s", created.ID, created.BatchID, created.Quantity.String()))
	}

	if err := uc.orders.UpdateOrderStatus(ctx, orderID, entity.OrderArranged); err != nil {
		uc.notify("error", "los paquetes se crearon pero la orden no avanzó de etapa; reintente")
		return packages, err
	}
	uc.recordAudit(ctx, actor, orderID, AuditStageChanged,
		fmt.Sprintf("%s -> %s", entity.OrderChecked, entity.OrderArranged))

	uc.mu.Lock()
	delete(uc.staged, orderID)
	uc.mu.Unlock()

	uc.log.Info().
		Str("order_id", orderID).
		Int("packages", len(packages)).
		Str("user", actor.UserID).
		Msg("plan de empaque comprometido")
	return packages, nil
}

// persistStagedBatches crea en el backend los lotes preparados que el plan
// referencia y devuelve el mapa ID temporal → ID real.
func (uc *PackagingUseCase) persistStagedBatches(ctx context.Context, actor Actor, orderID string, rows []reception.PackageRow) (map[string]string, error) {
	referenced := make(map[string]bool)
	for _, row := range rows {
		referenced[row.BatchID] = true
	}

	uc.mu.Lock()
	staged := make([]entity.Batch, len(uc.staged[orderID]))
	copy(staged, uc.staged[orderID])
	uc.mu.Unlock()

	resolved := make(map[string]string)
	for _, batch := range staged {
		if !referenced[batch.ID] {
			continue
		}
		tempID := batch.ID
		batch.ID = ""
		created, err := uc.orders.CreateBatch(ctx, &batch)
		if err != nil {
			return nil, err
		}
		resolved[tempID] = created.ID
		uc.recordAudit(ctx, actor, orderID, AuditBatchCreated,
			fmt.Sprintf("lote %s (código %s)", created.ID, created.BatchCode))
	}
	return resolved, nil
}

func (uc *PackagingUseCase) recordAudit(ctx context.Context, actor Actor, orderID, action, detail string) {
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
