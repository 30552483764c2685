package reception

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Recepcion-api/internal/application/dto"
	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/reception"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
)

// ReceiptForm formulario de recepción en curso. Vive solo en memoria: se
// siembra al abrirlo, se muta con cada edición y se descarta al enviarlo o
// cancelarlo. Nunca se persiste directamente.
type ReceiptForm struct {
	ID       string
	OrderID  string
	Lines    []entity.ReceiptLine
	Totals   reception.Totals
	OpenedAt time.Time
}

// ReceiptUseCase ciclo de vida del formulario de recepción: abrir sembrado
// desde la orden, editar renglones, importar una remisión electrónica,
// recomputar agregados y enviar (crear la inspección con los agregados).
type ReceiptUseCase struct {
	orders      OrderService
	inspections *InspectionUseCase
	reconciler  *reception.Reconciler
	notify      Notifier
	log         *logger.Logger
	guard       *OperationGuard

	mu    sync.Mutex
	forms map[string]*receiptState
}

type receiptState struct {
	form *ReceiptForm
	agg  *reception.Aggregator
}

// NewReceiptUseCase construye el caso de uso. notify recibe un aviso "info"
// cada vez que los agregados del formulario cambian. guard es la guarda de
// operación compartida con el resto de los casos de uso de recepción.
func NewReceiptUseCase(
	orders OrderService,
	inspections *InspectionUseCase,
	reconciler *reception.Reconciler,
	notify Notifier,
	log *logger.Logger,
	guard *OperationGuard,
) *ReceiptUseCase {
	if notify == nil {
		notify = NopNotifier
	}
	return &ReceiptUseCase{
		orders:      orders,
		inspections: inspections,
		reconciler:  reconciler,
		notify:      notify,
		log:         log,
		guard:       guard,
		forms:       make(map[string]*receiptState),
	}
}

// Open abre un formulario sembrado desde los renglones de la orden. La orden
// debe estar en la etapa de inspección (delivered).
func (uc *ReceiptUseCase) Open(ctx context.Context, orderID string) (*ReceiptForm, error) {
	order, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !reception.InspectionMutable(order.Status) {
		return nil, domain.ErrStageLocked
	}

	form := &ReceiptForm{
		ID:       uuid.New().String(),
		OrderID:  orderID,
		OpenedAt: time.Now(),
	}
	for _, d := range order.Details {
		form.Lines = append(form.Lines, entity.ReceiptLine{
			ID:               uuid.New().String(),
			MedicineID:       d.MedicineID,
			ProductCode:      d.MedicineCode,
			ProductName:      d.MedicineName,
			ExpectedQuantity: d.Quantity,
			ExpectedUnit:     d.Unit,
			ActualQuantity:   decimal.Zero,
			ActualUnit:       d.Unit,
			UnitPrice:        d.UnitPrice,
			Status:           entity.LinePending,
		})
	}

	notify := uc.notify
	st := &receiptState{form: form}
	st.agg = reception.NewAggregator(uc.reconciler, func(t reception.Totals) {
		notify("info", "agregados del formulario actualizados")
	})
	uc.recompute(st)

	uc.mu.Lock()
	uc.forms[form.ID] = st
	uc.mu.Unlock()

	return uc.snapshot(st), nil
}

// Get devuelve una copia del formulario.
func (uc *ReceiptUseCase) Get(formID string) (*ReceiptForm, error) {
	uc.mu.Lock()
	st, ok := uc.forms[formID]
	uc.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.snapshot(st), nil
}

// UpdateLine aplica una edición parcial a un renglón y recomputa estado y
// agregados.
func (uc *ReceiptUseCase) UpdateLine(formID, lineID string, patch dto.ReceiptLinePatch) (*ReceiptForm, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	st, ok := uc.forms[formID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	var line *entity.ReceiptLine
	for i := range st.form.Lines {
		if st.form.Lines[i].ID == lineID {
			line = &st.form.Lines[i]
			break
		}
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}

	if patch.ActualQuantity != nil {
		if patch.ActualQuantity.IsNegative() {
			return nil, domain.NewValidation("actual_quantity", "la cantidad recibida no puede ser negativa")
		}
		line.ActualQuantity = *patch.ActualQuantity
	}
	if patch.ActualUnit != nil {
		line.ActualUnit = *patch.ActualUnit
	}
	if patch.LotNumber != nil {
		line.LotNumber = *patch.LotNumber
	}
	if patch.ExpiryDate != nil {
		if *patch.ExpiryDate == "" {
			line.ExpiryDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *patch.ExpiryDate)
			if err != nil {
				return nil, domain.NewValidation("expiry_date", "fecha inválida, formato esperado YYYY-MM-DD")
			}
			line.ExpiryDate = &d
		}
	}
	if patch.Notes != nil {
		line.Notes = *patch.Notes
	}

	uc.recompute(st)
	return uc.snapshot(st), nil
}

// ImportRemision cruza los renglones de una remisión electrónica del
// proveedor contra el formulario: por código de producto o, en su defecto,
// por nombre normalizado (sin tildes, sin mayúsculas). Devuelve cuántos
// renglones se sembraron.
func (uc *ReceiptUseCase) ImportRemision(formID string, lines []RemisionLine) (*ReceiptForm, int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	st, ok := uc.forms[formID]
	if !ok {
		return nil, 0, domain.ErrNotFound
	}

	byCode := make(map[string]*entity.ReceiptLine)
	byName := make(map[string]*entity.ReceiptLine)
	for i := range st.form.Lines {
		l := &st.form.Lines[i]
		if l.ProductCode != "" {
			byCode[l.ProductCode] = l
		}
		byName[normalizeName(l.ProductName)] = l
	}

	matched := 0
	for _, rl := range lines {
		target := byCode[rl.ProductCode]
		if target == nil {
			target = byName[normalizeName(rl.ProductName)]
		}
		if target == nil {
			uc.log.Warn().
				Str("product_code", rl.ProductCode).
				Str("product_name", rl.ProductName).
				Msg("renglón de remisión sin correspondencia en la orden")
			continue
		}
		target.ActualQuantity = rl.Quantity
		if rl.Unit != "" {
			target.ActualUnit = rl.Unit
		}
		if rl.LotNumber != "" {
			target.LotNumber = rl.LotNumber
		}
		if rl.ExpiryDate != nil {
			target.ExpiryDate = rl.ExpiryDate
		}
		matched++
	}

	uc.recompute(st)
	return uc.snapshot(st), matched, nil
}

// Totals agregados actuales del formulario.
func (uc *ReceiptUseCase) Totals(formID string) (reception.Totals, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	st, ok := uc.forms[formID]
	if !ok {
		return reception.Totals{}, domain.ErrNotFound
	}
	return st.form.Totals, nil
}

// Submit envía el formulario: crea la inspección con los agregados derivados
// (recibido total como cantidad actual) y descarta el formulario. El estado
// local solo se descarta cuando el backend confirma la creación. La guarda de
// operación se retiene hasta descartar el formulario, así un segundo envío
// concurrente del mismo formulario recibe ErrOperationInProgress y uno
// posterior ErrNotFound.
func (uc *ReceiptUseCase) Submit(ctx context.Context, actor Actor, formID string, req dto.SubmitReceiptRequest) (*entity.Inspection, error) {
	uc.mu.Lock()
	st, ok := uc.forms[formID]
	uc.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	if !uc.guard.Acquire(st.form.OrderID) {
		return nil, domain.ErrOperationInProgress
	}
	defer uc.guard.Release(st.form.OrderID)

	// Reverificar bajo la guarda: otro envío pudo descartar el formulario
	// antes de que esta reserva procediera.
	uc.mu.Lock()
	if _, ok := uc.forms[formID]; !ok {
		uc.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	uc.mu.Unlock()

	created, err := uc.inspections.create(ctx, actor, CreateInspectionInput{
		OrderID:          st.form.OrderID,
		BatchID:          req.BatchID,
		ActualQuantity:   st.form.Totals.TotalReceived,
		RejectedQuantity: req.RejectedQuantity,
		Note:             req.Note,
	})
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	delete(uc.forms, formID)
	uc.mu.Unlock()

	uc.log.Info().
		Str("order_id", st.form.OrderID).
		Str("inspection_id", created.ID).
		Msg("formulario de recepción enviado")
	return created, nil
}

// Discard descarta el formulario sin enviar nada.
func (uc *ReceiptUseCase) Discard(formID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.forms[formID]; !ok {
		return domain.ErrNotFound
	}
	delete(uc.forms, formID)
	return nil
}

// recompute reconcilia cada renglón y recalcula los agregados. El agregador
// solo notifica cuando algún agregado cambió.
func (uc *ReceiptUseCase) recompute(st *receiptState) {
	for i := range st.form.Lines {
		rec := uc.reconciler.Reconcile(st.form.Lines[i])
		st.form.Lines[i].Status = rec.Status
	}
	st.form.Totals = st.agg.Recompute(st.form.Lines)
}

// snapshot copia defensiva del formulario para los llamadores.
func (uc *ReceiptUseCase) snapshot(st *receiptState) *ReceiptForm {
	out := *st.form
	out.Lines = make([]entity.ReceiptLine, len(st.form.Lines))
	copy(out.Lines, st.form.Lines)
	return &out
}

// normalizeName colapsa un nombre de producto para cruce tolerante:
// minúsculas, sin marcas diacríticas y sin espacios repetidos.
func normalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	return strings.Join(strings.Fields(strings.ToLower(plain)), " ")
}
