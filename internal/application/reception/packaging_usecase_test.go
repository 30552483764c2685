package reception_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/jhoicas/Recepcion-api/internal/application/reception"
	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/reception"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
)

func newPackagingUC(backend *mockBackend, audit *recordingAudit) *app.PackagingUseCase {
	return app.NewPackagingUseCase(backend, audit, nil, logger.Nop(), app.NewOperationGuard())
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func stageInput() app.StageBatchInput {
	return app.StageBatchInput{
		MedicineID:     "med-1",
		BatchCode:      "L-2026-001",
		ProductionDate: date("2026-01-10"),
		ExpiryDate:     date("2028-01-10"),
		SupplierID:     "prov-1",
	}
}

func TestProposeBatchOptions_UnaPorLoteConNetaComoTope(t *testing.T) {
	backend := newMockBackend(entity.OrderChecked)
	backend.inspections = []entity.Inspection{
		{ID: "i1", OrderID: "ord-1", BatchID: "lote-1",
			ActualQuantity: decimal.NewFromInt(100), RejectedQuantity: decimal.NewFromInt(20)},
		{ID: "i2", OrderID: "ord-1", BatchID: "lote-2",
			ActualQuantity: decimal.NewFromInt(50)},
		{ID: "i3", OrderID: "ord-1", // sin lote: no produce opción
			ActualQuantity: decimal.NewFromInt(10)},
	}
	uc := newPackagingUC(backend, &recordingAudit{})

	options, err := uc.ProposeBatchOptions(context.Background(), "ord-1")

	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "lote-1", options[0].ID)
	assert.True(t, decimal.NewFromInt(80).Equal(options[0].MaxQuantity), "tope = actual − rechazada")
	assert.Equal(t, "lote-2", options[1].ID)
	assert.True(t, decimal.NewFromInt(50).Equal(options[1].MaxQuantity))
}

// Escenario D: vencimiento anterior a producción → ValidationError.
func TestStageBatch_VencimientoAnteriorAProduccion(t *testing.T) {
	uc := newPackagingUC(newMockBackend(entity.OrderChecked), &recordingAudit{})

	in := stageInput()
	in.ExpiryDate = date("2025-01-10")

	_, err := uc.StageBatch("ord-1", in)
	assert.True(t, domain.IsValidation(err))
}

func TestStageBatch_CamposObligatorios(t *testing.T) {
	uc := newPackagingUC(newMockBackend(entity.OrderChecked), &recordingAudit{})

	for name, mutate := range map[string]func(*app.StageBatchInput){
		"sin medicamento": func(in *app.StageBatchInput) { in.MedicineID = "" },
		"sin código":      func(in *app.StageBatchInput) { in.BatchCode = "" },
		"sin proveedor":   func(in *app.StageBatchInput) { in.SupplierID = "" },
		"sin producción":  func(in *app.StageBatchInput) { in.ProductionDate = time.Time{} },
		"sin vencimiento": func(in *app.StageBatchInput) { in.ExpiryDate = time.Time{} },
	} {
		in := stageInput()
		mutate(&in)
		_, err := uc.StageBatch("ord-1", in)
		assert.True(t, domain.IsValidation(err), "caso %q debe fallar con ValidationError", name)
	}
}

// Los lotes preparados reciben ID temporal y quedan locales hasta el commit.
func TestStageBatch_CreacionDiferida(t *testing.T) {
	backend := newMockBackend(entity.OrderChecked)
	uc := newPackagingUC(backend, &recordingAudit{})

	staged, err := uc.StageBatch("ord-1", stageInput())

	require.NoError(t, err)
	assert.True(t, staged.IsTemp(), "el lote preparado debe tener ID temporal")
	assert.Empty(t, backend.batches, "nada persistido antes del commit")
	assert.Len(t, uc.StagedBatches("ord-1"), 1)
}

// Escenario C vía caso de uso: conservación exacta por lote.
func TestCommitPlan_ConservacionExacta(t *testing.T) {
	backend := newMockBackend(entity.OrderChecked)
	backend.inspections = []entity.Inspection{
		{ID: "i1", OrderID: "ord-1", BatchID: "lote-1",
			ActualQuantity: decimal.NewFromInt(100), RejectedQuantity: decimal.NewFromInt(20)},
	}
	uc := newPackagingUC(backend, &recordingAudit{})

	// 30 + 40 = 70 ≠ 80: rechazado sin efectos remotos.
	_, err := uc.CommitPlan(context.Background(), testActor, "ord-1", []reception.PackageRow{
		{ID: "r1", BatchID: "lote-1", Quantity: decimal.NewFromInt(30)},
		{ID: "r2", BatchID: "lote-1", Quantity: decimal.NewFromInt(40)},
	})
	var planErr *domain.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Empty(t, backend.packages)
	assert.Equal(t, entity.OrderChecked, backend.order.Status)

	// 30 + 50 = 80: válido, crea paquetes y avanza a arranged.
	packages, err := uc.CommitPlan(context.Background(), testActor, "ord-1", []reception.PackageRow{
		{ID: "r1", BatchID: "lote-1", Quantity: decimal.NewFromInt(30)},
		{ID: "r2", BatchID: "lote-1", Quantity: decimal.NewFromInt(50)},
	})
	require.NoError(t, err)
	assert.Len(t, packages, 2)
	assert.Equal(t, entity.OrderArranged, backend.order.Status)
}

// El commit resuelve los IDs temporales a reales y reescribe las filas antes
// de crear paquetes.
func TestCommitPlan_ResuelveLotesPreparados(t *testing.T) {
	backend := newMockBackend(entity.OrderChecked)
	audit := &recordingAudit{}
	uc := newPackagingUC(backend, audit)

	staged, err := uc.StageBatch("ord-1", stageInput())
	require.NoError(t, err)

	packages, err := uc.CommitPlan(context.Background(), testActor, "ord-1", []reception.PackageRow{
		{ID: "r1", BatchID: staged.ID, Quantity: decimal.NewFromInt(25)},
	})

	require.NoError(t, err)
	require.Len(t, backend.batches, 1, "el lote preparado debe persistirse en el commit")
	realID := backend.batches[0].ID
	assert.False(t, strings.HasPrefix(realID, entity.TempBatchPrefix))
	require.Len(t, packages, 1)
	assert.Equal(t, realID, packages[0].BatchID, "el paquete debe referenciar el ID real del lote")
	assert.Contains(t, audit.actions(), app.AuditBatchCreated)
	assert.Empty(t, uc.StagedBatches("ord-1"), "el commit limpia los lotes preparados")
}

func TestCommitPlan_EtapaIncorrecta(t *testing.T) {
	backend := newMockBackend(entity.OrderDelivered)
	uc := newPackagingUC(backend, &recordingAudit{})

	_, err := uc.CommitPlan(context.Background(), testActor, "ord-1", []reception.PackageRow{
		{ID: "r1", BatchID: "lote-1", Quantity: decimal.NewFromInt(10)},
	})
	assert.ErrorIs(t, err, domain.ErrStageLocked)
}

// Fallo a mitad del commit: sin rollback automático; lo creado permanece y
// las filas conservan sus IDs para un reintento idempotente.
func TestCommitPlan_FalloParcial_SinRollback(t *testing.T) {
	backend := newMockBackend(entity.OrderChecked)
	backend.inspections = []entity.Inspection{
		{ID: "i1", OrderID: "ord-1", BatchID: "lote-1",
			ActualQuantity: decimal.NewFromInt(80)},
	}
	calls := 0
	backend.CreatePackageFn = func(ctx context.Context, pkg *entity.Package) (*entity.Package, error) {
		calls++
		if calls == 2 {
			return nil, &domain.RemoteError{Status: 500, Message: "fallo interno"}
		}
		created := *pkg
		created.ID = "paq-1"
		backend.packages = append(backend.packages, created)
		return &created, nil
	}
	uc := newPackagingUC(backend, &recordingAudit{})

	rows := []reception.PackageRow{
		{ID: "r1", BatchID: "lote-1", Quantity: decimal.NewFromInt(30)},
		{ID: "r2", BatchID: "lote-1", Quantity: decimal.NewFromInt(50)},
	}
	_, err := uc.CommitPlan(context.Background(), testActor, "ord-1", rows)

	assert.True(t, domain.IsRemote(err))
	assert.Len(t, backend.packages, 1, "el primer paquete creado permanece")
	assert.Equal(t, entity.OrderChecked, backend.order.Status, "la orden no avanza si el commit quedó a medias")
	assert.Equal(t, "r1", backend.packages[0].Reference, "la referencia estable de la fila viaja al backend")
}

// Doble click en commit: la segunda invocación concurrente se rechaza.
func TestCommitPlan_GuardaDeOperacionEnVuelo(t *testing.T) {
	backend := newMockBackend(entity.OrderChecked)
	backend.inspections = []entity.Inspection{
		{ID: "i1", OrderID: "ord-1", BatchID: "lote-1", ActualQuantity: decimal.NewFromInt(80)},
	}
	inFlight := make(chan struct{})
	proceed := make(chan struct{})
	backend.CreatePackageFn = func(_ context.Context, pkg *entity.Package) (*entity.Package, error) {
		close(inFlight)
		<-proceed
		created := *pkg
		created.ID = "paq-1"
		backend.packages = append(backend.packages, created)
		return &created, nil
	}
	uc := newPackagingUC(backend, &recordingAudit{})

	rows := []reception.PackageRow{{ID: "r1", BatchID: "lote-1", Quantity: decimal.NewFromInt(80)}}
	done := make(chan error, 1)
	go func() {
		_, err := uc.CommitPlan(context.Background(), testActor, "ord-1", rows)
		done <- err
	}()

	<-inFlight
	_, err := uc.CommitPlan(context.Background(), testActor, "ord-1", rows)
	assert.ErrorIs(t, err, domain.ErrOperationInProgress)

	close(proceed)
	require.NoError(t, <-done)
}

func TestValidatePlan_PropagaFalloRemoto(t *testing.T) {
	backend := newMockBackend(entity.OrderChecked)
	backend.ListInspectionsFn = func(context.Context, string) ([]entity.Inspection, error) {
		return nil, &domain.RemoteError{Status: 503, Message: "no disponible"}
	}
	uc := newPackagingUC(backend, &recordingAudit{})

	_, err := uc.ValidatePlan(context.Background(), "ord-1", nil)
	assert.True(t, domain.IsRemote(err))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
}
