package reception_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/jhoicas/Recepcion-api/internal/application/reception"
	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
)

func newInspectionUC(backend *mockBackend, audit *recordingAudit) *app.InspectionUseCase {
	return app.NewInspectionUseCase(backend, audit, nil, logger.Nop(), app.NewOperationGuard())
}

func TestCreateInspection_RegistraYAudita(t *testing.T) {
	backend := newMockBackend(entity.OrderDelivered)
	audit := &recordingAudit{}
	uc := newInspectionUC(backend, audit)

	created, err := uc.Create(context.Background(), testActor, app.CreateInspectionInput{
		OrderID:          "ord-1",
		BatchID:          "lote-1",
		ActualQuantity:   decimal.NewFromInt(100),
		RejectedQuantity: decimal.NewFromInt(20),
		Note:             "caja húmeda",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, testActor.UserID, created.CreatedBy)
	assert.True(t, decimal.NewFromInt(80).Equal(created.NetAccepted()))
	assert.Contains(t, audit.actions(), app.AuditInspectionCreated)
}

// Las cantidades negativas fallan con error de validación local, antes de
// cualquier llamada de red.
func TestCreateInspection_CantidadesNegativas(t *testing.T) {
	backend := newMockBackend(entity.OrderDelivered)
	var called bool
	backend.GetOrderFn = func(context.Context, string) (*entity.Order, error) {
		called = true
		return backend.order, nil
	}
	uc := newInspectionUC(backend, &recordingAudit{})

	_, err := uc.Create(context.Background(), testActor, app.CreateInspectionInput{
		OrderID:        "ord-1",
		ActualQuantity: decimal.NewFromInt(-5),
	})
	assert.True(t, domain.IsValidation(err))
	assert.False(t, called, "la validación debe ocurrir antes de tocar el backend")

	_, err = uc.Create(context.Background(), testActor, app.CreateInspectionInput{
		OrderID:          "ord-1",
		ActualQuantity:   decimal.NewFromInt(5),
		RejectedQuantity: decimal.NewFromInt(-1),
	})
	assert.True(t, domain.IsValidation(err))
}

// Trinquete: pasada la etapa delivered, las inspecciones son inmutables.
func TestCreateInspection_EtapaBloqueada(t *testing.T) {
	for _, status := range []entity.OrderStatus{
		entity.OrderApproved, entity.OrderChecked, entity.OrderArranged, entity.OrderCompleted,
	} {
		backend := newMockBackend(status)
		uc := newInspectionUC(backend, &recordingAudit{})

		_, err := uc.Create(context.Background(), testActor, app.CreateInspectionInput{
			OrderID:        "ord-1",
			ActualQuantity: decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, domain.ErrStageLocked, "crear inspección en etapa %s debe rechazarse", status)
	}
}

func TestDeleteInspection_SoloEnEtapaDelivered(t *testing.T) {
	backend := newMockBackend(entity.OrderDelivered)
	backend.inspections = []entity.Inspection{{ID: "insp-1", OrderID: "ord-1"}}
	audit := &recordingAudit{}
	uc := newInspectionUC(backend, audit)

	require.NoError(t, uc.Delete(context.Background(), testActor, "ord-1", "insp-1"))
	assert.Empty(t, backend.inspections)
	assert.Contains(t, audit.actions(), app.AuditInspectionDeleted)

	// Avanzada la orden, borrar queda bloqueado.
	backend.order.Status = entity.OrderChecked
	backend.inspections = []entity.Inspection{{ID: "insp-2", OrderID: "ord-1"}}
	err := uc.Delete(context.Background(), testActor, "ord-1", "insp-2")
	assert.ErrorIs(t, err, domain.ErrStageLocked)
	assert.Len(t, backend.inspections, 1, "la inspección no debe borrarse")
}

func TestListInspections_Lectura(t *testing.T) {
	backend := newMockBackend(entity.OrderCompleted)
	backend.inspections = []entity.Inspection{{ID: "insp-1", OrderID: "ord-1"}}
	uc := newInspectionUC(backend, &recordingAudit{})

	// Listar no tiene compuerta de etapa.
	list, err := uc.List(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// Doble click en "registrar inspección": el segundo envío concurrente queda
// excluido por la guarda y el backend recibe un solo registro.
func TestCreateInspection_GuardaDeOperacionEnVuelo(t *testing.T) {
	backend := newMockBackend(entity.OrderDelivered)
	inFlight := make(chan struct{})
	proceed := make(chan struct{})
	backend.GetOrderFn = func(context.Context, string) (*entity.Order, error) {
		close(inFlight)
		<-proceed
		cp := *backend.order
		return &cp, nil
	}
	uc := newInspectionUC(backend, &recordingAudit{})

	in := app.CreateInspectionInput{
		OrderID:        "ord-1",
		ActualQuantity: decimal.NewFromInt(50),
	}
	done := make(chan error, 1)
	go func() {
		_, err := uc.Create(context.Background(), testActor, in)
		done <- err
	}()

	<-inFlight
	_, err := uc.Create(context.Background(), testActor, in)
	assert.ErrorIs(t, err, domain.ErrOperationInProgress)

	close(proceed)
	require.NoError(t, <-done)
	assert.Len(t, backend.inspections, 1, "solo debe quedar un registro")
}

func TestDeleteInspection_GuardaDeOperacionEnVuelo(t *testing.T) {
	backend := newMockBackend(entity.OrderDelivered)
	backend.inspections = []entity.Inspection{{ID: "insp-1", OrderID: "ord-1"}}
	inFlight := make(chan struct{})
	proceed := make(chan struct{})
	backend.DeleteInspectionFn = func(context.Context, string) error {
		close(inFlight)
		<-proceed
		return nil
	}
	uc := newInspectionUC(backend, &recordingAudit{})

	done := make(chan error, 1)
	go func() { done <- uc.Delete(context.Background(), testActor, "ord-1", "insp-1") }()

	<-inFlight
	err := uc.Delete(context.Background(), testActor, "ord-1", "insp-1")
	assert.ErrorIs(t, err, domain.ErrOperationInProgress)

	close(proceed)
	require.NoError(t, <-done)
}

// La guarda se comparte entre casos de uso: mientras un registro de
// inspección está en vuelo, una transición de etapa sobre la misma orden
// también queda excluida.
func TestGuardaCompartida_InspeccionBloqueaAvanceDeEtapa(t *testing.T) {
	backend := newMockBackend(entity.OrderDelivered)
	inFlight := make(chan struct{})
	proceed := make(chan struct{})
	backend.CreateInspectionFn = func(_ context.Context, insp *entity.Inspection) (*entity.Inspection, error) {
		close(inFlight)
		<-proceed
		created := *insp
		created.ID = "insp-1"
		return &created, nil
	}
	guard := app.NewOperationGuard()
	insp := app.NewInspectionUseCase(backend, &recordingAudit{}, nil, logger.Nop(), guard)
	stage := app.NewStageUseCase(backend, &recordingAudit{}, nil, logger.Nop(), guard)

	done := make(chan error, 1)
	go func() {
		_, err := insp.Create(context.Background(), testActor, app.CreateInspectionInput{
			OrderID:        "ord-1",
			ActualQuantity: decimal.NewFromInt(10),
		})
		done <- err
	}()

	<-inFlight
	_, err := stage.FinishInspection(context.Background(), testActor, "ord-1")
	assert.ErrorIs(t, err, domain.ErrOperationInProgress)

	close(proceed)
	require.NoError(t, <-done)
}
