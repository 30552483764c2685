package reception_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/reception"
)

var mainPath = []entity.OrderStatus{
	entity.OrderApproved,
	entity.OrderDelivered,
	entity.OrderChecked,
	entity.OrderArranged,
	entity.OrderCompleted,
}

// Solo los pasos consecutivos de la ruta principal son legales.
func TestTransition_SoloPasosConsecutivos(t *testing.T) {
	for i, from := range mainPath {
		for j, to := range mainPath {
			err := reception.Transition(from, to)
			if j == i+1 {
				assert.NoError(t, err, "%s → %s debe ser legal", from, to)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition,
					"%s → %s no debe ser legal", from, to)
			}
		}
	}
}

// Trinquete: no hay retrocesos ni transiciones desde estados de recuperación.
func TestTransition_SinRetrocesosNiRecuperacion(t *testing.T) {
	assert.Error(t, reception.Transition(entity.OrderChecked, entity.OrderDelivered))
	assert.Error(t, reception.Transition(entity.OrderCompleted, entity.OrderApproved))
	assert.Error(t, reception.Transition(entity.OrderRejected, entity.OrderDelivered))
	assert.Error(t, reception.Transition(entity.OrderCancelled, entity.OrderDelivered))
}

func TestNextStage(t *testing.T) {
	assert.Equal(t, entity.OrderDelivered, reception.NextStage(entity.OrderApproved))
	assert.Equal(t, entity.OrderStatus(""), reception.NextStage(entity.OrderCompleted),
		"completed es terminal")
}

// Cada panel está activo exactamente en su etapa, pendiente antes y bloqueado
// permanentemente después (sin reabrir etapas anteriores).
func TestPanels_CompuertasPorEtapa(t *testing.T) {
	p := reception.Panels(entity.OrderApproved)
	assert.Equal(t, reception.PanelPending, p.Inspection)
	assert.Equal(t, reception.PanelPending, p.Packaging)
	assert.Equal(t, reception.PanelPending, p.PutAway)

	p = reception.Panels(entity.OrderDelivered)
	assert.Equal(t, reception.PanelActive, p.Inspection)
	assert.Equal(t, reception.PanelPending, p.Packaging)

	p = reception.Panels(entity.OrderChecked)
	assert.Equal(t, reception.PanelLocked, p.Inspection, "inspección queda solo lectura tras checked")
	assert.Equal(t, reception.PanelActive, p.Packaging)

	p = reception.Panels(entity.OrderArranged)
	assert.Equal(t, reception.PanelLocked, p.Packaging)
	assert.Equal(t, reception.PanelActive, p.PutAway)

	p = reception.Panels(entity.OrderCompleted)
	assert.Equal(t, reception.PanelLocked, p.Inspection)
	assert.Equal(t, reception.PanelLocked, p.Packaging)
	assert.Equal(t, reception.PanelLocked, p.PutAway)
}

// Una orden fuera de la ruta lineal no debe mostrar ningún panel como
// pendiente: todos quedan deshabilitados.
func TestPanels_OrdenFueraDeRuta(t *testing.T) {
	for _, status := range []entity.OrderStatus{entity.OrderRejected, entity.OrderCancelled} {
		p := reception.Panels(status)
		assert.Equal(t, reception.PanelDisabled, p.Inspection, "inspección en %s", status)
		assert.Equal(t, reception.PanelDisabled, p.Packaging, "empaque en %s", status)
		assert.Equal(t, reception.PanelDisabled, p.PutAway, "ubicación en %s", status)
	}
}

// Propiedad del trinquete: pasada la etapa delivered, las inspecciones dejan
// de ser mutables para siempre.
func TestInspectionMutable_SoloEnDelivered(t *testing.T) {
	assert.False(t, reception.InspectionMutable(entity.OrderApproved))
	assert.True(t, reception.InspectionMutable(entity.OrderDelivered))
	assert.False(t, reception.InspectionMutable(entity.OrderChecked))
	assert.False(t, reception.InspectionMutable(entity.OrderArranged))
	assert.False(t, reception.InspectionMutable(entity.OrderCompleted))
}
