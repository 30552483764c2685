package reception

import (
	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// Tabla de transiciones legales. Trinquete de una sola vía: sin retrocesos y
// sin saltos. rejected y cancelled no son alcanzables desde este flujo.
var nextStage = map[entity.OrderStatus]entity.OrderStatus{
	entity.OrderApproved:  entity.OrderDelivered, // el operador marca la llegada
	entity.OrderDelivered: entity.OrderChecked,   // el operador cierra la inspección
	entity.OrderChecked:   entity.OrderArranged,  // plan de empaque comprometido
	entity.OrderArranged:  entity.OrderCompleted, // todos los paquetes ubicados
}

// CanTransition indica si from → to está en la tabla de transiciones.
func CanTransition(from, to entity.OrderStatus) bool {
	next, ok := nextStage[from]
	return ok && next == to
}

// NextStage devuelve la etapa siguiente a from, o "" si from es terminal.
func NextStage(from entity.OrderStatus) entity.OrderStatus {
	return nextStage[from]
}

// Transition valida from → to; devuelve ErrInvalidTransition si no es legal.
func Transition(from, to entity.OrderStatus) error {
	if !CanTransition(from, to) {
		return domain.ErrInvalidTransition
	}
	return nil
}

// Ordinal posición de la etapa en la secuencia lineal (-1 para estados de
// recuperación fuera de la ruta). Permite decidir "ya pasó por X".
func Ordinal(s entity.OrderStatus) int {
	switch s {
	case entity.OrderApproved:
		return 0
	case entity.OrderDelivered:
		return 1
	case entity.OrderChecked:
		return 2
	case entity.OrderArranged:
		return 3
	case entity.OrderCompleted:
		return 4
	default:
		return -1
	}
}

// PanelMode estado de un panel intermedio para una etapa dada.
type PanelMode string

const (
	PanelPending  PanelMode = "pending"  // la orden aún no llega a esta etapa
	PanelActive   PanelMode = "active"   // la orden está exactamente en esta etapa
	PanelLocked   PanelMode = "locked"   // la orden ya pasó; solo lectura permanente
	PanelDisabled PanelMode = "disabled" // orden fuera de ruta (rejected/cancelled)
)

// PanelStates compuertas de los tres paneles intermedios para un estado dado.
type PanelStates struct {
	Inspection PanelMode
	Packaging  PanelMode
	PutAway    PanelMode
}

// Panels deriva las compuertas de los paneles del estado de la orden.
// Cada panel opera en exactamente una etapa; una vez superada, queda
// bloqueado para el resto del ciclo de vida de la orden. Para órdenes fuera
// de la ruta lineal todos los paneles quedan deshabilitados: una orden
// rechazada nunca debe invitar a capturar datos.
func Panels(s entity.OrderStatus) PanelStates {
	return PanelStates{
		Inspection: panelMode(s, entity.OrderDelivered),
		Packaging:  panelMode(s, entity.OrderChecked),
		PutAway:    panelMode(s, entity.OrderArranged),
	}
}

func panelMode(current, operatesOn entity.OrderStatus) PanelMode {
	cur, op := Ordinal(current), Ordinal(operatesOn)
	switch {
	case cur < 0:
		return PanelDisabled
	case cur < op:
		return PanelPending
	case cur == op:
		return PanelActive
	default:
		return PanelLocked
	}
}

// InspectionMutable indica si los registros de inspección de la orden aún
// admiten altas y bajas (solo durante la etapa delivered).
func InspectionMutable(s entity.OrderStatus) bool {
	return s == entity.OrderDelivered
}
