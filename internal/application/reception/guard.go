package reception

import "sync"

// OperationGuard marca órdenes con una operación mutadora en curso. Se
// comparte una sola instancia entre todos los casos de uso de recepción, de
// modo que dos mutaciones concurrentes sobre la misma orden se excluyan entre
// sí aunque lleguen por paneles distintos. Protege contra envíos duplicados
// (doble click) que el backend no está obligado a deduplicar.
type OperationGuard struct {
	mu   sync.Mutex
	busy map[string]bool
}

// NewOperationGuard construye la guarda compartida.
func NewOperationGuard() *OperationGuard {
	return &OperationGuard{busy: make(map[string]bool)}
}

// Acquire reserva la orden; false si ya hay una operación en vuelo.
func (g *OperationGuard) Acquire(orderID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[orderID] {
		return false
	}
	g.busy[orderID] = true
	return true
}

// Release libera la orden.
func (g *OperationGuard) Release(orderID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, orderID)
}
