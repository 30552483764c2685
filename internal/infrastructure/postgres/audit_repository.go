package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Recepcion-api/internal/application/reception"
)

var _ reception.AuditTrail = (*AuditRepo)(nil)

// AuditRepo bitácora de recepción sobre PostgreSQL (usable con pool o tx).
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Record persiste un evento confirmado.
func (r *AuditRepo) Record(ctx context.Context, e reception.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	query := `
		INSERT INTO reception_audit (id, order_id, action, detail, actor, at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, e.ID, e.OrderID, e.Action, e.Detail, e.Actor, e.At); err != nil {
		return fmt.Errorf("registrar evento de bitácora: %w", err)
	}
	return nil
}

// ListByOrder lista los eventos de una orden, del más reciente al más viejo.
func (r *AuditRepo) ListByOrder(ctx context.Context, orderID string) ([]reception.AuditEntry, error) {
	query := `
		SELECT id, order_id, action, detail, actor, at
		FROM reception_audit WHERE order_id = $1 ORDER BY at DESC`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("listar bitácora: %w", err)
	}
	defer rows.Close()

	var entries []reception.AuditEntry
	for rows.Next() {
		var e reception.AuditEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Action, &e.Detail, &e.Actor, &e.At); err != nil {
			return nil, fmt.Errorf("leer evento de bitácora: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recorrer bitácora: %w", err)
	}
	return entries, nil
}
