package reception_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	app "github.com/jhoicas/Recepcion-api/internal/application/reception"
	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// mockBackend implementación en memoria del puerto OrderService. Cada campo
// *Fn permite forzar respuestas o fallos en un test puntual.
type mockBackend struct {
	mu          sync.Mutex
	order       *entity.Order
	inspections []entity.Inspection
	batches     []entity.Batch
	packages    []entity.Package

	seq int

	GetOrderFn         func(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatusFn     func(ctx context.Context, id string, status entity.OrderStatus) error
	CreateInspectionFn func(ctx context.Context, insp *entity.Inspection) (*entity.Inspection, error)
	CreateBatchFn      func(ctx context.Context, batch *entity.Batch) (*entity.Batch, error)
	CreatePackageFn    func(ctx context.Context, pkg *entity.Package) (*entity.Package, error)
	ListPackagesFn     func(ctx context.Context, orderID string) ([]entity.Package, error)
	DeleteInspectionFn func(ctx context.Context, id string) error
	ClearLocationFn    func(ctx context.Context, packageID string) error
	ListInspectionsFn  func(ctx context.Context, orderID string) ([]entity.Inspection, error)

	statusUpdates []entity.OrderStatus
}

func newMockBackend(status entity.OrderStatus) *mockBackend {
	return &mockBackend{
		order: &entity.Order{
			ID:         "ord-1",
			ContractID: "ctr-1",
			SupplierID: "prov-1",
			Status:     status,
			Details: []entity.OrderDetail{
				{
					MedicineID:   "med-1",
					MedicineCode: "MED-001",
					MedicineName: "Amoxicilina 500mg",
					Quantity:     decimal.NewFromInt(500),
					Unit:         "kg",
					UnitPrice:    decimal.NewFromInt(20),
				},
				{
					MedicineID:   "med-2",
					MedicineCode: "MED-002",
					MedicineName: "Ibuprofeno 400mg",
					Quantity:     decimal.NewFromInt(100),
					Unit:         "unidad",
					UnitPrice:    decimal.NewFromInt(5),
				},
			},
		},
	}
}

func (m *mockBackend) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *mockBackend) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	if m.GetOrderFn != nil {
		return m.GetOrderFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.order == nil || m.order.ID != id {
		return nil, domain.ErrNotFound
	}
	cp := *m.order
	return &cp, nil
}

func (m *mockBackend) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order.Status = status
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockBackend) ListInspections(ctx context.Context, orderID string) ([]entity.Inspection, error) {
	if m.ListInspectionsFn != nil {
		return m.ListInspectionsFn(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Inspection, len(m.inspections))
	copy(out, m.inspections)
	return out, nil
}

func (m *mockBackend) CreateInspection(ctx context.Context, insp *entity.Inspection) (*entity.Inspection, error) {
	if m.CreateInspectionFn != nil {
		return m.CreateInspectionFn(ctx, insp)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *insp
	created.ID = m.nextID("insp")
	m.inspections = append(m.inspections, created)
	return &created, nil
}

func (m *mockBackend) DeleteInspection(ctx context.Context, id string) error {
	if m.DeleteInspectionFn != nil {
		return m.DeleteInspectionFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, insp := range m.inspections {
		if insp.ID == id {
			m.inspections = append(m.inspections[:i], m.inspections[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockBackend) CreateBatch(ctx context.Context, batch *entity.Batch) (*entity.Batch, error) {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, batch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *batch
	created.ID = m.nextID("lote")
	m.batches = append(m.batches, created)
	return &created, nil
}

func (m *mockBackend) CreatePackage(ctx context.Context, pkg *entity.Package) (*entity.Package, error) {
	if m.CreatePackageFn != nil {
		return m.CreatePackageFn(ctx, pkg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *pkg
	created.ID = m.nextID("paq")
	m.packages = append(m.packages, created)
	return &created, nil
}

func (m *mockBackend) ListPackages(ctx context.Context, orderID string) ([]entity.Package, error) {
	if m.ListPackagesFn != nil {
		return m.ListPackagesFn(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Package, len(m.packages))
	copy(out, m.packages)
	return out, nil
}

func (m *mockBackend) ClearPackageLocation(ctx context.Context, packageID string) error {
	if m.ClearLocationFn != nil {
		return m.ClearLocationFn(ctx, packageID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.packages {
		if m.packages[i].ID == packageID {
			m.packages[i].LocationID = ""
			return nil
		}
	}
	return domain.ErrNotFound
}

// recordingAudit bitácora en memoria para verificar qué se registró.
type recordingAudit struct {
	mu      sync.Mutex
	entries []app.AuditEntry
}

func (a *recordingAudit) Record(_ context.Context, e app.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
	return nil
}

func (a *recordingAudit) ListByOrder(_ context.Context, orderID string) ([]app.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []app.AuditEntry
	for _, e := range a.entries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Action
	}
	return out
}

var testActor = app.Actor{UserID: "u-1", Name: "Bodeguero de prueba", Role: "bodeguero"}
