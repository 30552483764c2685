package entity

import (
	"strings"
	"time"
)

// Prefijo de los IDs temporales de lotes preparados localmente (creación diferida).
// CommitPlan los resuelve a IDs reales antes de crear paquetes.
const TempBatchPrefix = "tmp-"

// Batch lote de producción de un medicamento, con su propio vencimiento.
// Puede preexistir (referenciado por una inspección) o crearse durante el empaque.
type Batch struct {
	ID             string
	MedicineID     string
	BatchCode      string
	ProductionDate time.Time
	ExpiryDate     time.Time
	SupplierID     string
}

// IsTemp indica si el lote aún no está persistido en el backend.
func (b Batch) IsTemp() bool {
	return strings.HasPrefix(b.ID, TempBatchPrefix)
}
