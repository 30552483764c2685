// Package ordermgmt implementa el cliente REST del servicio externo de
// gestión de órdenes (órdenes de importación, inspecciones, lotes y
// paquetes). Usa net/http de la stdlib, igual que el resto de clientes de
// salida de la casa; para tests se inyecta vía el puerto OrderService.
package ordermgmt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/application/reception"
	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
)

var _ reception.OrderService = (*Client)(nil)

// Client cliente HTTP/JSON del backend de gestión de órdenes.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// New construye el cliente. token es el Bearer de servicio emitido por el
// backend; timeout limita cada llamada individual.
func New(baseURL, token string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ── Formas de alambre (snake_case del backend) ────────────────────────────────

type orderWire struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	SupplierContract struct {
		ContractID string `json:"contract_id"`
		SupplierID string `json:"supplier_id"`
	} `json:"supplier_contract"`
	Details []struct {
		MedicineID   string          `json:"medicine_id"`
		MedicineCode string          `json:"medicine_code"`
		MedicineName string          `json:"medicine_name"`
		Quantity     decimal.Decimal `json:"quantity"`
		Unit         string          `json:"unit"`
		UnitPrice    decimal.Decimal `json:"unit_price"`
	} `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

type inspectionWire struct {
	ID               string          `json:"id,omitempty"`
	ImportOrderID    string          `json:"import_order_id"`
	BatchID          *string         `json:"batch_id"`
	ActualQuantity   decimal.Decimal `json:"actual_quantity"`
	RejectedQuantity decimal.Decimal `json:"rejected_quantity"`
	Note             string          `json:"note"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at,omitempty"`
}

type batchWire struct {
	ID             string `json:"id,omitempty"`
	MedicineID     string `json:"medicine_id"`
	BatchCode      string `json:"batch_code"`
	ProductionDate string `json:"production_date"`
	ExpiryDate     string `json:"expiry_date"`
	SupplierID     string `json:"supplier_id"`
}

type packageWire struct {
	ID            string          `json:"id,omitempty"`
	ImportOrderID string          `json:"import_order_id"`
	BatchID       string          `json:"batch_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	LocationID    string          `json:"location_id,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

type errorWire struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const dateLayout = "2006-01-02"

// ── Operaciones ───────────────────────────────────────────────────────────────

// GetOrder lee una orden de importación con sus renglones.
func (c *Client) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	var w orderWire
	if err := c.do(ctx, http.MethodGet, "/api/import-orders/"+id, nil, &w); err != nil {
		return nil, err
	}
	order := &entity.Order{
		ID:         w.ID,
		ContractID: w.SupplierContract.ContractID,
		SupplierID: w.SupplierContract.SupplierID,
		Status:     entity.OrderStatus(w.Status),
		CreatedAt:  w.CreatedAt,
	}
	for _, d := range w.Details {
		order.Details = append(order.Details, entity.OrderDetail{
			MedicineID:   d.MedicineID,
			MedicineCode: d.MedicineCode,
			MedicineName: d.MedicineName,
			Quantity:     d.Quantity,
			Unit:         d.Unit,
			UnitPrice:    d.UnitPrice,
		})
	}
	return order, nil
}

// UpdateOrderStatus solicita el cambio de estado de la orden.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPatch, "/api/import-orders/"+id+"/status", body, nil)
}

// ListInspections lista las inspecciones de una orden.
func (c *Client) ListInspections(ctx context.Context, orderID string) ([]entity.Inspection, error) {
	var ws []inspectionWire
	if err := c.do(ctx, http.MethodGet, "/api/import-orders/"+orderID+"/inspections", nil, &ws); err != nil {
		return nil, err
	}
	out := make([]entity.Inspection, 0, len(ws))
	for _, w := range ws {
		out = append(out, inspectionFromWire(w))
	}
	return out, nil
}

// CreateInspection persiste una inspección.
func (c *Client) CreateInspection(ctx context.Context, insp *entity.Inspection) (*entity.Inspection, error) {
	w := inspectionWire{
		ImportOrderID:    insp.OrderID,
		ActualQuantity:   insp.ActualQuantity,
		RejectedQuantity: insp.RejectedQuantity,
		Note:             insp.Note,
		CreatedBy:        insp.CreatedBy,
	}
	if insp.BatchID != "" {
		w.BatchID = &insp.BatchID
	}
	var created inspectionWire
	if err := c.do(ctx, http.MethodPost, "/api/inspections", w, &created); err != nil {
		return nil, err
	}
	out := inspectionFromWire(created)
	return &out, nil
}

// DeleteInspection elimina una inspección por ID.
func (c *Client) DeleteInspection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/inspections/"+id, nil, nil)
}

// CreateBatch persiste un lote nuevo.
func (c *Client) CreateBatch(ctx context.Context, batch *entity.Batch) (*entity.Batch, error) {
	w := batchWire{
		MedicineID:     batch.MedicineID,
		BatchCode:      batch.BatchCode,
		ProductionDate: batch.ProductionDate.Format(dateLayout),
		ExpiryDate:     batch.ExpiryDate.Format(dateLayout),
		SupplierID:     batch.SupplierID,
	}
	var created batchWire
	if err := c.do(ctx, http.MethodPost, "/api/batches", w, &created); err != nil {
		return nil, err
	}
	out := *batch
	out.ID = created.ID
	return &out, nil
}

// CreatePackage persiste un paquete físico.
func (c *Client) CreatePackage(ctx context.Context, pkg *entity.Package) (*entity.Package, error) {
	w := packageWire{
		ImportOrderID: pkg.OrderID,
		BatchID:       pkg.BatchID,
		Quantity:      pkg.Quantity,
		Reference:     pkg.Reference,
	}
	var created packageWire
	if err := c.do(ctx, http.MethodPost, "/api/packages", w, &created); err != nil {
		return nil, err
	}
	out := packageFromWire(created)
	return &out, nil
}

// ListPackages lista los paquetes de una orden con su ubicación.
func (c *Client) ListPackages(ctx context.Context, orderID string) ([]entity.Package, error) {
	var ws []packageWire
	if err := c.do(ctx, http.MethodGet, "/api/import-orders/"+orderID+"/packages", nil, &ws); err != nil {
		return nil, err
	}
	out := make([]entity.Package, 0, len(ws))
	for _, w := range ws {
		out = append(out, packageFromWire(w))
	}
	return out, nil
}

// ClearPackageLocation retira la asignación de ubicación de un paquete.
func (c *Client) ClearPackageLocation(ctx context.Context, packageID string) error {
	return c.do(ctx, http.MethodPatch, "/api/packages/"+packageID+"/clear-location", nil, nil)
}

// ── Transporte ────────────────────────────────────────────────────────────────

// do arma la petición, agrega el Bearer y decodifica la respuesta. Cualquier
// estado fuera de 2xx se traduce a *domain.RemoteError; 404 a ErrNotFound.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("crear petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.RemoteError{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := string(raw)
		var ew errorWire
		if json.Unmarshal(raw, &ew) == nil && ew.Message != "" {
			msg = ew.Message
		}
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Msg("el backend rechazó la petición")
		return &domain.RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.RemoteError{Status: resp.StatusCode, Message: "respuesta ilegible: " + err.Error()}
	}
	return nil
}

func inspectionFromWire(w inspectionWire) entity.Inspection {
	insp := entity.Inspection{
		ID:               w.ID,
		OrderID:          w.ImportOrderID,
		ActualQuantity:   w.ActualQuantity,
		RejectedQuantity: w.RejectedQuantity,
		Note:             w.Note,
		CreatedBy:        w.CreatedBy,
		CreatedAt:        w.CreatedAt,
	}
	if w.BatchID != nil {
		insp.BatchID = *w.BatchID
	}
	return insp
}

func packageFromWire(w packageWire) entity.Package {
	return entity.Package{
		ID:         w.ID,
		OrderID:    w.ImportOrderID,
		BatchID:    w.BatchID,
		Quantity:   w.Quantity,
		LocationID: w.LocationID,
		Reference:  w.Reference,
		CreatedAt:  w.CreatedAt,
	}
}
