package http

import (
	"github.com/gofiber/fiber/v2"

	appreception "github.com/jhoicas/Recepcion-api/internal/application/reception"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StageUC       *appreception.StageUseCase
	ReceiptUC     *appreception.ReceiptUseCase
	InspectionUC  *appreception.InspectionUseCase
	PackagingUC   *appreception.PackagingUseCase
	PutAwayUC     *appreception.PutAwayUseCase
	ReportUC      *appreception.ReportUseCase
	Audit         appreception.AuditTrail
	RemisionParse RemisionParser
	JWTSecret     string
}

// Router registra las rutas de la API. Todo el flujo de recepción requiere
// Bearer Token; las mutaciones exigen rol bodeguero o admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	operator := RequireRole("bodeguero", "admin")

	// Etapas y paneles de la orden (protegido)
	orders := protected.Group("/orders")
	stageHandler := NewStageHandler(deps.StageUC, deps.Audit)
	orders.Get("/:id/panels", stageHandler.PanelStates)
	orders.Get("/:id/audit", stageHandler.ListAudit)
	orders.Post("/:id/arrive", operator, stageHandler.MarkArrived)
	orders.Post("/:id/finish-inspection", operator, stageHandler.FinishInspection)
	orders.Post("/:id/finalize", operator, stageHandler.Finalize)

	// Formulario de recepción (protegido)
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.RemisionParse)
	orders.Post("/:id/receipt", operator, receiptHandler.Open)
	receipts := protected.Group("/receipts")
	receipts.Get("/:formId", receiptHandler.Get)
	receipts.Get("/:formId/totals", receiptHandler.Totals)
	receipts.Patch("/:formId/lines/:lineId", operator, receiptHandler.UpdateLine)
	receipts.Post("/:formId/remision", operator, receiptHandler.ImportRemision)
	receipts.Post("/:formId/submit", operator, receiptHandler.Submit)
	receipts.Delete("/:formId", operator, receiptHandler.Discard)

	// Inspecciones (protegido)
	inspectionHandler := NewInspectionHandler(deps.InspectionUC)
	orders.Get("/:id/inspections", inspectionHandler.List)
	orders.Post("/:id/inspections", operator, inspectionHandler.Create)
	orders.Delete("/:id/inspections/:inspectionId", operator, inspectionHandler.Delete)

	// Plan de empaque (protegido)
	packagingHandler := NewPackagingHandler(deps.PackagingUC)
	orders.Get("/:id/batch-options", packagingHandler.BatchOptions)
	orders.Get("/:id/staged-batches", packagingHandler.StagedBatches)
	orders.Post("/:id/staged-batches", operator, packagingHandler.StageBatch)
	orders.Post("/:id/plan/validate", operator, packagingHandler.ValidatePlan)
	orders.Post("/:id/plan/commit", operator, packagingHandler.CommitPlan)

	// Acomodo (protegido)
	putawayHandler := NewPutAwayHandler(deps.PutAwayUC)
	orders.Get("/:id/packages", putawayHandler.ListPackages)
	orders.Delete("/:id/packages/:packageId/location", operator, putawayHandler.ClearLocation)

	// Acta de recepción (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	orders.Get("/:id/acta.pdf", reportHandler.GetActaPDF)
	orders.Get("/:id/acta.xlsx", reportHandler.GetActaXLSX)
}
