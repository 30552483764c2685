package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appreception "github.com/jhoicas/Recepcion-api/internal/application/reception"
	"github.com/jhoicas/Recepcion-api/internal/domain/reception"
	"github.com/jhoicas/Recepcion-api/internal/domain/units"
	infraexcel "github.com/jhoicas/Recepcion-api/internal/infrastructure/excel"
	"github.com/jhoicas/Recepcion-api/internal/infrastructure/ordermgmt"
	infrapdf "github.com/jhoicas/Recepcion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Recepcion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Recepcion-api/internal/infrastructure/remision"
	httpRouter "github.com/jhoicas/Recepcion-api/internal/interfaces/http"
	"github.com/jhoicas/Recepcion-api/pkg/config"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Tabla de conversión: ratios métricos por defecto más los configurados
	// en la base de datos local (si hay).
	table := units.NewTable()

	// La base de datos local (bitácora + ratios) es opcional.
	var audit appreception.AuditTrail = appreception.NopAudit{}
	if cfg.DB.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		audit = postgres.NewAuditRepository(pool)

		ratios, err := postgres.NewUnitRatioRepository(pool).LoadAll(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar ratios de unidades")
		}
		for _, r := range ratios {
			table.Register(r)
		}
		log.Info().Int("ratios", len(ratios)).Msg("ratios de conversión cargados")
	} else {
		log.Info().Msg("base de datos local deshabilitada; bitácora nula")
	}

	// Cliente del servicio de gestión de órdenes.
	orders := ordermgmt.New(cfg.Backend.BaseURL, cfg.Backend.Token, cfg.Backend.Timeout(), log)

	// Las notificaciones al operador salen por el log estructurado.
	notify := func(level, message string) {
		switch level {
		case "warn":
			log.Warn().Msg(message)
		case "error":
			log.Error().Msg(message)
		default:
			log.Info().Msg(message)
		}
	}

	reconciler := reception.NewReconciler(table, log)
	// Guarda de operación única: las mutaciones concurrentes sobre una misma
	// orden se excluyen entre sí sin importar por qué panel lleguen.
	guard := appreception.NewOperationGuard()
	inspectionUC := appreception.NewInspectionUseCase(orders, audit, notify, log, guard)
	stageUC := appreception.NewStageUseCase(orders, audit, notify, log, guard)
	receiptUC := appreception.NewReceiptUseCase(orders, inspectionUC, reconciler, notify, log, guard)
	packagingUC := appreception.NewPackagingUseCase(orders, audit, notify, log, guard)
	putawayUC := appreception.NewPutAwayUseCase(orders, audit, notify, log, guard)
	reportUC := appreception.NewReportUseCase(orders, infrapdf.NewActaGenerator(), infraexcel.NewReportWriter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Recepción Farma API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StageUC:       stageUC,
		ReceiptUC:     receiptUC,
		InspectionUC:  inspectionUC,
		PackagingUC:   packagingUC,
		PutAwayUC:     putawayUC,
		ReportUC:      reportUC,
		Audit:         audit,
		RemisionParse: remision.NewParser(),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
