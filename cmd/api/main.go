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
	"github.com/shopspring/decimal"

	"github.com/JuanMV14/comisiones-sub000/internal/application/auth"
	"github.com/JuanMV14/comisiones-sub000/internal/application/devoluciones"
	"github.com/JuanMV14/comisiones-sub000/internal/application/reportes"
	"github.com/JuanMV14/comisiones-sub000/internal/application/ventas"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
	infrapdf "github.com/JuanMV14/comisiones-sub000/internal/infrastructure/pdf"
	"github.com/JuanMV14/comisiones-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/JuanMV14/comisiones-sub000/internal/interfaces/http"
	"github.com/JuanMV14/comisiones-sub000/pkg/config"
	"github.com/JuanMV14/comisiones-sub000/pkg/logger"
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	facturaRepo := postgres.NewFacturaRepository(pool)
	devolucionRepo := postgres.NewDevolucionRepository(pool)
	metaRepo := postgres.NewMetaRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reglas := reglasDesdeConfig(cfg.Comision)

	ventasUC := ventas.NewUseCase(facturaRepo, devolucionRepo, reglas)
	devolucionesUC := devoluciones.NewUseCase(txRunner, facturaRepo, devolucionRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportesUC := reportes.NewUseCase(facturaRepo, metaRepo, reglas, pdfGenerator)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Comisiones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		VentasUC:       ventasUC,
		DevolucionesUC: devolucionesUC,
		ReportesUC:     reportesUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
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

// reglasDesdeConfig arma las reglas del motor partiendo de los defaults y
// aplicando los overrides de configuración.
func reglasDesdeConfig(c config.ComisionConfig) comision.Reglas {
	reglas := comision.ReglasPorDefecto()
	if c.ToleranciaConsistencia > 0 {
		reglas.ToleranciaConsistencia = decimal.NewFromFloat(c.ToleranciaConsistencia)
	}
	if c.DiasPerdidaComision > 0 {
		reglas.DiasPerdidaComision = c.DiasPerdidaComision
	}
	if c.DiasPagoEstimado > 0 {
		reglas.DiasPagoEstimado = c.DiasPagoEstimado
	}
	if c.DiasPagoMaximo > 0 {
		reglas.DiasPagoMaximo = c.DiasPagoMaximo
	}
	if c.DiasPagoEspecial > 0 {
		reglas.DiasPagoEspecial = c.DiasPagoEspecial
	}
	return reglas
}
