package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JuanMV14/comisiones-sub000/internal/application/auth"
	"github.com/JuanMV14/comisiones-sub000/internal/application/devoluciones"
	"github.com/JuanMV14/comisiones-sub000/internal/application/reportes"
	"github.com/JuanMV14/comisiones-sub000/internal/application/ventas"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	VentasUC       *ventas.UseCase
	DevolucionesUC *devoluciones.UseCase
	ReportesUC     *reportes.UseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ventas (protegido)
	ventasGroup := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentasUC)
	ventasGroup.Post("/", ventaHandler.Create)
	ventasGroup.Get("/", ventaHandler.List)
	ventasGroup.Get("/:id", ventaHandler.GetByID)
	ventasGroup.Put("/:id", ventaHandler.Update)
	ventasGroup.Post("/:id/pago", ventaHandler.RegistrarPago)

	// Devoluciones (protegido)
	devGroup := protected.Group("/devoluciones")
	devolucionHandler := NewDevolucionHandler(deps.DevolucionesUC)
	devGroup.Post("/", devolucionHandler.Create)
	devGroup.Get("/", devolucionHandler.List)
	devGroup.Put("/:id", devolucionHandler.Update)
	devGroup.Delete("/:id", devolucionHandler.Delete)

	// Reportes y liquidación (protegido)
	repGroup := protected.Group("/reportes")
	reporteHandler := NewReporteHandler(deps.ReportesUC)
	repGroup.Get("/ventas-mes", reporteHandler.PorMesFactura)
	repGroup.Get("/cobros-mes", reporteHandler.PorMesCobro)
	repGroup.Get("/clientes", reporteHandler.PorCliente)
	repGroup.Get("/estado-comisiones", reporteHandler.EstadoComisiones)
	repGroup.Get("/estado-comisiones/pdf", reporteHandler.EstadoComisionesPDF)
	repGroup.Get("/meta", reporteHandler.ProgresoMeta)
	repGroup.Put("/meta", RequireRole(entity.RoleAdmin, entity.RoleGerencia), reporteHandler.ActualizarMeta)
	repGroup.Get("/alertas", reporteHandler.Alertas)
}
