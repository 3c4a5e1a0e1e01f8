package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/application/reportes"
	"github.com/JuanMV14/comisiones-sub000/internal/domain"
)

// ReporteHandler maneja agregaciones, liquidación mensual, metas y alertas.
type ReporteHandler struct {
	uc *reportes.UseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reportes.UseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// PorMesFactura agrupa ventas y comisiones por mes de facturación.
// GET /api/reportes/ventas-mes
func (h *ReporteHandler) PorMesFactura(c *fiber.Ctx) error {
	out, err := h.uc.PorMesFactura()
	if err != nil {
		return reporteError(c, err)
	}
	return c.JSON(out)
}

// PorMesCobro agrupa comisiones por mes de pago real. Las facturas pagadas
// sin fecha de pago quedan listadas aparte para corrección manual.
// GET /api/reportes/cobros-mes
func (h *ReporteHandler) PorMesCobro(c *fiber.Ctx) error {
	out, err := h.uc.PorMesCobro()
	if err != nil {
		return reporteError(c, err)
	}
	return c.JSON(out)
}

// PorCliente agrupa ventas por cliente normalizado (tildes y mayúsculas).
// GET /api/reportes/clientes
func (h *ReporteHandler) PorCliente(c *fiber.Ctx) error {
	out, err := h.uc.PorCliente()
	if err != nil {
		return reporteError(c, err)
	}
	return c.JSON(out)
}

// EstadoComisiones liquida las comisiones de un mes (default: mes anterior).
// GET /api/reportes/estado-comisiones?mes=YYYY-MM
func (h *ReporteHandler) EstadoComisiones(c *fiber.Ctx) error {
	out, err := h.uc.EstadoComisiones(c.Query("mes"))
	if err != nil {
		return reporteError(c, err)
	}
	return c.JSON(out)
}

// EstadoComisionesPDF devuelve la liquidación del mes como PDF descargable.
// GET /api/reportes/estado-comisiones/pdf?mes=YYYY-MM
func (h *ReporteHandler) EstadoComisionesPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.EstadoComisionesPDF(c.Query("mes"))
	if err != nil {
		return reporteError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estado_comisiones.pdf"`)
	return c.Send(pdfBytes)
}

// ProgresoMeta avance de la meta de ventas del mes.
// GET /api/reportes/meta?mes=YYYY-MM
func (h *ReporteHandler) ProgresoMeta(c *fiber.Ctx) error {
	out, err := h.uc.ProgresoMeta(c.Query("mes"))
	if err != nil {
		return reporteError(c, err)
	}
	return c.JSON(out)
}

// ActualizarMeta fija la meta comercial del mes (solo admin y gerencia).
// PUT /api/reportes/meta
func (h *ReporteHandler) ActualizarMeta(c *fiber.Ctx) error {
	var in dto.ActualizarMetaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	meta, err := h.uc.ActualizarMeta(in.Mes, in.MetaVentas, in.MetaClientes)
	if err != nil {
		return reporteError(c, err)
	}
	return c.JSON(meta)
}

// Alertas devuelve facturas vencidas o próximas a vencer sin pagar.
// GET /api/reportes/alertas
func (h *ReporteHandler) Alertas(c *fiber.Ctx) error {
	out, err := h.uc.Alertas()
	if err != nil {
		return reporteError(c, err)
	}
	return c.JSON(out)
}

// reporteError traduce errores de dominio a respuestas HTTP.
func reporteError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput, domain.ErrFechaInvalida:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos, mes usa formato YYYY-MM"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
