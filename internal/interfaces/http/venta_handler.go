package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/application/ventas"
	"github.com/JuanMV14/comisiones-sub000/internal/domain"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

// VentaHandler maneja las peticiones HTTP de ventas y pagos (protegido).
type VentaHandler struct {
	uc *ventas.UseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *ventas.UseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// Create registra una venta nueva con todos sus campos derivados.
// POST /api/ventas
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.NuevaVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	factura, err := h.uc.CrearVenta(in)
	if err != nil {
		return ventaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(factura)
}

// List devuelve facturas filtradas por cliente, mes o estado de pago.
// GET /api/ventas?cliente=&mes=&pagado=
func (h *VentaHandler) List(c *fiber.Ctx) error {
	filtro := repository.FacturaFiltro{
		Cliente:    c.Query("cliente"),
		MesFactura: c.Query("mes"),
	}
	if v := c.Query("pagado"); v != "" {
		pagado, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagado debe ser true o false"})
		}
		filtro.Pagado = &pagado
	}
	facturas, err := h.uc.ListFacturas(filtro)
	if err != nil {
		return ventaError(c, err)
	}
	return c.JSON(facturas)
}

// GetByID obtiene una factura con sus campos de comisión al día.
// GET /api/ventas/:id
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	factura, err := h.uc.GetFactura(id)
	if err != nil {
		return ventaError(c, err)
	}
	return c.JSON(factura)
}

// Update edita una factura y recalcula derivados, porcentaje y comisión.
// PUT /api/ventas/:id
func (h *VentaHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.EditarFacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	factura, err := h.uc.EditarFactura(id, in)
	if err != nil {
		return ventaError(c, err)
	}
	return c.JSON(factura)
}

// RegistrarPago marca la factura como pagada y aplica la regla de pago tardío.
// POST /api/ventas/:id/pago
func (h *VentaHandler) RegistrarPago(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.RegistrarPagoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	factura, err := h.uc.RegistrarPago(id, in)
	if err != nil {
		return ventaError(c, err)
	}
	return c.JSON(factura)
}

// ventaError traduce errores de dominio a respuestas HTTP.
func ventaError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrFechaInvalida:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, usar YYYY-MM-DD"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
	case domain.ErrDuplicate:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la factura ya existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
