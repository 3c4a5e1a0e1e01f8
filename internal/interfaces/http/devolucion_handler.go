package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/JuanMV14/comisiones-sub000/internal/application/devoluciones"
	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/domain"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

// DevolucionHandler maneja las peticiones HTTP de devoluciones (protegido).
// Toda escritura dispara el recomputo de la comisión de su factura.
type DevolucionHandler struct {
	uc *devoluciones.UseCase
}

// NewDevolucionHandler construye el handler.
func NewDevolucionHandler(uc *devoluciones.UseCase) *DevolucionHandler {
	return &DevolucionHandler{uc: uc}
}

// Create registra una devolución y recalcula la comisión de la factura.
// POST /api/devoluciones
func (h *DevolucionHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearDevolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	devolucion, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return devolucionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(devolucion)
}

// List devuelve devoluciones filtradas por factura, mes o afecta_comision.
// GET /api/devoluciones?factura_id=&mes=&afecta_comision=
func (h *DevolucionHandler) List(c *fiber.Ctx) error {
	filtro := repository.DevolucionFiltro{
		FacturaID: c.Query("factura_id"),
		Mes:       c.Query("mes"),
	}
	if v := c.Query("afecta_comision"); v != "" {
		afecta, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "afecta_comision debe ser true o false"})
		}
		filtro.AfectaComision = &afecta
	}
	lista, err := h.uc.Listar(filtro)
	if err != nil {
		return devolucionError(c, err)
	}
	return c.JSON(lista)
}

// Update edita una devolución y recalcula la comisión de la factura.
// PUT /api/devoluciones/:id
func (h *DevolucionHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.ActualizarDevolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	devolucion, err := h.uc.Actualizar(c.Context(), id, in)
	if err != nil {
		return devolucionError(c, err)
	}
	return c.JSON(devolucion)
}

// Delete elimina una devolución y recalcula la comisión de la factura.
// DELETE /api/devoluciones/:id
func (h *DevolucionHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	if err := h.uc.Eliminar(c.Context(), id); err != nil {
		return devolucionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// devolucionError traduce errores de dominio a respuestas HTTP.
func devolucionError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrFechaInvalida:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, usar YYYY-MM-DD"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura o devolución no encontrada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
