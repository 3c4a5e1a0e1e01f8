// Package ventas contiene los casos de uso del ciclo de vida de la factura:
// creación con derivación de campos y comisión inicial, edición con
// rederivación completa y registro de pago con la regla de pérdida por pago
// tardío.
package ventas

import (
	"strings"
	"time"

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/domain"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

// UseCase casos de uso de ventas/facturas.
type UseCase struct {
	facturaRepo    repository.FacturaRepository
	devolucionRepo repository.DevolucionRepository
	reglas         comision.Reglas
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	facturaRepo repository.FacturaRepository,
	devolucionRepo repository.DevolucionRepository,
	reglas comision.Reglas,
) *UseCase {
	return &UseCase{
		facturaRepo:    facturaRepo,
		devolucionRepo: devolucionRepo,
		reglas:         reglas,
	}
}

// fechaISO acepta "2006-01-02" o RFC 3339 (el frontend envía ambos).
func fechaISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, domain.ErrFechaInvalida
}

func formatFecha(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// FacturaToResponse mapea la entidad al DTO de respuesta. Lo reutiliza el
// paquete de reportes para el detalle de liquidaciones.
func FacturaToResponse(f *entity.Factura) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:                  f.ID,
		Pedido:              f.Pedido,
		Cliente:             f.Cliente,
		Factura:             f.Factura,
		FacturaBase:         f.FacturaBase(),
		Valor:               f.Valor,
		ValorFlete:          f.ValorFlete,
		ValorNeto:           f.ValorNeto,
		IVA:                 f.IVA,
		BaseComision:        f.BaseComision,
		Porcentaje:          f.Porcentaje,
		Comision:            f.Comision,
		ComisionAjustada:    f.ComisionAjustada,
		ValorDevuelto:       f.ValorDevuelto,
		DescuentoAdicional:  f.DescuentoAdicional,
		ClientePropio:       f.ClientePropio,
		DescuentoPieFactura: f.DescuentoPieFactura,
		CondicionEspecial:   f.CondicionEspecial,
		ComisionPerdida:     f.ComisionPerdida,
		RazonPerdida:        f.RazonPerdida,
		FechaFactura:        formatFecha(f.FechaFactura),
		FechaPagoEst:        formatFecha(f.FechaPagoEst),
		FechaPagoMax:        formatFecha(f.FechaPagoMax),
		DiasPagoReal:        f.DiasPagoReal,
		DiasVencimiento:     f.DiasVencimiento,
		Pagado:              f.Pagado,
		MetodoPago:          f.MetodoPago,
	}
	if f.FechaPagoReal != nil {
		resp.FechaPagoReal = formatFecha(*f.FechaPagoReal)
	}
	return resp
}

// GetFactura obtiene una factura por ID con campos derivados al día.
func (uc *UseCase) GetFactura(id string) (*dto.FacturaResponse, error) {
	f, err := uc.facturaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	uc.reglas.DerivarCampos(f, time.Now())
	return FacturaToResponse(f), nil
}

// ListFacturas lista facturas según filtro, con campos derivados al día.
func (uc *UseCase) ListFacturas(filtro repository.FacturaFiltro) ([]dto.FacturaResponse, error) {
	facturas, err := uc.facturaRepo.List(filtro)
	if err != nil {
		return nil, err
	}
	hoy := time.Now()
	out := make([]dto.FacturaResponse, 0, len(facturas))
	for _, f := range facturas {
		uc.reglas.DerivarCampos(f, hoy)
		out = append(out, *FacturaToResponse(f))
	}
	return out, nil
}
