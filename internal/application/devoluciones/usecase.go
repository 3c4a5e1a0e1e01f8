// Package devoluciones contiene el CRUD de devoluciones y el motor de ajuste:
// cada alta, edición o borrado recalcula la comisión ajustada de la factura
// desde el total corriente de devoluciones que afectan comisión.
package devoluciones

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/domain"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

// UseCase casos de uso de devoluciones.
type UseCase struct {
	txRunner       TxRunner
	facturaRepo    repository.FacturaRepository
	devolucionRepo repository.DevolucionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, facturaRepo repository.FacturaRepository, devolucionRepo repository.DevolucionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, facturaRepo: facturaRepo, devolucionRepo: devolucionRepo}
}

func fechaISO(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, domain.ErrFechaInvalida
}

// Crear registra una devolución contra una factura y recalcula su comisión.
func (uc *UseCase) Crear(ctx context.Context, in dto.CrearDevolucionRequest) (*dto.DevolucionResponse, error) {
	if in.FacturaID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.ValorDevuelto.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	fecha, err := fechaISO(in.FechaDevolucion)
	if err != nil {
		return nil, err
	}

	afecta := true
	if in.AfectaComision != nil {
		afecta = *in.AfectaComision
	}

	now := time.Now()
	d := &entity.Devolucion{
		ID:              uuid.New().String(),
		FacturaID:       in.FacturaID,
		ValorDevuelto:   in.ValorDevuelto,
		FechaDevolucion: fecha,
		Motivo:          in.Motivo,
		AfectaComision:  afecta,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var resp *dto.DevolucionResponse
	err = uc.txRunner.RunDevolucion(ctx, func(
		facturaRepo repository.FacturaRepository,
		devolucionRepo repository.DevolucionRepository,
	) error {
		f, err := facturaRepo.GetByID(in.FacturaID)
		if err != nil {
			return err
		}
		if f == nil {
			return domain.ErrNotFound
		}
		// El valor devuelto no puede exceder el bruto de la factura.
		if in.ValorDevuelto.GreaterThan(f.Valor) {
			return domain.ErrInvalidInput
		}
		if err := devolucionRepo.Create(d); err != nil {
			return err
		}
		if err := recomputarFactura(f, facturaRepo, devolucionRepo); err != nil {
			return err
		}
		resp = toResponse(d, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Actualizar modifica una devolución y recalcula la comisión de su factura.
func (uc *UseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarDevolucionRequest) (*dto.DevolucionResponse, error) {
	if in.ValorDevuelto == nil && in.FechaDevolucion == nil && in.Motivo == nil && in.AfectaComision == nil {
		return nil, domain.ErrInvalidInput
	}
	if in.ValorDevuelto != nil && !in.ValorDevuelto.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.DevolucionResponse
	err := uc.txRunner.RunDevolucion(ctx, func(
		facturaRepo repository.FacturaRepository,
		devolucionRepo repository.DevolucionRepository,
	) error {
		d, err := devolucionRepo.GetByID(id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if in.ValorDevuelto != nil {
			d.ValorDevuelto = *in.ValorDevuelto
		}
		if in.FechaDevolucion != nil {
			fecha, err := fechaISO(*in.FechaDevolucion)
			if err != nil {
				return err
			}
			d.FechaDevolucion = fecha
		}
		if in.Motivo != nil {
			d.Motivo = *in.Motivo
		}
		if in.AfectaComision != nil {
			d.AfectaComision = *in.AfectaComision
		}
		d.UpdatedAt = time.Now()
		if err := devolucionRepo.Update(d); err != nil {
			return err
		}

		f, err := facturaRepo.GetByID(d.FacturaID)
		if err != nil {
			return err
		}
		if f == nil {
			return domain.ErrNotFound
		}
		if err := recomputarFactura(f, facturaRepo, devolucionRepo); err != nil {
			return err
		}
		resp = toResponse(d, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Eliminar borra una devolución. La comisión de la factura se recalcula desde
// las devoluciones restantes: eliminar una de tres deja el mismo resultado
// que si solo las otras dos se hubieran registrado.
func (uc *UseCase) Eliminar(ctx context.Context, id string) error {
	return uc.txRunner.RunDevolucion(ctx, func(
		facturaRepo repository.FacturaRepository,
		devolucionRepo repository.DevolucionRepository,
	) error {
		d, err := devolucionRepo.GetByID(id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if err := devolucionRepo.Delete(id); err != nil {
			return err
		}
		f, err := facturaRepo.GetByID(d.FacturaID)
		if err != nil {
			return err
		}
		if f == nil {
			return domain.ErrNotFound
		}
		return recomputarFactura(f, facturaRepo, devolucionRepo)
	})
}

// Listar devuelve devoluciones con totales, filtradas.
func (uc *UseCase) Listar(filtro repository.DevolucionFiltro) (*dto.DevolucionListaResponse, error) {
	lista, err := uc.devolucionRepo.List(filtro)
	if err != nil {
		return nil, err
	}
	out := &dto.DevolucionListaResponse{
		Devoluciones:       make([]dto.DevolucionResponse, 0, len(lista)),
		TotalDevoluciones:  len(lista),
		TotalValorDevuelto: decimal.Zero,
	}
	for _, d := range lista {
		f, err := uc.facturaRepo.GetByID(d.FacturaID)
		if err != nil {
			return nil, err
		}
		out.Devoluciones = append(out.Devoluciones, *toResponse(d, f))
		out.TotalValorDevuelto = out.TotalValorDevuelto.Add(d.ValorDevuelto)
	}
	return out, nil
}

// recomputarFactura es el motor de ajuste: suma el total corriente de
// devoluciones con afecta_comision = true y recalcula la comisión ajustada
// desde cero con el porcentaje ya almacenado en la factura. Es un recomputo
// completo, no un delta incremental: el resultado no depende del orden en que
// se registraron las devoluciones.
//
// La pérdida por pago tardío es un override más fuerte: si la comisión ya se
// perdió, la ajustada permanece en cero sin importar las devoluciones.
func recomputarFactura(
	f *entity.Factura,
	facturaRepo repository.FacturaRepository,
	devolucionRepo repository.DevolucionRepository,
) error {
	total, err := devolucionRepo.TotalAfectaComision(f.ID)
	if err != nil {
		return err
	}
	res := comision.AjustarPorDevoluciones(f, total)
	f.ValorDevuelto = total
	f.ComisionAjustada = res.Comision
	if f.ComisionPerdida {
		f.ComisionAjustada = decimal.Zero
	}
	f.UpdatedAt = time.Now()
	return facturaRepo.Update(f)
}

func toResponse(d *entity.Devolucion, f *entity.Factura) *dto.DevolucionResponse {
	resp := &dto.DevolucionResponse{
		ID:              d.ID,
		FacturaID:       d.FacturaID,
		ValorDevuelto:   d.ValorDevuelto,
		FechaDevolucion: d.FechaDevolucion.Format("2006-01-02"),
		Motivo:          d.Motivo,
		AfectaComision:  d.AfectaComision,
	}
	if f != nil {
		resp.FacturaValorDevuelto = f.ValorDevuelto
		resp.FacturaComisionAjustada = f.ComisionAjustada
	}
	return resp
}
