package ventas

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/domain"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
)

// RegistrarPago marca la factura como pagada y reevalúa la comisión:
//
//   - dias_pago_real > límite (80): comisión perdida, ajustada en cero,
//     sin importar el valor calculado ni las devoluciones.
//   - en tiempo: la comisión ajustada se recalcula desde la base almacenada
//     y el total corriente de devoluciones.
//
// La transición se reevalúa completa en cada llamada; volver a marcar la
// factura con otra fecha parte siempre del estado base, nunca del resultado
// anterior.
func (uc *UseCase) RegistrarPago(id string, in dto.RegistrarPagoRequest) (*dto.FacturaResponse, error) {
	f, err := uc.facturaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}

	fechaPago := time.Now()
	if in.FechaPagoReal != "" {
		fechaPago, err = fechaISO(in.FechaPagoReal)
		if err != nil {
			return nil, err
		}
	}
	dias := comision.DiasEntre(f.FechaFactura, fechaPago)
	if in.DiasPagoReal != nil {
		dias = *in.DiasPagoReal
	}

	f.Pagado = true
	f.FechaPagoReal = &fechaPago
	f.DiasPagoReal = &dias
	f.DiasVencimiento = nil // definido solo mientras está sin pagar
	if in.MetodoPago != "" {
		f.MetodoPago = in.MetodoPago
	}
	if in.Referencia != "" {
		f.Referencia = in.Referencia
	}

	uc.aplicarReglaPagoTardio(f, dias)

	f.UpdatedAt = time.Now()
	if err := uc.facturaRepo.Update(f); err != nil {
		return nil, err
	}
	return FacturaToResponse(f), nil
}

// aplicarReglaPagoTardio resuelve comision_perdida y comision_ajustada para
// los días de pago dados, partiendo del estado base de la factura.
func (uc *UseCase) aplicarReglaPagoTardio(f *entity.Factura, dias int) {
	if uc.reglas.PierdeComision(dias) {
		f.ComisionPerdida = true
		f.RazonPerdida = fmt.Sprintf("Pago tardío: %d días", dias)
		f.ComisionAjustada = decimal.Zero
		return
	}
	f.ComisionPerdida = false
	f.RazonPerdida = ""
	f.ComisionAjustada = uc.comisionTrasDevoluciones(f)
}

// comisionTrasDevoluciones devuelve la comisión vigente considerando las
// devoluciones registradas: sin devoluciones es la comisión original; con
// devoluciones se recalcula desde el total corriente.
func (uc *UseCase) comisionTrasDevoluciones(f *entity.Factura) decimal.Decimal {
	total, err := uc.devolucionRepo.TotalAfectaComision(f.ID)
	if err != nil || total.IsZero() {
		return f.Comision
	}
	res := comision.AjustarPorDevoluciones(f, total)
	return res.Comision
}
