package ventas

import (
	"time"

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/domain"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
)

// EditarFactura aplica ediciones directas a campos base y corre de nuevo la
// cadena completa: derivación de campos, porcentaje desde los flags vigentes
// y comisión; después reaplica devoluciones y, si la factura ya está pagada,
// la regla de pago tardío. Un registro editado a medias queda reparado por la
// verificación de consistencia de la derivación.
func (uc *UseCase) EditarFactura(id string, in dto.EditarFacturaRequest) (*dto.FacturaResponse, error) {
	f, err := uc.facturaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}

	if in.Cliente != nil {
		f.Cliente = *in.Cliente
	}
	if in.Valor != nil {
		f.Valor = *in.Valor
	}
	if in.ValorFlete != nil {
		f.ValorFlete = *in.ValorFlete
	}
	if in.ValorNeto != nil {
		f.ValorNeto = *in.ValorNeto
	}
	if in.IVA != nil {
		f.IVA = *in.IVA
	}
	if in.ClientePropio != nil {
		f.ClientePropio = *in.ClientePropio
	}
	if in.DescuentoPieFactura != nil {
		f.DescuentoPieFactura = *in.DescuentoPieFactura
	}
	if in.DescuentoAdicional != nil {
		f.DescuentoAdicional = *in.DescuentoAdicional
	}
	if in.CondicionEspecial != nil {
		f.CondicionEspecial = *in.CondicionEspecial
	}
	if in.FechaFactura != nil {
		fecha, err := fechaISO(*in.FechaFactura)
		if err != nil {
			return nil, err
		}
		f.FechaFactura = fecha
	}
	// Las ventanas de pago dependen de la fecha y de la condición especial.
	f.FechaPagoEst, f.FechaPagoMax = uc.reglas.VentanasPago(f.FechaFactura, f.CondicionEspecial)

	now := time.Now()
	uc.reglas.DerivarCampos(f, now)

	calc := comision.Calcular(f.BaseComision, f.ClientePropio, tieneDescuentoAdicional(f))
	f.Porcentaje = calc.Porcentaje
	f.Comision = calc.Comision
	f.ComisionAjustada = uc.comisionTrasDevoluciones(f)

	if f.Pagado && f.DiasPagoReal != nil {
		uc.aplicarReglaPagoTardio(f, *f.DiasPagoReal)
	}

	f.UpdatedAt = now
	if err := uc.facturaRepo.Update(f); err != nil {
		return nil, err
	}
	return FacturaToResponse(f), nil
}
