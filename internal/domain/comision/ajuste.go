package comision

import (
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BaseEfectivaTrasDevoluciones calcula la base de comisión de una factura
// después de restar las devoluciones que afectan comisión.
//
// totalDevuelto viene con IVA incluido (así se almacena en devoluciones) y se
// convierte a neto antes de restar. Sobre el neto efectivo se reaplica la
// regla del pie de factura; con descuentos múltiples se resta además el
// descuento en pesos.
func BaseEfectivaTrasDevoluciones(f *entity.Factura, totalDevuelto decimal.Decimal) decimal.Decimal {
	netoEfectivo := f.ValorNeto.Sub(totalDevuelto.Div(factorIVA).Round(2))
	if f.DescuentosMultiples {
		return netoEfectivo.Sub(f.ValorDescuentoPesos)
	}
	return BaseComision(netoEfectivo, f.DescuentoPieFactura)
}

// AjustarPorDevoluciones recalcula la comisión ajustada de la factura desde
// el total corriente de devoluciones. Usa el porcentaje ya almacenado en la
// factura; los flags de descuento no se reevalúan en un evento de devolución.
func AjustarPorDevoluciones(f *entity.Factura, totalDevuelto decimal.Decimal) Resultado {
	base := BaseEfectivaTrasDevoluciones(f, totalDevuelto)
	return CalcularConPorcentaje(base, f.Porcentaje)
}
