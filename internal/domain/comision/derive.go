package comision

import (
	"time"

	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
)

// DerivarCampos normaliza los campos financieros de una factura cruda:
// deriva valor_neto, iva y base_comision cuando faltan, repara registros
// parcialmente editados y calcula dias_vencimiento.
//
// La función es total sobre datos sucios: los numéricos ausentes valen cero y
// nunca se retorna error. También es idempotente: aplicarla dos veces sobre
// una factura ya consistente no cambia nada.
func (r Reglas) DerivarCampos(f *entity.Factura, hoy time.Time) {
	disponible := f.Valor.Sub(f.ValorFlete) // productos con IVA, sin flete

	// 1. Derivar valor_neto si falta.
	if f.ValorNeto.IsZero() && disponible.IsPositive() {
		f.ValorNeto = disponible.Div(factorIVA).Round(2)
	}

	// 2. Reparación de consistencia: si el bruto almacenado no cuadra con
	// neto + iva + flete más allá de la tolerancia, se recalculan neto e iva
	// desde el bruto. El iva queda como residuo exacto para que
	// valor = valor_neto + iva + valor_flete al centavo.
	calculado := f.ValorNeto.Add(f.IVA).Add(f.ValorFlete)
	if f.Valor.Sub(calculado).Abs().GreaterThan(r.ToleranciaConsistencia) {
		f.ValorNeto = disponible.Div(factorIVA).Round(2)
		f.IVA = disponible.Sub(f.ValorNeto)
	}

	// 3. IVA de respaldo cuando sigue en cero.
	if f.IVA.IsZero() && f.ValorNeto.IsPositive() {
		f.IVA = f.ValorNeto.Mul(tasaIVA).Round(2)
	}

	// 4. Base de comisión, siempre recalculada desde el neto vigente.
	f.BaseComision = BaseComision(f.ValorNeto, f.DescuentoPieFactura)

	// 5. dias_vencimiento existe solo mientras la factura no está pagada.
	if !f.Pagado && !f.FechaPagoMax.IsZero() {
		dias := DiasEntre(hoy, f.FechaPagoMax)
		f.DiasVencimiento = &dias
	} else {
		f.DiasVencimiento = nil
	}
}
