// Package comision contiene las reglas puras del motor de comisiones:
// derivación de campos financieros, tabla de porcentajes y cálculo.
//
// Todo opera sobre shopspring/decimal; ninguna función toca persistencia.
package comision

import (
	"time"

	"github.com/shopspring/decimal"
)

// Factores fijos del régimen colombiano de la operación.
var (
	factorIVA        = decimal.NewFromFloat(1.19) // bruto = neto * 1.19
	tasaIVA          = decimal.NewFromFloat(0.19)
	factorPieFactura = decimal.NewFromFloat(0.85) // descuento del 15% a pie de factura
	cien             = decimal.NewFromInt(100)
)

// Porcentajes de la tabla de decisión.
var (
	pctPropio          = decimal.NewFromFloat(2.5)
	pctPropioDescuento = decimal.NewFromFloat(1.5)
	pctExterno         = decimal.NewFromFloat(1.0)
	pctExternoDescuento = decimal.NewFromFloat(0.5)
)

// Reglas agrupa los parámetros configurables del motor. La tolerancia de
// consistencia y el límite de pérdida vienen de configuración; el resto de
// la tabla es fijo.
type Reglas struct {
	// ToleranciaConsistencia es la diferencia máxima permitida (en pesos)
	// entre valor y valor_neto + iva + valor_flete antes de reparar.
	ToleranciaConsistencia decimal.Decimal
	// DiasPerdidaComision: pagos posteriores a este número de días desde la
	// factura pierden la comisión completa.
	DiasPerdidaComision int
	// Ventanas de pago en días desde fecha_factura.
	DiasPagoEstimado    int // fecha_pago_est sin condición especial
	DiasPagoMaximo      int // fecha_pago_max sin condición especial
	DiasPagoEspecial    int // ambas fechas con condición especial
}

// ReglasPorDefecto devuelve los valores vigentes del negocio.
func ReglasPorDefecto() Reglas {
	return Reglas{
		ToleranciaConsistencia: decimal.NewFromInt(1),
		DiasPerdidaComision:    80,
		DiasPagoEstimado:       35,
		DiasPagoMaximo:         45,
		DiasPagoEspecial:       60,
	}
}

// Porcentaje resuelve la tabla 2x2 de porcentajes de comisión:
//
//	propio  sin descuento adicional → 2.5
//	propio  con descuento adicional → 1.5
//	externo sin descuento adicional → 1.0
//	externo con descuento adicional → 0.5
//
// El descuento a pie de factura NO participa aquí: ese descuento reduce la
// base (ver BaseComision), nunca el porcentaje.
func Porcentaje(clientePropio, tieneDescuentoAdicional bool) decimal.Decimal {
	switch {
	case clientePropio && !tieneDescuentoAdicional:
		return pctPropio
	case clientePropio && tieneDescuentoAdicional:
		return pctPropioDescuento
	case !clientePropio && !tieneDescuentoAdicional:
		return pctExterno
	default:
		return pctExternoDescuento
	}
}

// BaseComision aplica la regla del descuento a pie de factura sobre el neto:
// con descuento a pie la base es el neto completo (el 15% ya está descontado
// en el valor facturado); sin él, la base se reduce al 85%.
func BaseComision(valorNeto decimal.Decimal, descuentoPieFactura bool) decimal.Decimal {
	if descuentoPieFactura {
		return valorNeto
	}
	return valorNeto.Mul(factorPieFactura)
}

// VentanasPago calcula fecha_pago_est y fecha_pago_max desde la fecha de
// factura. Con condición especial ambas ventanas se extienden a 60 días.
func (r Reglas) VentanasPago(fechaFactura time.Time, condicionEspecial bool) (est, max time.Time) {
	if condicionEspecial {
		est = fechaFactura.AddDate(0, 0, r.DiasPagoEspecial)
		return est, est
	}
	est = fechaFactura.AddDate(0, 0, r.DiasPagoEstimado)
	max = fechaFactura.AddDate(0, 0, r.DiasPagoMaximo)
	return est, max
}

// PierdeComision indica si un pago a los dias indicados pierde la comisión.
func (r Reglas) PierdeComision(diasPagoReal int) bool {
	return diasPagoReal > r.DiasPerdidaComision
}

// DiasEntre devuelve los días calendario entre dos fechas (b − a), ignorando
// la hora del día.
func DiasEntre(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
