package comision

import "github.com/shopspring/decimal"

// Resultado es la salida del cálculo de comisión de una factura.
type Resultado struct {
	BaseComision decimal.Decimal
	Porcentaje   decimal.Decimal
	Comision     decimal.Decimal
}

// Calcular resuelve el porcentaje con la tabla de decisión y calcula la
// comisión sobre la base (ya ajustada por pie de factura y devoluciones).
func Calcular(base decimal.Decimal, clientePropio, tieneDescuentoAdicional bool) Resultado {
	return CalcularConPorcentaje(base, Porcentaje(clientePropio, tieneDescuentoAdicional))
}

// CalcularConPorcentaje calcula la comisión con un porcentaje ya conocido.
// Se usa en el recomputo por devoluciones, donde el porcentaje almacenado de
// la factura se respeta en lugar de rederivarse de los flags de descuento.
//
// Una base negativa (devoluciones que exceden el neto) se lleva a cero antes
// de multiplicar: la comisión nunca es negativa.
func CalcularConPorcentaje(base, porcentaje decimal.Decimal) Resultado {
	if base.IsNegative() {
		base = decimal.Zero
	}
	comision := base.Mul(porcentaje).Div(cien).Round(2)
	return Resultado{
		BaseComision: base,
		Porcentaje:   porcentaje,
		Comision:     comision,
	}
}
