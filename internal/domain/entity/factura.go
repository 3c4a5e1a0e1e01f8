package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Factura representa una factura de venta con sus campos financieros y de
// comisión. Los nombres de columna en la tabla `comisiones` usan exactamente
// estos nombres en snake_case (valor_neto, base_comision, ...), por
// compatibilidad con las capas de UI y reportes que ya consumen ese esquema.
type Factura struct {
	ID      string
	Pedido  string
	Cliente string
	Factura string // número de factura; puede traer sufijos "-1", "-2"

	// Campos monetarios. Valor es el bruto: incluye IVA y flete.
	Valor               decimal.Decimal
	ValorFlete          decimal.Decimal // excluido de la base de comisión
	ValorNeto           decimal.Decimal // valor sin IVA ni flete
	IVA                 decimal.Decimal
	BaseComision        decimal.Decimal
	Porcentaje          decimal.Decimal // porcentaje de comisión aplicado (2.5, 1.5, 1.0, 0.5)
	Comision            decimal.Decimal
	ComisionAjustada    decimal.Decimal // tras devoluciones o pérdida por pago tardío
	ValorDescuentoPesos decimal.Decimal // descuento adicional expresado en pesos
	ValorDevuelto       decimal.Decimal // acumulado de devoluciones (incluye IVA)
	DescuentoAdicional  decimal.Decimal // porcentaje negociado aparte
	DescuentoAplicado   decimal.Decimal // descuento por volumen aplicado en líneas

	// Clasificación.
	ClientePropio       bool
	DescuentoPieFactura bool // 15% a pie de factura: reduce la base, no el porcentaje
	DescuentosMultiples bool
	CondicionEspecial   bool // extiende las ventanas de pago a 60 días
	ComisionPerdida     bool
	RazonPerdida        string

	// Fechas y estado de pago.
	FechaFactura    time.Time
	FechaPagoEst    time.Time // estimada: factura + 35 o 60 días
	FechaPagoMax    time.Time // límite: factura + 45 o 60 días
	FechaPagoReal   *time.Time
	DiasPagoReal    *int
	DiasVencimiento *int // solo mientras pagado = false; nil una vez pagada
	Pagado          bool

	MetodoPago     string
	Referencia     string
	CiudadDestino  string
	RecogidaLocal  bool
	ComprobanteURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FacturaBase devuelve el número de factura sin variantes de sufijo
// ("FAC-123-1" y "FAC-123-2" agrupan bajo "FAC-123"). Se usa como llave de
// agrupación al contar facturas únicas en reportes.
func FacturaBase(numero string) string {
	numero = strings.TrimSpace(numero)
	idx := strings.LastIndex(numero, "-")
	if idx <= 0 {
		return numero
	}
	sufijo := numero[idx+1:]
	if len(sufijo) == 0 || len(sufijo) > 2 {
		return numero
	}
	for _, r := range sufijo {
		if r < '0' || r > '9' {
			return numero
		}
	}
	return numero[:idx]
}

// FacturaBase del número de esta factura.
func (f *Factura) FacturaBase() string {
	return FacturaBase(f.Factura)
}
