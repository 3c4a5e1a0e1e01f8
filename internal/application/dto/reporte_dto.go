package dto

import "github.com/shopspring/decimal"

// FilaReporte una fila de agrupación (mes, cliente, ...) con sus totales.
type FilaReporte struct {
	Periodo         string          `json:"periodo"` // "YYYY-MM" o nombre de cliente
	TotalVentas     decimal.Decimal `json:"total_ventas"`
	TotalComisiones decimal.Decimal `json:"total_comisiones"`
	NumFacturas     int             `json:"num_facturas"`
}

// ReporteResponse agrupación más condiciones de calidad de datos detectadas.
// SinFechaPago lista facturas marcadas pagadas sin fecha_pago_real: no se
// pueden asignar a un periodo de cobro y deben corregirse a mano.
type ReporteResponse struct {
	Filas        []FilaReporte `json:"filas"`
	SinFechaPago []string      `json:"sin_fecha_pago,omitempty"` // IDs de factura
}

// EstadoComisionesMes liquidación de comisiones de un mes: facturas pagadas
// en el mes, brutas menos descuentos de nómina (salud y reserva).
type EstadoComisionesMes struct {
	Mes                string          `json:"mes"`
	ComisionesBrutas   decimal.Decimal `json:"total_comisiones_brutas"`
	DescuentoSalud     decimal.Decimal `json:"descuento_salud"`
	DescuentoReserva   decimal.Decimal `json:"descuento_reserva"`
	TotalDescuentos    decimal.Decimal `json:"total_descuentos"`
	ComisionesNetas    decimal.Decimal `json:"comisiones_netas"`
	FacturasProcesadas int             `json:"facturas_procesadas"`
	Detalle            []FacturaResponse `json:"detalle_facturas"`
	Alertas            []string        `json:"alertas,omitempty"`
}

// ActualizarMetaRequest fija la meta comercial de un mes.
type ActualizarMetaRequest struct {
	Mes          string          `json:"mes"` // "YYYY-MM"
	MetaVentas   decimal.Decimal `json:"meta_ventas"`
	MetaClientes int             `json:"meta_clientes"`
}

// ProgresoMeta avance de la meta del mes sobre clientes propios.
type ProgresoMeta struct {
	Mes            string          `json:"mes"`
	MetaVentas     decimal.Decimal `json:"meta_ventas"`
	VentasActuales decimal.Decimal `json:"ventas_actuales"`
	Progreso       decimal.Decimal `json:"progreso"` // porcentaje 0-100
	Faltante       decimal.Decimal `json:"faltante"`
}

// AlertaFactura factura vencida o próxima a vencer.
type AlertaFactura struct {
	FacturaID       string          `json:"factura_id"`
	Pedido          string          `json:"pedido"`
	Cliente         string          `json:"cliente"`
	Valor           decimal.Decimal `json:"valor"`
	Comision        decimal.Decimal `json:"comision"`
	DiasVencimiento int             `json:"dias_vencimiento"` // negativo: ya vencida
	Nivel           string          `json:"nivel"`             // "vencida" | "por_vencer"
}
