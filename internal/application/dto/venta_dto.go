package dto

import "github.com/shopspring/decimal"

// NuevaVentaRequest body para POST /api/ventas.
// Los nombres JSON coinciden con las columnas de la tabla comisiones; el
// frontend de reportes los consume tal cual.
type NuevaVentaRequest struct {
	Pedido              string          `json:"pedido"`
	Cliente             string          `json:"cliente"`
	Factura             string          `json:"factura,omitempty"` // si va vacío se genera FAC-<pedido>
	FechaFactura        string          `json:"fecha_factura"`     // ISO 8601
	Valor               decimal.Decimal `json:"valor"`             // bruto: incluye IVA y flete
	ValorFlete          decimal.Decimal `json:"valor_flete"`
	ClientePropio       bool            `json:"cliente_propio"`
	DescuentoPieFactura bool            `json:"descuento_pie_factura"`
	DescuentoAdicional  decimal.Decimal `json:"descuento_adicional"`
	CondicionEspecial   bool            `json:"condicion_especial"`
	CiudadDestino       string          `json:"ciudad_destino,omitempty"`
	RecogidaLocal       bool            `json:"recogida_local"`
	Referencia          string          `json:"referencia,omitempty"`
}

// EditarFacturaRequest body para PUT /api/ventas/:id. Solo los campos
// presentes se aplican; cualquier cambio en campos base dispara la
// rederivación completa de neto, iva, base y comisión.
type EditarFacturaRequest struct {
	Cliente             *string          `json:"cliente,omitempty"`
	Valor               *decimal.Decimal `json:"valor,omitempty"`
	ValorFlete          *decimal.Decimal `json:"valor_flete,omitempty"`
	ValorNeto           *decimal.Decimal `json:"valor_neto,omitempty"`
	IVA                 *decimal.Decimal `json:"iva,omitempty"`
	ClientePropio       *bool            `json:"cliente_propio,omitempty"`
	DescuentoPieFactura *bool            `json:"descuento_pie_factura,omitempty"`
	DescuentoAdicional  *decimal.Decimal `json:"descuento_adicional,omitempty"`
	CondicionEspecial   *bool            `json:"condicion_especial,omitempty"`
	FechaFactura        *string          `json:"fecha_factura,omitempty"`
}

// RegistrarPagoRequest body para POST /api/ventas/:id/pago.
// FechaPagoReal vacía equivale a hoy; DiasPagoReal ausente se deriva de
// fecha_pago_real - fecha_factura.
type RegistrarPagoRequest struct {
	FechaPagoReal string `json:"fecha_pago_real,omitempty"` // ISO 8601
	DiasPagoReal  *int   `json:"dias_pago_real,omitempty"`
	MetodoPago    string `json:"metodo_pago,omitempty"`
	Referencia    string `json:"referencia,omitempty"`
}

// FacturaResponse factura con todos los campos derivados.
type FacturaResponse struct {
	ID                  string          `json:"id"`
	Pedido              string          `json:"pedido"`
	Cliente             string          `json:"cliente"`
	Factura             string          `json:"factura"`
	FacturaBase         string          `json:"factura_base"`
	Valor               decimal.Decimal `json:"valor"`
	ValorFlete          decimal.Decimal `json:"valor_flete"`
	ValorNeto           decimal.Decimal `json:"valor_neto"`
	IVA                 decimal.Decimal `json:"iva"`
	BaseComision        decimal.Decimal `json:"base_comision"`
	Porcentaje          decimal.Decimal `json:"porcentaje"`
	Comision            decimal.Decimal `json:"comision"`
	ComisionAjustada    decimal.Decimal `json:"comision_ajustada"`
	ValorDevuelto       decimal.Decimal `json:"valor_devuelto"`
	DescuentoAdicional  decimal.Decimal `json:"descuento_adicional"`
	ClientePropio       bool            `json:"cliente_propio"`
	DescuentoPieFactura bool            `json:"descuento_pie_factura"`
	CondicionEspecial   bool            `json:"condicion_especial"`
	ComisionPerdida     bool            `json:"comision_perdida"`
	RazonPerdida        string          `json:"razon_perdida,omitempty"`
	FechaFactura        string          `json:"fecha_factura"`
	FechaPagoEst        string          `json:"fecha_pago_est"`
	FechaPagoMax        string          `json:"fecha_pago_max"`
	FechaPagoReal       string          `json:"fecha_pago_real,omitempty"`
	DiasPagoReal        *int            `json:"dias_pago_real,omitempty"`
	DiasVencimiento     *int            `json:"dias_vencimiento,omitempty"`
	Pagado              bool            `json:"pagado"`
	MetodoPago          string          `json:"metodo_pago,omitempty"`
}
