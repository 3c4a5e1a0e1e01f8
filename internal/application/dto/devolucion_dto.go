package dto

import "github.com/shopspring/decimal"

// CrearDevolucionRequest body para POST /api/devoluciones.
// ValorDevuelto viene con IVA incluido. AfectaComision por defecto es true;
// se usa puntero para distinguir "ausente" de "false".
type CrearDevolucionRequest struct {
	FacturaID       string          `json:"factura_id"`
	ValorDevuelto   decimal.Decimal `json:"valor_devuelto"`
	FechaDevolucion string          `json:"fecha_devolucion"` // ISO 8601
	Motivo          string          `json:"motivo,omitempty"`
	AfectaComision  *bool           `json:"afecta_comision,omitempty"`
}

// ActualizarDevolucionRequest body para PUT /api/devoluciones/:id.
type ActualizarDevolucionRequest struct {
	ValorDevuelto   *decimal.Decimal `json:"valor_devuelto,omitempty"`
	FechaDevolucion *string          `json:"fecha_devolucion,omitempty"`
	Motivo          *string          `json:"motivo,omitempty"`
	AfectaComision  *bool            `json:"afecta_comision,omitempty"`
}

// DevolucionResponse devolución con el estado resultante de la factura.
type DevolucionResponse struct {
	ID              string          `json:"id"`
	FacturaID       string          `json:"factura_id"`
	ValorDevuelto   decimal.Decimal `json:"valor_devuelto"`
	FechaDevolucion string          `json:"fecha_devolucion"`
	Motivo          string          `json:"motivo,omitempty"`
	AfectaComision  bool            `json:"afecta_comision"`

	// Estado de la factura tras el recomputo.
	FacturaValorDevuelto    decimal.Decimal `json:"factura_valor_devuelto"`
	FacturaComisionAjustada decimal.Decimal `json:"factura_comision_ajustada"`
}

// DevolucionListaResponse listado con totales.
type DevolucionListaResponse struct {
	Devoluciones       []DevolucionResponse `json:"devoluciones"`
	TotalDevoluciones  int                  `json:"total_devoluciones"`
	TotalValorDevuelto decimal.Decimal      `json:"total_valor_devuelto"`
}
