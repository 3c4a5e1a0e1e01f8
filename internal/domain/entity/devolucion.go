package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Devolucion registra la devolución parcial o total de una factura.
// ValorDevuelto se almacena con IVA incluido; el motor de recomputo lo
// convierte a neto (÷ 1.19) antes de restar de la base de comisión.
type Devolucion struct {
	ID             string
	FacturaID      string
	ValorDevuelto  decimal.Decimal
	FechaDevolucion time.Time
	Motivo         string
	AfectaComision bool // false: la devolución no reduce la base de comisión
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
