package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meta es el objetivo comercial de un mes (formato "YYYY-MM").
type Meta struct {
	ID           string
	Mes          string
	MetaVentas   decimal.Decimal
	MetaClientes int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
