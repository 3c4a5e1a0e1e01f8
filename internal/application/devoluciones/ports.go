package devoluciones

import (
	"context"

	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

// TxRunner ejecuta fn con repos atados a una misma transacción: la escritura
// de la devolución y el recomputo de la factura deben ser atómicos.
type TxRunner interface {
	RunDevolucion(ctx context.Context, fn func(
		facturaRepo repository.FacturaRepository,
		devolucionRepo repository.DevolucionRepository,
	) error) error
}
