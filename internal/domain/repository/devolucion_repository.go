package repository

import (
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DevolucionFiltro restringe el listado de devoluciones.
type DevolucionFiltro struct {
	FacturaID      string
	Mes            string // "YYYY-MM" sobre fecha_devolucion
	AfectaComision *bool
}

// DevolucionRepository define el puerto de persistencia para Devolucion.
type DevolucionRepository interface {
	Create(d *entity.Devolucion) error
	Update(d *entity.Devolucion) error
	Delete(id string) error
	GetByID(id string) (*entity.Devolucion, error)
	List(filtro DevolucionFiltro) ([]*entity.Devolucion, error)
	// TotalAfectaComision suma valor_devuelto de las devoluciones de la
	// factura con afecta_comision = true. Es el total corriente del que se
	// recalcula la comisión ajustada.
	TotalAfectaComision(facturaID string) (decimal.Decimal, error)
}
