package repository

import "github.com/JuanMV14/comisiones-sub000/internal/domain/entity"

// FacturaFiltro restringe el listado de facturas.
type FacturaFiltro struct {
	Cliente    string // coincidencia parcial, sin distinguir mayúsculas
	MesFactura string // "YYYY-MM" sobre fecha_factura
	Pagado     *bool
}

// FacturaRepository define el puerto de persistencia para Factura.
type FacturaRepository interface {
	Create(f *entity.Factura) error
	// Update persiste todos los campos mutables de la factura (financieros,
	// flags, estado de pago y comisiones).
	Update(f *entity.Factura) error
	GetByID(id string) (*entity.Factura, error)
	List(filtro FacturaFiltro) ([]*entity.Factura, error)
}
