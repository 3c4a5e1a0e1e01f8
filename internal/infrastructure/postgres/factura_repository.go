package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

var _ repository.FacturaRepository = (*FacturaRepo)(nil)

// Columnas de la tabla comisiones en el orden en que se escanean. Los nombres
// siguen el esquema histórico que consumen la UI y los reportes.
const facturaColumns = `
	id, pedido, cliente, factura,
	valor, valor_flete, valor_neto, iva, base_comision, porcentaje,
	comision, comision_ajustada, valor_descuento_pesos, valor_devuelto,
	descuento_adicional, descuento_aplicado,
	cliente_propio, descuento_pie_factura, descuentos_multiples,
	condicion_especial, comision_perdida, razon_perdida,
	fecha_factura, fecha_pago_est, fecha_pago_max, fecha_pago_real,
	dias_pago_real, dias_vencimiento, pagado,
	metodo_pago, referencia, ciudad_destino, recogida_local, comprobante_url,
	created_at, updated_at`

// FacturaRepo implementación de FacturaRepository (usable con pool o tx).
type FacturaRepo struct {
	q Querier
}

// NewFacturaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFacturaRepository(q Querier) *FacturaRepo {
	return &FacturaRepo{q: q}
}

// Create persiste una factura con todos sus campos derivados ya calculados.
func (r *FacturaRepo) Create(f *entity.Factura) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	query := `
		INSERT INTO comisiones (
			id, pedido, cliente, factura,
			valor, valor_flete, valor_neto, iva, base_comision, porcentaje,
			comision, comision_ajustada, valor_descuento_pesos, valor_devuelto,
			descuento_adicional, descuento_aplicado,
			cliente_propio, descuento_pie_factura, descuentos_multiples,
			condicion_especial, comision_perdida, razon_perdida,
			fecha_factura, fecha_pago_est, fecha_pago_max, fecha_pago_real,
			dias_pago_real, dias_vencimiento, pagado,
			metodo_pago, referencia, ciudad_destino, recogida_local, comprobante_url,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		        $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		        $31, $32, $33, $34, $35, $36)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.Pedido, f.Cliente, f.Factura,
		f.Valor, f.ValorFlete, f.ValorNeto, f.IVA, f.BaseComision, f.Porcentaje,
		f.Comision, f.ComisionAjustada, f.ValorDescuentoPesos, f.ValorDevuelto,
		f.DescuentoAdicional, f.DescuentoAplicado,
		f.ClientePropio, f.DescuentoPieFactura, f.DescuentosMultiples,
		f.CondicionEspecial, f.ComisionPerdida, nullIfEmpty(f.RazonPerdida),
		f.FechaFactura, f.FechaPagoEst, f.FechaPagoMax, f.FechaPagoReal,
		f.DiasPagoReal, f.DiasVencimiento, f.Pagado,
		nullIfEmpty(f.MetodoPago), nullIfEmpty(f.Referencia), nullIfEmpty(f.CiudadDestino),
		f.RecogidaLocal, nullIfEmpty(f.ComprobanteURL),
		f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("factura ya existe: %w", err)
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// Update persiste todos los campos mutables de la factura.
func (r *FacturaRepo) Update(f *entity.Factura) error {
	query := `
		UPDATE comisiones SET
			pedido = $2, cliente = $3, factura = $4,
			valor = $5, valor_flete = $6, valor_neto = $7, iva = $8,
			base_comision = $9, porcentaje = $10, comision = $11,
			comision_ajustada = $12, valor_descuento_pesos = $13, valor_devuelto = $14,
			descuento_adicional = $15, descuento_aplicado = $16,
			cliente_propio = $17, descuento_pie_factura = $18, descuentos_multiples = $19,
			condicion_especial = $20, comision_perdida = $21, razon_perdida = $22,
			fecha_factura = $23, fecha_pago_est = $24, fecha_pago_max = $25,
			fecha_pago_real = $26, dias_pago_real = $27, dias_vencimiento = $28,
			pagado = $29, metodo_pago = $30, referencia = $31, ciudad_destino = $32,
			recogida_local = $33, comprobante_url = $34, updated_at = $35
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.Pedido, f.Cliente, f.Factura,
		f.Valor, f.ValorFlete, f.ValorNeto, f.IVA,
		f.BaseComision, f.Porcentaje, f.Comision,
		f.ComisionAjustada, f.ValorDescuentoPesos, f.ValorDevuelto,
		f.DescuentoAdicional, f.DescuentoAplicado,
		f.ClientePropio, f.DescuentoPieFactura, f.DescuentosMultiples,
		f.CondicionEspecial, f.ComisionPerdida, nullIfEmpty(f.RazonPerdida),
		f.FechaFactura, f.FechaPagoEst, f.FechaPagoMax,
		f.FechaPagoReal, f.DiasPagoReal, f.DiasVencimiento,
		f.Pagado, nullIfEmpty(f.MetodoPago), nullIfEmpty(f.Referencia), nullIfEmpty(f.CiudadDestino),
		f.RecogidaLocal, nullIfEmpty(f.ComprobanteURL), f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update factura: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. Devuelve (nil, nil) si no existe.
func (r *FacturaRepo) GetByID(id string) (*entity.Factura, error) {
	query := `SELECT ` + facturaColumns + ` FROM comisiones WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	f, err := scanFactura(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return f, nil
}

// List devuelve las facturas que cumplen el filtro, más recientes primero.
func (r *FacturaRepo) List(filtro repository.FacturaFiltro) ([]*entity.Factura, error) {
	var conds []string
	var args []any
	if filtro.Cliente != "" {
		args = append(args, "%"+filtro.Cliente+"%")
		conds = append(conds, fmt.Sprintf("cliente ILIKE $%d", len(args)))
	}
	if filtro.MesFactura != "" {
		args = append(args, filtro.MesFactura)
		conds = append(conds, fmt.Sprintf("to_char(fecha_factura, 'YYYY-MM') = $%d", len(args)))
	}
	if filtro.Pagado != nil {
		args = append(args, *filtro.Pagado)
		conds = append(conds, fmt.Sprintf("pagado = $%d", len(args)))
	}
	query := `SELECT ` + facturaColumns + ` FROM comisiones`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY fecha_factura DESC, created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Factura
	for rows.Next() {
		f, err := scanFactura(rows)
		if err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func scanFactura(row pgx.Row) (*entity.Factura, error) {
	var f entity.Factura
	var razonPerdida, metodoPago, referencia, ciudadDestino, comprobanteURL *string
	err := row.Scan(
		&f.ID, &f.Pedido, &f.Cliente, &f.Factura,
		&f.Valor, &f.ValorFlete, &f.ValorNeto, &f.IVA, &f.BaseComision, &f.Porcentaje,
		&f.Comision, &f.ComisionAjustada, &f.ValorDescuentoPesos, &f.ValorDevuelto,
		&f.DescuentoAdicional, &f.DescuentoAplicado,
		&f.ClientePropio, &f.DescuentoPieFactura, &f.DescuentosMultiples,
		&f.CondicionEspecial, &f.ComisionPerdida, &razonPerdida,
		&f.FechaFactura, &f.FechaPagoEst, &f.FechaPagoMax, &f.FechaPagoReal,
		&f.DiasPagoReal, &f.DiasVencimiento, &f.Pagado,
		&metodoPago, &referencia, &ciudadDestino, &f.RecogidaLocal, &comprobanteURL,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	derefStr := func(p *string) string {
		if p != nil {
			return *p
		}
		return ""
	}
	f.RazonPerdida = derefStr(razonPerdida)
	f.MetodoPago = derefStr(metodoPago)
	f.Referencia = derefStr(referencia)
	f.CiudadDestino = derefStr(ciudadDestino)
	f.ComprobanteURL = derefStr(comprobanteURL)
	return &f, nil
}
