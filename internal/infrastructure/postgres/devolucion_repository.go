package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

var _ repository.DevolucionRepository = (*DevolucionRepo)(nil)

// DevolucionRepo implementación de DevolucionRepository (usable con pool o tx).
type DevolucionRepo struct {
	q Querier
}

// NewDevolucionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDevolucionRepository(q Querier) *DevolucionRepo {
	return &DevolucionRepo{q: q}
}

// Create persiste una devolución.
func (r *DevolucionRepo) Create(d *entity.Devolucion) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `
		INSERT INTO devoluciones (id, factura_id, valor_devuelto, fecha_devolucion, motivo, afecta_comision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.FacturaID, d.ValorDevuelto, d.FechaDevolucion,
		nullIfEmpty(d.Motivo), d.AfectaComision, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert devolucion: %w", err)
	}
	return nil
}

// Update actualiza los campos editables de una devolución.
func (r *DevolucionRepo) Update(d *entity.Devolucion) error {
	query := `
		UPDATE devoluciones
		SET valor_devuelto = $2, fecha_devolucion = $3, motivo = $4, afecta_comision = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.ValorDevuelto, d.FechaDevolucion, nullIfEmpty(d.Motivo), d.AfectaComision, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update devolucion: %w", err)
	}
	return nil
}

// Delete elimina una devolución por ID.
func (r *DevolucionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM devoluciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete devolucion: %w", err)
	}
	return nil
}

// GetByID obtiene una devolución por ID. Devuelve (nil, nil) si no existe.
func (r *DevolucionRepo) GetByID(id string) (*entity.Devolucion, error) {
	query := `
		SELECT id, factura_id, valor_devuelto, fecha_devolucion, COALESCE(motivo, ''), afecta_comision, created_at, updated_at
		FROM devoluciones WHERE id = $1`
	var d entity.Devolucion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.FacturaID, &d.ValorDevuelto, &d.FechaDevolucion,
		&d.Motivo, &d.AfectaComision, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get devolucion: %w", err)
	}
	return &d, nil
}

// List devuelve las devoluciones que cumplen el filtro, más recientes primero.
func (r *DevolucionRepo) List(filtro repository.DevolucionFiltro) ([]*entity.Devolucion, error) {
	var conds []string
	var args []any
	if filtro.FacturaID != "" {
		args = append(args, filtro.FacturaID)
		conds = append(conds, fmt.Sprintf("factura_id = $%d", len(args)))
	}
	if filtro.Mes != "" {
		args = append(args, filtro.Mes)
		conds = append(conds, fmt.Sprintf("to_char(fecha_devolucion, 'YYYY-MM') = $%d", len(args)))
	}
	if filtro.AfectaComision != nil {
		args = append(args, *filtro.AfectaComision)
		conds = append(conds, fmt.Sprintf("afecta_comision = $%d", len(args)))
	}
	query := `
		SELECT id, factura_id, valor_devuelto, fecha_devolucion, COALESCE(motivo, ''), afecta_comision, created_at, updated_at
		FROM devoluciones`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY fecha_devolucion DESC, created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list devoluciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Devolucion
	for rows.Next() {
		var d entity.Devolucion
		if err := rows.Scan(&d.ID, &d.FacturaID, &d.ValorDevuelto, &d.FechaDevolucion,
			&d.Motivo, &d.AfectaComision, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan devolucion: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// TotalAfectaComision suma valor_devuelto de las devoluciones con
// afecta_comision = true de una factura. El recomputo de la comisión parte
// siempre de este total, nunca de deltas incrementales.
func (r *DevolucionRepo) TotalAfectaComision(facturaID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(valor_devuelto), 0)
		FROM devoluciones WHERE factura_id = $1 AND afecta_comision = true`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, facturaID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total devoluciones: %w", err)
	}
	return total, nil
}
