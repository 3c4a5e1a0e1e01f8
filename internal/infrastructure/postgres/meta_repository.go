package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

var _ repository.MetaRepository = (*MetaRepo)(nil)

// MetaRepo implementación de MetaRepository (usable con pool o tx).
type MetaRepo struct {
	q Querier
}

// NewMetaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMetaRepository(q Querier) *MetaRepo {
	return &MetaRepo{q: q}
}

// GetByMes obtiene la meta de un mes "YYYY-MM". Devuelve (nil, nil) si no hay.
func (r *MetaRepo) GetByMes(mes string) (*entity.Meta, error) {
	query := `
		SELECT id, mes, meta_ventas, meta_clientes, created_at, updated_at
		FROM metas WHERE mes = $1`
	var m entity.Meta
	err := r.q.QueryRow(context.Background(), query, mes).Scan(
		&m.ID, &m.Mes, &m.MetaVentas, &m.MetaClientes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meta: %w", err)
	}
	return &m, nil
}

// Upsert inserta o actualiza la meta del mes (único registro por mes).
func (r *MetaRepo) Upsert(meta *entity.Meta) error {
	if meta.ID == "" {
		meta.ID = uuid.New().String()
	}
	query := `
		INSERT INTO metas (id, mes, meta_ventas, meta_clientes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (mes)
		DO UPDATE SET meta_ventas = EXCLUDED.meta_ventas,
		              meta_clientes = EXCLUDED.meta_clientes,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		meta.ID, meta.Mes, meta.MetaVentas, meta.MetaClientes, meta.CreatedAt, meta.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert meta: %w", err)
	}
	return nil
}
