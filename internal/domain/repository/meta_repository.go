package repository

import "github.com/JuanMV14/comisiones-sub000/internal/domain/entity"

// MetaRepository define el puerto de persistencia para la meta mensual.
type MetaRepository interface {
	GetByMes(mes string) (*entity.Meta, error)
	Upsert(meta *entity.Meta) error
}
