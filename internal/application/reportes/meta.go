package reportes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JuanMV14/comisiones-sub000/internal/domain"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
)

// ActualizarMeta crea o reemplaza la meta del mes indicado.
func (uc *UseCase) ActualizarMeta(mes string, metaVentas decimal.Decimal, metaClientes int) (*entity.Meta, error) {
	if _, err := time.Parse("2006-01", mes); err != nil {
		return nil, domain.ErrFechaInvalida
	}
	if metaVentas.IsNegative() || metaClientes < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	meta := &entity.Meta{
		ID:           uuid.New().String(),
		Mes:          mes,
		MetaVentas:   metaVentas,
		MetaClientes: metaClientes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.metaRepo.Upsert(meta); err != nil {
		return nil, err
	}
	return meta, nil
}
