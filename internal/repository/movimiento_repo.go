package repository

import (
	"context"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/model"

	"gorm.io/gorm"
)

// MovimientoRepository persists the append-only inventory ledger. There is
// deliberately no update or delete: movements are historical facts.
type MovimientoRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error
	List(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error)
	ListRango(ctx context.Context, desde, hasta time.Time) ([]model.MovimientoInventario, error)
	DB() *gorm.DB
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository {
	return &movimientoRepo{db: db}
}

func (r *movimientoRepo) CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error {
	return tx.Create(m).Error
}

func (r *movimientoRepo) List(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoInventario{})
	if filter.ProductoID != "" {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var movimientos []model.MovimientoInventario
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&movimientos).Error
	return movimientos, total, err
}

func (r *movimientoRepo) ListRango(ctx context.Context, desde, hasta time.Time) ([]model.MovimientoInventario, error) {
	var movimientos []model.MovimientoInventario
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", desde, hasta).
		Order("created_at DESC").
		Find(&movimientos).Error
	return movimientos, err
}

func (r *movimientoRepo) DB() *gorm.DB { return r.db }
