package repository

import (
	"context"

	"farmapos/internal/model"

	"gorm.io/gorm"
)

// Snapshot carries every collection of the system for backup/restore.
type Snapshot struct {
	Categorias  []model.Categoria
	Proveedores []model.Proveedor
	Productos   []model.Producto
	Clientes    []model.Cliente
	Ventas      []model.Venta
	Movimientos []model.MovimientoInventario
}

// RespaldoRepository dumps and replaces the whole dataset. Restaurar runs in
// a single transaction: either the full snapshot lands or nothing changes.
type RespaldoRepository interface {
	Exportar(ctx context.Context) (*Snapshot, error)
	Restaurar(ctx context.Context, s *Snapshot) error
}

type respaldoRepo struct{ db *gorm.DB }

func NewRespaldoRepository(db *gorm.DB) RespaldoRepository { return &respaldoRepo{db: db} }

func (r *respaldoRepo) Exportar(ctx context.Context) (*Snapshot, error) {
	s := &Snapshot{}
	db := r.db.WithContext(ctx)

	if err := db.Order("created_at ASC").Find(&s.Categorias).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at ASC").Find(&s.Proveedores).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at ASC").Find(&s.Productos).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at ASC").Find(&s.Clientes).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Detalles").Order("created_at ASC").Find(&s.Ventas).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at ASC").Find(&s.Movimientos).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *respaldoRepo) Restaurar(ctx context.Context, s *Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children before parents on the way out.
		for _, table := range []string{
			"venta_detalles", "ventas", "movimientos_inventario",
			"productos", "clientes", "proveedores", "categorias",
		} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}

		const batch = 500
		if len(s.Categorias) > 0 {
			if err := tx.CreateInBatches(s.Categorias, batch).Error; err != nil {
				return err
			}
		}
		if len(s.Proveedores) > 0 {
			if err := tx.CreateInBatches(s.Proveedores, batch).Error; err != nil {
				return err
			}
		}
		if len(s.Productos) > 0 {
			if err := tx.CreateInBatches(s.Productos, batch).Error; err != nil {
				return err
			}
		}
		if len(s.Clientes) > 0 {
			if err := tx.CreateInBatches(s.Clientes, batch).Error; err != nil {
				return err
			}
		}
		if len(s.Ventas) > 0 {
			if err := tx.CreateInBatches(s.Ventas, batch).Error; err != nil {
				return err
			}
		}
		if len(s.Movimientos) > 0 {
			if err := tx.CreateInBatches(s.Movimientos, batch).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
