package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is the catalog entry that owns the authoritative stock counter.
// Stock only changes through the guarded repository mutations that run inside
// sale / movement transactions, never through a plain Save.
//
// CategoriaID and ProveedorID are weak references on purpose: categories and
// suppliers can be hard-deleted while products still point at them, and reads
// resolve the missing name as "N/A". No FK constraint, no association field.
type Producto struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre           string    `gorm:"index;not null"`
	Descripcion      *string
	CategoriaID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProveedorID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Precio           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Costo            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock            int             `gorm:"not null;default:0"`
	StockMinimo      int             `gorm:"not null;default:5"`
	FechaVencimiento *time.Time
	CodigoBarras     *string `gorm:"uniqueIndex"`
	Activo           bool    `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Producto) TableName() string { return "productos" }

// BajoStock reports whether the product is at or below its reorder threshold.
func (p *Producto) BajoStock() bool { return p.Stock <= p.StockMinimo }
