package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement types. Cantidad is always positive; the type carries the direction.
// An ajuste sets the stock to Cantidad as an absolute target.
const (
	TipoEntrada = "entrada"
	TipoSalida  = "salida"
	TipoAjuste  = "ajuste"
)

// TipoMovimientoValido reports whether t is a known movement type.
func TipoMovimientoValido(t string) bool {
	return t == TipoEntrada || t == TipoSalida || t == TipoAjuste
}

// MovimientoInventario is the append-only stock ledger. One row per stock
// mutation, created in the same transaction as the mutation itself, with
// before/after snapshots so the ledger replays cleanly.
type MovimientoInventario struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductoNombre string     `gorm:"not null"`
	Tipo           string     `gorm:"not null;index"`
	Cantidad       int        `gorm:"not null"`
	StockAnterior  int        `gorm:"not null"`
	StockNuevo     int        `gorm:"not null"`
	Motivo         string     `gorm:"not null"`
	UsuarioID      uuid.UUID  `gorm:"type:uuid;not null"`
	UsuarioNombre  string     `gorm:"not null"`
	ReferenciaID   *uuid.UUID `gorm:"type:uuid"` // venta_id when the movement came from a sale
	CreatedAt      time.Time  `gorm:"index"`
}

// TableName overrides GORM's default pluralization.
func (MovimientoInventario) TableName() string { return "movimientos_inventario" }
