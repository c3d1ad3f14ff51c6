package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor is a supplier of products. Same deletion semantics as Categoria:
// hard delete without cascade, dependent products keep the dangling reference.
type Proveedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"size:120;not null"`
	Contacto  *string   `gorm:"size:120"`
	Telefono  *string   `gorm:"size:30"`
	Email     *string   `gorm:"size:120"`
	Direccion *string   `gorm:"size:250"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Proveedor) TableName() string { return "proveedores" }
