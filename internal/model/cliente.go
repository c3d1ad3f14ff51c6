package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is an optional counterparty on a sale. Sales snapshot the name at
// commit time, so deleting a cliente never alters historical sales.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Telefono  string    `gorm:"not null"`
	Email     *string
	Direccion *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
