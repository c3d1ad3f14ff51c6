package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria groups products for browsing and reports. Deletion is a hard
// delete without cascade: products that pointed at it keep the dangling id
// and reads resolve the name to "N/A".
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"size:80;uniqueIndex;not null"`
	Descripcion *string   `gorm:"size:250"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Categoria) TableName() string { return "categorias" }
