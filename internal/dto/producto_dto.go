package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre           string          `json:"nombre"            validate:"required,min=2,max=120"`
	Descripcion      *string         `json:"descripcion"`
	CategoriaID      string          `json:"categoria_id"      validate:"required,uuid"`
	ProveedorID      string          `json:"proveedor_id"      validate:"required,uuid"`
	Precio           decimal.Decimal `json:"precio"            validate:"required,min=0"`
	Costo            decimal.Decimal `json:"costo"             validate:"min=0"`
	Stock            int             `json:"stock"             validate:"min=0"`
	StockMinimo      int             `json:"stock_minimo"      validate:"min=0"`
	FechaVencimiento *string         `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	CodigoBarras     *string         `json:"codigo_barras"     validate:"omitempty,min=8,max=18"`
}

// ActualizarProductoRequest deliberately has no stock field: after creation,
// stock only changes through inventory movements and sales.
type ActualizarProductoRequest struct {
	Nombre           *string          `json:"nombre"            validate:"omitempty,min=2,max=120"`
	Descripcion      *string          `json:"descripcion"`
	CategoriaID      *string          `json:"categoria_id"      validate:"omitempty,uuid"`
	ProveedorID      *string          `json:"proveedor_id"      validate:"omitempty,uuid"`
	Precio           *decimal.Decimal `json:"precio"            validate:"omitempty,min=0"`
	Costo            *decimal.Decimal `json:"costo"             validate:"omitempty,min=0"`
	StockMinimo      *int             `json:"stock_minimo"      validate:"omitempty,min=0"`
	FechaVencimiento *string          `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	CodigoBarras     *string          `json:"codigo_barras"     validate:"omitempty,min=8,max=18"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	CategoriaID string `form:"categoria_id"`
	ProveedorID string `form:"proveedor_id"`
	Activo      string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID               string          `json:"id"`
	Nombre           string          `json:"nombre"`
	Descripcion      *string         `json:"descripcion"`
	CategoriaID      string          `json:"categoria_id"`
	CategoriaNombre  string          `json:"categoria_nombre"`
	ProveedorID      string          `json:"proveedor_id"`
	ProveedorNombre  string          `json:"proveedor_nombre"`
	Precio           decimal.Decimal `json:"precio"`
	Costo            decimal.Decimal `json:"costo"`
	Stock            int             `json:"stock"`
	StockMinimo      int             `json:"stock_minimo"`
	FechaVencimiento *string         `json:"fecha_vencimiento"`
	CodigoBarras     *string         `json:"codigo_barras"`
	Activo           bool            `json:"activo"`
	CreatedAt        string          `json:"created_at"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
