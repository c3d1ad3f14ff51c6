package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DetalleVentaRequest is one sale line as submitted by the client. Subtotal
// must equal cantidad × precio_unitario exactly; the committer verifies it.
type DetalleVentaRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
	Subtotal       decimal.Decimal `json:"subtotal"        validate:"min=0"`
}

type RegistrarVentaRequest struct {
	ClienteID  *string               `json:"cliente_id"  validate:"omitempty,uuid"`
	MetodoPago string                `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta transferencia"`
	Impuesto   decimal.Decimal       `json:"impuesto"    validate:"min=0"`
	Descuento  decimal.Decimal       `json:"descuento"   validate:"min=0"`
	Detalles   []DetalleVentaRequest `json:"detalles"    validate:"required,min=1,dive"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	FechaInicio string `form:"fecha_inicio"` // YYYY-MM-DD
	FechaFin    string `form:"fecha_fin"`    // YYYY-MM-DD
	ClienteID   string `form:"cliente_id"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            string                 `json:"id"`
	ClienteID     *string                `json:"cliente_id"`
	ClienteNombre string                 `json:"cliente_nombre"`
	UsuarioID     string                 `json:"usuario_id"`
	UsuarioNombre string                 `json:"usuario_nombre"`
	MetodoPago    string                 `json:"metodo_pago"`
	Detalles      []DetalleVentaResponse `json:"detalles"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	Impuesto      decimal.Decimal        `json:"impuesto"`
	Descuento     decimal.Decimal        `json:"descuento"`
	Total         decimal.Decimal        `json:"total"`
	CreatedAt     string                 `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
