package dto

import "github.com/shopspring/decimal"

type AgregarItemRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
}

type FijarCantidadRequest struct {
	// Cantidad <= 0 removes the line.
	Cantidad int `json:"cantidad"`
}

// ConfirmarCarritoRequest commits the session cart as a sale.
type ConfirmarCarritoRequest struct {
	ClienteID  *string         `json:"cliente_id"  validate:"omitempty,uuid"`
	MetodoPago string          `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta transferencia"`
	Impuesto   decimal.Decimal `json:"impuesto"    validate:"min=0"`
	Descuento  decimal.Decimal `json:"descuento"   validate:"min=0"`
}

type ItemCarritoResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       int             `json:"cantidad"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CarritoResponse struct {
	Items    []ItemCarritoResponse `json:"items"`
	Subtotal decimal.Decimal       `json:"subtotal"`
}
