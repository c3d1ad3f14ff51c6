package model

import "errors"

// Sentinel errors shared by the cart, the repositories and the services.
var (
	// ErrStockInsuficiente is returned whenever an operation would leave a
	// product with negative stock: cart adds beyond the live stock, guarded
	// decrements that affect zero rows, salida movements larger than stock.
	ErrStockInsuficiente = errors.New("stock insuficiente")

	// ErrItemNoEncontrado is returned when a cart operation targets a
	// product that has no line in the session cart.
	ErrItemNoEncontrado = errors.New("el producto no está en el carrito")
)
