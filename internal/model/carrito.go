package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CarritoItem is one cart line. Nombre and PrecioUnitario are snapshots taken
// when the line was created; the commit re-reads the live product anyway.
type CarritoItem struct {
	ProductoID     uuid.UUID       `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       int             `json:"cantidad"`
}

// Subtotal is cantidad × precio_unitario for this line.
func (i CarritoItem) Subtotal() decimal.Decimal {
	return i.PrecioUnitario.Mul(decimal.NewFromInt(int64(i.Cantidad)))
}

// Carrito is a session-scoped draft sale. It is never persisted in Postgres:
// carts live in Redis under a TTL, so an abandoned cart simply expires.
// Nothing here touches stock; quantities are only validated against the live
// stock passed in by the caller, and the real reservation happens at commit.
type Carrito struct {
	Items []CarritoItem `json:"items"`
}

// Agregar adds one unit of p, creating the line or incrementing an existing
// one. The resulting quantity must not exceed the product's live stock.
func (c *Carrito) Agregar(p *Producto) error {
	for idx := range c.Items {
		if c.Items[idx].ProductoID == p.ID {
			if c.Items[idx].Cantidad+1 > p.Stock {
				return ErrStockInsuficiente
			}
			c.Items[idx].Cantidad++
			return nil
		}
	}
	if p.Stock < 1 {
		return ErrStockInsuficiente
	}
	c.Items = append(c.Items, CarritoItem{
		ProductoID:     p.ID,
		ProductoNombre: p.Nombre,
		PrecioUnitario: p.Precio,
		Cantidad:       1,
	})
	return nil
}

// FijarCantidad sets an existing line to cantidad. cantidad <= 0 removes the
// line; cantidad above stockActual is rejected and the line keeps its
// previous quantity.
func (c *Carrito) FijarCantidad(productoID uuid.UUID, cantidad, stockActual int) error {
	for idx := range c.Items {
		if c.Items[idx].ProductoID != productoID {
			continue
		}
		if cantidad <= 0 {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return nil
		}
		if cantidad > stockActual {
			return ErrStockInsuficiente
		}
		c.Items[idx].Cantidad = cantidad
		return nil
	}
	return ErrItemNoEncontrado
}

// Quitar removes the line unconditionally. Removing an absent line is a no-op.
func (c *Carrito) Quitar(productoID uuid.UUID) {
	for idx := range c.Items {
		if c.Items[idx].ProductoID == productoID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return
		}
	}
}

// Subtotal is the sum of all line subtotals.
func (c *Carrito) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Total applies tax and discount on top of the subtotal.
func (c *Carrito) Total(impuesto, descuento decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(impuesto).Sub(descuento)
}

// Vacio reports whether the cart has no lines.
func (c *Carrito) Vacio() bool { return len(c.Items) == 0 }
