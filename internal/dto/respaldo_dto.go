package dto

import "farmapos/internal/model"

// Respaldo is the whole-dataset JSON snapshot served by GET /v1/respaldo and
// accepted back by POST /v1/respaldo/restaurar. Collections carry the gorm
// models directly; the snapshot is meant to round-trip, not to be pretty.
type Respaldo struct {
	FechaRespaldo string                       `json:"fecha_respaldo"` // RFC 3339
	Categorias    []model.Categoria            `json:"categorias"`
	Proveedores   []model.Proveedor            `json:"proveedores"`
	Productos     []model.Producto             `json:"productos"`
	Clientes      []model.Cliente              `json:"clientes"`
	Ventas        []model.Venta                `json:"ventas"`
	Movimientos   []model.MovimientoInventario `json:"movimientos"`
}

type RestaurarResponse struct {
	Categorias  int `json:"categorias"`
	Proveedores int `json:"proveedores"`
	Productos   int `json:"productos"`
	Clientes    int `json:"clientes"`
	Ventas      int `json:"ventas"`
	Movimientos int `json:"movimientos"`
}
