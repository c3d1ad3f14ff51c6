package dto

import "github.com/shopspring/decimal"

// RangoFilter is the shared start/end filter for report endpoints.
// Export=csv streams the report as a CSV attachment instead of JSON.
type RangoFilter struct {
	FechaInicio string `form:"fecha_inicio"` // YYYY-MM-DD
	FechaFin    string `form:"fecha_fin"`    // YYYY-MM-DD
	Export      string `form:"export"`       // "" | "csv"
}

type PorVencerFilter struct {
	Dias   int    `form:"dias,default=30" validate:"min=1,max=365"`
	Export string `form:"export"`
}

// ReporteVentas aggregates the sales of a period plus the raw rows.
type ReporteVentas struct {
	FechaInicio    string          `json:"fecha_inicio"`
	FechaFin       string          `json:"fecha_fin"`
	TotalVentas    decimal.Decimal `json:"total_ventas"`
	CantidadVentas int64           `json:"cantidad_ventas"`
	Ventas         []VentaResponse `json:"ventas"`
}

// ReporteInventarioItem is one product row of the inventory valuation report.
type ReporteInventarioItem struct {
	ProductoID      string          `json:"producto_id"`
	Nombre          string          `json:"nombre"`
	CategoriaNombre string          `json:"categoria_nombre"`
	Stock           int             `json:"stock"`
	StockMinimo     int             `json:"stock_minimo"`
	Costo           decimal.Decimal `json:"costo"`
	Precio          decimal.Decimal `json:"precio"`
	ValorCosto      decimal.Decimal `json:"valor_costo"` // stock × costo
	BajoStock       bool            `json:"bajo_stock"`
}

type ReporteInventario struct {
	Productos  []ReporteInventarioItem `json:"productos"`
	ValorTotal decimal.Decimal         `json:"valor_total"`
}

// TransaccionRow is one flattened sale for the transactions report.
type TransaccionRow struct {
	ID            string          `json:"id"`
	Fecha         string          `json:"fecha"`
	ClienteNombre string          `json:"cliente_nombre"`
	UsuarioNombre string          `json:"usuario_nombre"`
	MetodoPago    string          `json:"metodo_pago"`
	Articulos     int             `json:"articulos"`
	Total         decimal.Decimal `json:"total"`
}

// ProductoPorVencer is one row of the expiring-products report.
type ProductoPorVencer struct {
	ProductoID       string `json:"producto_id"`
	Nombre           string `json:"nombre"`
	Stock            int    `json:"stock"`
	FechaVencimiento string `json:"fecha_vencimiento"`
	DiasRestantes    int    `json:"dias_restantes"`
}
