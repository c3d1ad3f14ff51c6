package dto

import "github.com/shopspring/decimal"

// DashboardStats is the summary card set for the dashboard landing page.
type DashboardStats struct {
	VentasHoy          decimal.Decimal `json:"ventas_hoy"`
	CantidadVentasHoy  int64           `json:"cantidad_ventas_hoy"`
	VentasMes          decimal.Decimal `json:"ventas_mes"`
	ProductosActivos   int64           `json:"productos_activos"`
	ProductosBajoStock int64           `json:"productos_bajo_stock"`
	Clientes           int64           `json:"clientes"`
}

// VentaDiaria is one point of the last-30-days sales series.
type VentaDiaria struct {
	Fecha    string          `json:"fecha"` // YYYY-MM-DD
	Total    decimal.Decimal `json:"total"`
	Cantidad int64           `json:"cantidad"`
}

// TopProducto is one row of the top-sellers ranking.
type TopProducto struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	Unidades       int64           `json:"unidades"`
	Total          decimal.Decimal `json:"total"`
}
