package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaAgregada is the total and count of sales in a period.
type VentaAgregada struct {
	Total    decimal.Decimal
	Cantidad int64
}

// VentaDiariaRow is one day of the daily sales series.
type VentaDiariaRow struct {
	Fecha    time.Time
	Total    decimal.Decimal
	Cantidad int64
}

// TopProductoRow is one row of the units-sold ranking.
type TopProductoRow struct {
	ProductoID     string
	ProductoNombre string
	Unidades       int64
	Total          decimal.Decimal
}

// ReporteRepository holds the aggregate queries behind dashboards and
// reports. Read-only; plain SQL because GORM's query builder adds nothing
// over GROUP BY aggregates.
type ReporteRepository interface {
	TotalVentas(ctx context.Context, desde, hasta time.Time) (VentaAgregada, error)
	VentasDiarias(ctx context.Context, dias int) ([]VentaDiariaRow, error)
	TopProductos(ctx context.Context, limit int) ([]TopProductoRow, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) TotalVentas(ctx context.Context, desde, hasta time.Time) (VentaAgregada, error) {
	var row VentaAgregada
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total), 0) AS total, COUNT(*) AS cantidad
		   FROM ventas
		  WHERE created_at >= ? AND created_at < ?`, desde, hasta).
		Scan(&row).Error
	return row, err
}

func (r *reporteRepo) VentasDiarias(ctx context.Context, dias int) ([]VentaDiariaRow, error) {
	var rows []VentaDiariaRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT DATE(created_at) AS fecha,
		        COALESCE(SUM(total), 0) AS total,
		        COUNT(*) AS cantidad
		   FROM ventas
		  WHERE created_at >= CURRENT_DATE - make_interval(days => ?)
		  GROUP BY DATE(created_at)
		  ORDER BY fecha ASC`, dias).
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) TopProductos(ctx context.Context, limit int) ([]TopProductoRow, error) {
	var rows []TopProductoRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT d.producto_id AS producto_id,
		        MAX(d.producto_nombre) AS producto_nombre,
		        SUM(d.cantidad) AS unidades,
		        COALESCE(SUM(d.subtotal), 0) AS total
		   FROM venta_detalles d
		  GROUP BY d.producto_id
		  ORDER BY unidades DESC
		  LIMIT ?`, limit).
		Scan(&rows).Error
	return rows, err
}
