package service

import (
	"context"
	"fmt"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const masVendidosLimit = 20

// ReporteService builds the read-only reports. All of them work off committed
// data; none of them mutate anything.
type ReporteService interface {
	Ventas(ctx context.Context, filter dto.RangoFilter) (*dto.ReporteVentas, error)
	Transacciones(ctx context.Context, filter dto.RangoFilter) ([]dto.TransaccionRow, error)
	Movimientos(ctx context.Context, filter dto.RangoFilter) ([]dto.MovimientoResponse, error)
	Inventario(ctx context.Context) (*dto.ReporteInventario, error)
	PorVencer(ctx context.Context, dias int) ([]dto.ProductoPorVencer, error)
	MasVendidos(ctx context.Context) ([]dto.TopProducto, error)
}

type reporteService struct {
	ventaRepo      repository.VentaRepository
	movimientoRepo repository.MovimientoRepository
	productoRepo   repository.ProductoRepository
	categoriaRepo  repository.CategoriaRepository
	reporteRepo    repository.ReporteRepository
}

func NewReporteService(
	ventaRepo repository.VentaRepository,
	movimientoRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	reporteRepo repository.ReporteRepository,
) ReporteService {
	return &reporteService{
		ventaRepo:      ventaRepo,
		movimientoRepo: movimientoRepo,
		productoRepo:   productoRepo,
		categoriaRepo:  categoriaRepo,
		reporteRepo:    reporteRepo,
	}
}

// parseRango resolves the optional YYYY-MM-DD pair. Defaults: last 30 days,
// fecha_fin inclusive (the upper bound is midnight of the following day).
func parseRango(inicio, fin string) (time.Time, time.Time, error) {
	now := time.Now()
	hasta := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	desde := hasta.AddDate(0, 0, -31)

	if inicio != "" {
		t, err := time.Parse("2006-01-02", inicio)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("fecha_inicio inválida %q: se espera YYYY-MM-DD", inicio)
		}
		desde = t
	}
	if fin != "" {
		t, err := time.Parse("2006-01-02", fin)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("fecha_fin inválida %q: se espera YYYY-MM-DD", fin)
		}
		hasta = t.AddDate(0, 0, 1)
	}
	return desde, hasta, nil
}

func (s *reporteService) Ventas(ctx context.Context, filter dto.RangoFilter) (*dto.ReporteVentas, error) {
	desde, hasta, err := parseRango(filter.FechaInicio, filter.FechaFin)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.ListRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	rows := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		total = total.Add(ventas[i].Total)
		rows = append(rows, *ventaToResponse(&ventas[i]))
	}
	return &dto.ReporteVentas{
		FechaInicio:    desde.Format("2006-01-02"),
		FechaFin:       hasta.AddDate(0, 0, -1).Format("2006-01-02"),
		TotalVentas:    total,
		CantidadVentas: int64(len(ventas)),
		Ventas:         rows,
	}, nil
}

func (s *reporteService) Transacciones(ctx context.Context, filter dto.RangoFilter) ([]dto.TransaccionRow, error) {
	desde, hasta, err := parseRango(filter.FechaInicio, filter.FechaFin)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.ListRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.TransaccionRow, 0, len(ventas))
	for _, v := range ventas {
		articulos := 0
		for _, d := range v.Detalles {
			articulos += d.Cantidad
		}
		rows = append(rows, dto.TransaccionRow{
			ID:            v.ID.String(),
			Fecha:         v.CreatedAt.Format("2006-01-02T15:04:05Z"),
			ClienteNombre: v.ClienteNombre,
			UsuarioNombre: v.UsuarioNombre,
			MetodoPago:    v.MetodoPago,
			Articulos:     articulos,
			Total:         v.Total,
		})
	}
	return rows, nil
}

func (s *reporteService) Movimientos(ctx context.Context, filter dto.RangoFilter) ([]dto.MovimientoResponse, error) {
	desde, hasta, err := parseRango(filter.FechaInicio, filter.FechaFin)
	if err != nil {
		return nil, err
	}
	movimientos, err := s.movimientoRepo.ListRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.MovimientoResponse, 0, len(movimientos))
	for i := range movimientos {
		rows = append(rows, movimientoToResponse(&movimientos[i]))
	}
	return rows, nil
}

func (s *reporteService) Inventario(ctx context.Context) (*dto.ReporteInventario, error) {
	productos, err := s.productoRepo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}

	categorias := make(map[uuid.UUID]string)
	if list, err := s.categoriaRepo.List(ctx); err == nil {
		for _, c := range list {
			categorias[c.ID] = c.Nombre
		}
	}

	valorTotal := decimal.Zero
	items := make([]dto.ReporteInventarioItem, 0, len(productos))
	for _, p := range productos {
		categoriaNombre, ok := categorias[p.CategoriaID]
		if !ok {
			categoriaNombre = NombreNA
		}
		valor := p.Costo.Mul(decimal.NewFromInt(int64(p.Stock)))
		valorTotal = valorTotal.Add(valor)
		items = append(items, dto.ReporteInventarioItem{
			ProductoID:      p.ID.String(),
			Nombre:          p.Nombre,
			CategoriaNombre: categoriaNombre,
			Stock:           p.Stock,
			StockMinimo:     p.StockMinimo,
			Costo:           p.Costo,
			Precio:          p.Precio,
			ValorCosto:      valor,
			BajoStock:       p.BajoStock(),
		})
	}
	return &dto.ReporteInventario{Productos: items, ValorTotal: valorTotal}, nil
}

func (s *reporteService) PorVencer(ctx context.Context, dias int) ([]dto.ProductoPorVencer, error) {
	if dias < 1 {
		dias = 30
	}
	now := time.Now()
	hasta := now.AddDate(0, 0, dias)
	productos, err := s.productoRepo.ListPorVencer(ctx, hasta)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ProductoPorVencer, 0, len(productos))
	for _, p := range productos {
		if p.FechaVencimiento == nil {
			continue
		}
		restantes := int(time.Until(*p.FechaVencimiento).Hours() / 24)
		rows = append(rows, dto.ProductoPorVencer{
			ProductoID:       p.ID.String(),
			Nombre:           p.Nombre,
			Stock:            p.Stock,
			FechaVencimiento: p.FechaVencimiento.Format("2006-01-02"),
			DiasRestantes:    restantes,
		})
	}
	return rows, nil
}

func (s *reporteService) MasVendidos(ctx context.Context) ([]dto.TopProducto, error) {
	rows, err := s.reporteRepo.TopProductos(ctx, masVendidosLimit)
	if err != nil {
		return nil, err
	}
	top := make([]dto.TopProducto, 0, len(rows))
	for _, r := range rows {
		top = append(top, dto.TopProducto{
			ProductoID:     r.ProductoID,
			ProductoNombre: r.ProductoNombre,
			Unidades:       r.Unidades,
			Total:          r.Total,
		})
	}
	return top, nil
}
