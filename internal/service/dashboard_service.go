package service

import (
	"context"
	"encoding/json"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/repository"

	"github.com/redis/go-redis/v9"
)

// Dashboard aggregates are cached briefly: no core invariant depends on their
// freshness, so 60 seconds of staleness buys a lot of saved GROUP BYs.
const (
	dashboardTTL          = 60 * time.Second
	cacheStatsKey         = "cache:dashboard:stats"
	cacheVentasDiariasKey = "cache:dashboard:ventas-diarias"
	cacheTopProductosKey  = "cache:dashboard:top-productos"

	ventasDiariasDias = 30
	topProductosLimit = 10
)

type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
	VentasDiarias(ctx context.Context) ([]dto.VentaDiaria, error)
	TopProductos(ctx context.Context) ([]dto.TopProducto, error)
}

type dashboardService struct {
	reporteRepo  repository.ReporteRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	rdb          *redis.Client
}

func NewDashboardService(
	reporteRepo repository.ReporteRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{
		reporteRepo:  reporteRepo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		rdb:          rdb,
	}
}

// cacheGet / cacheSet are best-effort JSON helpers; a nil client disables
// caching entirely (unit test mode).
func cacheGet(ctx context.Context, rdb *redis.Client, key string, out interface{}) bool {
	if rdb == nil {
		return false
	}
	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func cacheSet(ctx context.Context, rdb *redis.Client, key string, v interface{}, ttl time.Duration) {
	if rdb == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = rdb.Set(ctx, key, data, ttl).Err()
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	var cached dto.DashboardStats
	if cacheGet(ctx, s.rdb, cacheStatsKey, &cached) {
		return &cached, nil
	}

	now := time.Now()
	hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	mes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	manana := hoy.AddDate(0, 0, 1)

	ventasHoy, err := s.reporteRepo.TotalVentas(ctx, hoy, manana)
	if err != nil {
		return nil, err
	}
	ventasMes, err := s.reporteRepo.TotalVentas(ctx, mes, manana)
	if err != nil {
		return nil, err
	}
	activos, err := s.productoRepo.CountActivos(ctx)
	if err != nil {
		return nil, err
	}
	bajoStock, err := s.productoRepo.CountBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	clientes, err := s.clienteRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStats{
		VentasHoy:          ventasHoy.Total,
		CantidadVentasHoy:  ventasHoy.Cantidad,
		VentasMes:          ventasMes.Total,
		ProductosActivos:   activos,
		ProductosBajoStock: bajoStock,
		Clientes:           clientes,
	}
	cacheSet(ctx, s.rdb, cacheStatsKey, stats, dashboardTTL)
	return stats, nil
}

func (s *dashboardService) VentasDiarias(ctx context.Context) ([]dto.VentaDiaria, error) {
	var cached []dto.VentaDiaria
	if cacheGet(ctx, s.rdb, cacheVentasDiariasKey, &cached) {
		return cached, nil
	}

	rows, err := s.reporteRepo.VentasDiarias(ctx, ventasDiariasDias)
	if err != nil {
		return nil, err
	}
	serie := make([]dto.VentaDiaria, 0, len(rows))
	for _, r := range rows {
		serie = append(serie, dto.VentaDiaria{
			Fecha:    r.Fecha.Format("2006-01-02"),
			Total:    r.Total,
			Cantidad: r.Cantidad,
		})
	}
	cacheSet(ctx, s.rdb, cacheVentasDiariasKey, serie, dashboardTTL)
	return serie, nil
}

func (s *dashboardService) TopProductos(ctx context.Context) ([]dto.TopProducto, error) {
	var cached []dto.TopProducto
	if cacheGet(ctx, s.rdb, cacheTopProductosKey, &cached) {
		return cached, nil
	}

	rows, err := s.reporteRepo.TopProductos(ctx, topProductosLimit)
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
	cacheSet(ctx, s.rdb, cacheTopProductosKey, top, dashboardTTL)
	return top, nil
}
