package service_test

import (
	"context"
	"testing"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"
	"farmapos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReporteRepo returns canned aggregates; the SQL behind them is covered by
// the integration suite.
type stubReporteRepo struct {
	totales map[string]repository.VentaAgregada // keyed by desde date
	diarias []repository.VentaDiariaRow
	top     []repository.TopProductoRow
}

func (r *stubReporteRepo) TotalVentas(_ context.Context, desde, _ time.Time) (repository.VentaAgregada, error) {
	return r.totales[desde.Format("2006-01-02")], nil
}

func (r *stubReporteRepo) VentasDiarias(_ context.Context, _ int) ([]repository.VentaDiariaRow, error) {
	return r.diarias, nil
}

func (r *stubReporteRepo) TopProductos(_ context.Context, _ int) ([]repository.TopProductoRow, error) {
	return r.top, nil
}

var _ repository.ReporteRepository = (*stubReporteRepo)(nil)

func newReporteFixture() (service.ReporteService, *stubVentaRepo, *stubMovimientoRepo, *stubProductoRepo, *stubCategoriaRepo, *stubReporteRepo) {
	ventaRepo := newStubVentaRepo()
	movimientoRepo := newStubMovimientoRepo()
	productoRepo := newStubProductoRepo()
	categoriaRepo := newStubCategoriaRepo()
	reporteRepo := &stubReporteRepo{totales: make(map[string]repository.VentaAgregada)}
	svc := service.NewReporteService(ventaRepo, movimientoRepo, productoRepo, categoriaRepo, reporteRepo)
	return svc, ventaRepo, movimientoRepo, productoRepo, categoriaRepo, reporteRepo
}

func seedVenta(ventaRepo *stubVentaRepo, total string, articulos int, hace time.Duration) *model.Venta {
	v := &model.Venta{
		ID:            uuid.New(),
		ClienteNombre: model.ClienteGeneral,
		UsuarioID:     uuid.New(),
		UsuarioNombre: "Vendedor Demo",
		MetodoPago:    model.PagoEfectivo,
		Subtotal:      decimal.RequireFromString(total),
		Total:         decimal.RequireFromString(total),
		CreatedAt:     time.Now().Add(-hace),
		Detalles: []model.VentaDetalle{{
			ID:             uuid.New(),
			ProductoID:     uuid.New(),
			ProductoNombre: "Paracetamol",
			Cantidad:       articulos,
			PrecioUnitario: decimal.RequireFromString("1.00"),
			Subtotal:       decimal.RequireFromString(total),
		}},
	}
	ventaRepo.ventas[v.ID] = v
	return v
}

func TestReporteVentas(t *testing.T) {
	svc, ventaRepo, _, _, _, _ := newReporteFixture()
	seedVenta(ventaRepo, "10.50", 3, time.Hour)
	seedVenta(ventaRepo, "4.20", 1, 2*time.Hour)
	seedVenta(ventaRepo, "8.00", 2, 90*24*time.Hour) // outside default range

	resp, err := svc.Ventas(context.Background(), dto.RangoFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.CantidadVentas)
	assert.True(t, resp.TotalVentas.Equal(dec("14.70")))
	assert.Len(t, resp.Ventas, 2)
}

func TestReporteVentasFechaInvalida(t *testing.T) {
	svc, _, _, _, _, _ := newReporteFixture()
	_, err := svc.Ventas(context.Background(), dto.RangoFilter{FechaInicio: "31-12-2025"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fecha_inicio")
}

func TestReporteTransaccionesCuentaArticulos(t *testing.T) {
	svc, ventaRepo, _, _, _, _ := newReporteFixture()
	seedVenta(ventaRepo, "10.50", 3, time.Hour)

	rows, err := svc.Transacciones(context.Background(), dto.RangoFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Articulos)
	assert.Equal(t, model.ClienteGeneral, rows[0].ClienteNombre)
}

func TestReporteInventarioValoriza(t *testing.T) {
	svc, _, _, productoRepo, categoriaRepo, _ := newReporteFixture()

	cat := &model.Categoria{ID: uuid.New(), Nombre: "Analgésicos"}
	categoriaRepo.categorias[cat.ID] = cat

	p1 := seedProducto(productoRepo, "Paracetamol", "3.50", 10, 20) // bajo stock
	p1.CategoriaID = cat.ID
	p1.Costo = dec("1.80")
	p2 := seedProducto(productoRepo, "Huérfano", "2.00", 5, 1)
	p2.Costo = dec("1.00")

	resp, err := svc.Inventario(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Productos, 2)
	// 10×1.80 + 5×1.00
	assert.True(t, resp.ValorTotal.Equal(dec("23.00")))
	for _, item := range resp.Productos {
		switch item.Nombre {
		case "Paracetamol":
			assert.Equal(t, "Analgésicos", item.CategoriaNombre)
			assert.True(t, item.BajoStock)
		case "Huérfano":
			assert.Equal(t, "N/A", item.CategoriaNombre)
			assert.False(t, item.BajoStock)
		}
	}
}

func TestReportePorVencer(t *testing.T) {
	svc, _, _, productoRepo, _, _ := newReporteFixture()

	pronto := seedProducto(productoRepo, "Vence Pronto", "1.00", 5, 1)
	f1 := time.Now().AddDate(0, 0, 10)
	pronto.FechaVencimiento = &f1

	lejos := seedProducto(productoRepo, "Vence Lejos", "1.00", 5, 1)
	f2 := time.Now().AddDate(2, 0, 0)
	lejos.FechaVencimiento = &f2

	seedProducto(productoRepo, "Sin Fecha", "1.00", 5, 1)

	rows, err := svc.PorVencer(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Vence Pronto", rows[0].Nombre)
	assert.LessOrEqual(t, rows[0].DiasRestantes, 10)
}

func TestDashboardStats(t *testing.T) {
	productoRepo := newStubProductoRepo()
	clienteRepo := newStubClienteRepo()
	reporteRepo := &stubReporteRepo{totales: make(map[string]repository.VentaAgregada)}

	seedProducto(productoRepo, "Activo OK", "1.00", 50, 5)
	bajo := seedProducto(productoRepo, "Bajo Stock", "1.00", 2, 5)
	_ = bajo
	inactivo := seedProducto(productoRepo, "Inactivo", "1.00", 0, 5)
	inactivo.Activo = false
	clienteRepo.clientes[uuid.New()] = &model.Cliente{ID: uuid.New(), Nombre: "Ana"}

	now := time.Now()
	hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	mes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	reporteRepo.totales[mes.Format("2006-01-02")] = repository.VentaAgregada{Total: dec("480.00"), Cantidad: 61}
	reporteRepo.totales[hoy.Format("2006-01-02")] = repository.VentaAgregada{Total: dec("35.00"), Cantidad: 4}
	// On the 1st of the month both ranges start the same day.
	esperadoMes := dec("480.00")
	if hoy.Equal(mes) {
		esperadoMes = dec("35.00")
	}

	svc := service.NewDashboardService(reporteRepo, productoRepo, clienteRepo, nil)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.VentasHoy.Equal(dec("35.00")))
	assert.Equal(t, int64(4), stats.CantidadVentasHoy)
	assert.True(t, stats.VentasMes.Equal(esperadoMes))
	assert.Equal(t, int64(2), stats.ProductosActivos)
	assert.Equal(t, int64(1), stats.ProductosBajoStock)
	assert.Equal(t, int64(1), stats.Clientes)
}

func TestDashboardTopProductos(t *testing.T) {
	reporteRepo := &stubReporteRepo{
		totales: make(map[string]repository.VentaAgregada),
		top: []repository.TopProductoRow{
			{ProductoID: uuid.NewString(), ProductoNombre: "Paracetamol", Unidades: 120, Total: dec("420.00")},
			{ProductoID: uuid.NewString(), ProductoNombre: "Ibuprofeno", Unidades: 80, Total: dec("336.00")},
		},
	}
	svc := service.NewDashboardService(reporteRepo, newStubProductoRepo(), newStubClienteRepo(), nil)

	top, err := svc.TopProductos(context.Background())
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Paracetamol", top[0].ProductoNombre)
	assert.Equal(t, int64(120), top[0].Unidades)
}
