package router

import (
	"time"

	"farmapos/internal/config"
	"farmapos/internal/handler"
	"farmapos/internal/middleware"
	"farmapos/internal/repository"
	"farmapos/internal/service"
	"farmapos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	reporteRepo := repository.NewReporteRepository(db)
	respaldoRepo := repository.NewRespaldoRepository(db)

	// Worker dispatcher, injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, proveedorRepo, rdb)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, productoRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo, productoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, clienteRepo, movimientoRepo, dispatcher, rdb)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoRepo, dispatcher, rdb)
	carritoSvc := service.NewCarritoService(service.NewRedisCarritoStore(rdb), productoRepo, ventaSvc)
	dashboardSvc := service.NewDashboardService(reporteRepo, productoRepo, clienteRepo, rdb)
	reporteSvc := service.NewReporteService(ventaRepo, movimientoRepo, productoRepo, categoriaRepo, reporteRepo)
	respaldoSvc := service.NewRespaldoService(respaldoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	respaldoH := handler.NewRespaldoHandler(respaldoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: administrador, vendedor, consulta, declared per-endpoint
		lectura := middleware.RequireRole("administrador", "vendedor", "consulta")
		operacion := middleware.RequireRole("administrador", "vendedor")
		admin := middleware.RequireRole("administrador")

		// Productos: reads for everyone, writes for administrador
		v1.GET("/productos", lectura, productosH.Listar)
		v1.GET("/productos/disponibles", lectura, productosH.Disponibles)
		v1.GET("/productos/:id", lectura, productosH.ObtenerPorID)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
		}

		// Categorías
		v1.GET("/categorias", lectura, categoriasH.Listar)
		v1.GET("/categorias/:id", lectura, categoriasH.ObtenerPorID)
		v1.GET("/categorias/:id/dependientes", lectura, categoriasH.Dependientes)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Eliminar)
		}

		// Proveedores
		v1.GET("/proveedores", lectura, proveedoresH.Listar)
		v1.GET("/proveedores/:id", lectura, proveedoresH.ObtenerPorID)
		v1.GET("/proveedores/:id/dependientes", lectura, proveedoresH.Dependientes)
		prov := v1.Group("/proveedores", admin)
		{
			prov.POST("", proveedoresH.Crear)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
		}

		// Clientes: vendedores can register customers at the counter
		v1.GET("/clientes", lectura, clientesH.Listar)
		v1.GET("/clientes/:id", lectura, clientesH.ObtenerPorID)
		v1.POST("/clientes", operacion, clientesH.Crear)
		v1.PUT("/clientes/:id", operacion, clientesH.Actualizar)
		v1.DELETE("/clientes/:id", admin, clientesH.Eliminar)

		// Ventas
		v1.POST("/ventas", operacion, ventasH.Registrar)
		v1.GET("/ventas", lectura, ventasH.Listar)
		v1.GET("/ventas/:id", lectura, ventasH.ObtenerPorID)
		v1.GET("/ventas/:id/ticket", lectura, ventasH.Ticket)

		// Inventario
		v1.POST("/inventario/movimientos", operacion, inventarioH.RegistrarMovimiento)
		v1.GET("/inventario/movimientos", lectura, inventarioH.ListarMovimientos)

		// Carrito: one session per authenticated user
		carrito := v1.Group("/carrito", operacion)
		{
			carrito.GET("", carritoH.Obtener)
			carrito.POST("/items", carritoH.AgregarItem)
			carrito.PUT("/items/:producto_id", carritoH.FijarCantidad)
			carrito.DELETE("/items/:producto_id", carritoH.QuitarItem)
			carrito.DELETE("", carritoH.Abandonar)
			carrito.POST("/confirmar", carritoH.Confirmar)
		}

		// Dashboard
		v1.GET("/dashboard/stats", lectura, dashboardH.Stats)
		v1.GET("/dashboard/ventas-diarias", lectura, dashboardH.VentasDiarias)
		v1.GET("/dashboard/top-productos", lectura, dashboardH.TopProductos)

		// Reportes
		reportes := v1.Group("/reportes", lectura)
		{
			reportes.GET("/ventas", reportesH.Ventas)
			reportes.GET("/transacciones", reportesH.Transacciones)
			reportes.GET("/movimientos", reportesH.Movimientos)
			reportes.GET("/inventario", reportesH.Inventario)
			reportes.GET("/por-vencer", reportesH.PorVencer)
			reportes.GET("/mas-vendidos", reportesH.MasVendidos)
		}

		// Respaldo: destructive restore, administrador only
		v1.GET("/respaldo", admin, respaldoH.Exportar)
		v1.POST("/respaldo/restaurar", admin, respaldoH.Restaurar)
	}

	return r
}
