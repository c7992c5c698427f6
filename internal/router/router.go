package router

import (
	"time"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/config"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/handler"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/infra"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/middleware"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/repository"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, loc *time.Location) *gin.Engine {
	if cfg.Env == "production" {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	marcaRepo := repository.NewMarcaRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	configuracionRepo := repository.NewConfiguracionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg.JWTSecret, cfg.JWTExpirationHours, cfg.JWTRefreshHours, cfg.AllowedEmailSet())
	productoSvc := service.NewProductoService(productoRepo, marcaRepo, categoriaRepo, ventaRepo, loteRepo, rdb)
	marcaSvc := service.NewMarcaService(marcaRepo, productoRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, productoRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo, loteRepo)
	loteSvc := service.NewLoteService(loteRepo, productoRepo, proveedorRepo, movimientoStockRepo, loc)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, loteRepo, movimientoStockRepo, rdb, loc)
	reporteSvc := service.NewReporteService(ventaRepo, productoRepo, loteRepo, configuracionRepo, mailer, rdb, loc, cfg.NombreNegocio)
	configuracionSvc := service.NewConfiguracionService(configuracionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	marcasH := handler.NewMarcasHandler(marcaSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	lotesH := handler.NewLotesHandler(loteSvc)
	ventasH := handler.NewVentasHandler(ventaSvc, cfg.NombreNegocio, cfg.TicketStoragePath)
	reportesH := handler.NewReportesHandler(reporteSvc)
	configuracionH := handler.NewConfiguracionHandler(configuracionSvc)
	movimientosH := handler.NewMovimientosHandler(movimientoStockRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — any allow-listed operator can do everything
	v1 := r.Group("/v1", middleware.JWTAuth(authSvc))
	{
		v1.POST("/ventas", ventasH.RegistrarVenta)
		v1.GET("/ventas", ventasH.ListarVentas)
		v1.GET("/ventas/:id", ventasH.ObtenerVenta)
		v1.GET("/ventas/:id/ticket", ventasH.TicketVenta)
		v1.DELETE("/ventas/:id", ventasH.EliminarVenta)

		v1.POST("/lotes", lotesH.CrearLote)
		v1.GET("/lotes", lotesH.ListarLotes)
		v1.GET("/lotes/:id", lotesH.ObtenerLote)
		v1.DELETE("/lotes/:id", lotesH.EliminarLote)

		v1.POST("/productos", productosH.CrearProducto)
		v1.GET("/productos", productosH.ListarProductos)
		v1.GET("/productos/:id", productosH.ObtenerProducto)
		v1.PUT("/productos/:id", productosH.ActualizarProducto)
		v1.DELETE("/productos/:id", productosH.EliminarProducto)
		v1.GET("/productos/:id/movimientos", movimientosH.ListarPorProducto)

		v1.GET("/precio/:barcode", productosH.PrecioPorBarcode)

		v1.POST("/marcas", marcasH.CrearMarca)
		v1.GET("/marcas", marcasH.ListarMarcas)
		v1.PUT("/marcas/:id", marcasH.ActualizarMarca)
		v1.DELETE("/marcas/:id", marcasH.EliminarMarca)

		v1.POST("/categorias", categoriasH.CrearCategoria)
		v1.GET("/categorias", categoriasH.ListarCategorias)
		v1.PUT("/categorias/:id", categoriasH.ActualizarCategoria)
		v1.DELETE("/categorias/:id", categoriasH.EliminarCategoria)

		v1.POST("/proveedores", proveedoresH.CrearProveedor)
		v1.GET("/proveedores", proveedoresH.ListarProveedores)
		v1.PUT("/proveedores/:id", proveedoresH.ActualizarProveedor)
		v1.DELETE("/proveedores/:id", proveedoresH.EliminarProveedor)

		reportes := v1.Group("/reportes")
		{
			reportes.GET("/diario", reportesH.KPIsDiarios)
			reportes.GET("/tendencia", reportesH.Tendencia)
			reportes.GET("/valuacion", reportesH.Valuacion)
			reportes.GET("/export", reportesH.ExportarVentas)
			reportes.POST("/enviar", reportesH.EnviarResumen)
		}

		v1.GET("/configuracion", configuracionH.Obtener)
		v1.PUT("/configuracion", configuracionH.Guardar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
