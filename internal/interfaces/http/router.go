package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/cajaplus-api/internal/application/analytics"
	"github.com/jhoicas/cajaplus-api/internal/application/auth"
	"github.com/jhoicas/cajaplus-api/internal/application/billing"
	"github.com/jhoicas/cajaplus-api/internal/application/cash"
	"github.com/jhoicas/cajaplus-api/internal/application/payments"
	"github.com/jhoicas/cajaplus-api/internal/application/sales"
	"github.com/jhoicas/cajaplus-api/internal/application/usecase"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SalesUC      *sales.SalesUseCase
	MetricsUC    *analytics.MetricsUseCase
	LedgerUC     *cash.LedgerUseCase
	PaymentsUC   *payments.PaymentsUseCase
	InvoiceUC    *billing.InvoiceUseCase
	ProductUC    *usecase.ProductUseCase
	UserUC       *usecase.UserUseCase
	CalculatorUC *usecase.CalculatorUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// NewApp crea la aplicación Fiber con recover, log de peticiones y todas las rutas.
func NewApp(deps RouterDeps, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Caja Plus API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
// Las rutas fijas (/metricas, /login, /me) se registran antes que las de parámetro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Ventas
	salesHandler := NewSalesHandler(deps.SalesUC, deps.MetricsUC)
	ventas := api.Group("/ventas")
	ventas.Post("/compras", salesHandler.Register)
	ventas.Get("/compras", salesHandler.List)
	ventas.Get("/metricas", salesHandler.Metrics)
	ventas.Post("/reconciliar", salesHandler.Reconcile)
	ventas.Get("/", salesHandler.List)
	ventas.Put("/:id", salesHandler.Update)
	ventas.Delete("/:id", salesHandler.Delete)

	// Productos
	productHandler := NewProductHandler(deps.ProductUC)
	productos := api.Group("/productos")
	productos.Get("/", productHandler.List)
	productos.Post("/", productHandler.Create)
	productos.Get("/:id", productHandler.Get)
	productos.Put("/:id", productHandler.Update)
	productos.Delete("/:id", productHandler.Delete)

	// Caja
	cashHandler := NewCashHandler(deps.LedgerUC)
	caja := api.Group("/caja")
	caja.Get("/", cashHandler.Get)
	caja.Post("/ingreso", cashHandler.Income)
	caja.Post("/egreso", cashHandler.Expense)
	caja.Get("/exportar", cashHandler.Export)
	caja.Delete("/movimiento/:id", requireAuth, RequireRole(entity.RoleAdmin), cashHandler.DeleteMovement)

	// Pagos
	paymentHandler := NewPaymentHandler(deps.PaymentsUC)
	pagos := api.Group("/pagos")
	pagos.Get("/", paymentHandler.List)
	pagos.Post("/", paymentHandler.Register)

	// Facturas
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	facturas := api.Group("/facturas")
	facturas.Post("/", invoiceHandler.Generate)
	facturas.Get("/", invoiceHandler.List)
	facturas.Get("/pdf/:archivo", invoiceHandler.Download)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC)
	usuarios := api.Group("/usuarios")
	usuarios.Post("/login", userHandler.Login)
	usuarios.Get("/me", requireAuth, userHandler.Me)
	usuarios.Post("/", userHandler.Create)
	usuarios.Get("/", userHandler.List)
	usuarios.Put("/:id", userHandler.Update)
	usuarios.Delete("/:id", userHandler.Delete)

	// Calculadora
	calcHandler := NewCalculatorHandler(deps.CalculatorUC)
	api.Post("/calcular_precio", calcHandler.Calculate)
	api.Get("/calcular_precio/historial", calcHandler.History)
}
