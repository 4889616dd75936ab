package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/cajaplus-api/docs"
	"github.com/jhoicas/cajaplus-api/internal/application/analytics"
	"github.com/jhoicas/cajaplus-api/internal/application/auth"
	"github.com/jhoicas/cajaplus-api/internal/application/billing"
	"github.com/jhoicas/cajaplus-api/internal/application/cash"
	"github.com/jhoicas/cajaplus-api/internal/application/payments"
	"github.com/jhoicas/cajaplus-api/internal/application/ports"
	"github.com/jhoicas/cajaplus-api/internal/application/sales"
	"github.com/jhoicas/cajaplus-api/internal/application/usecase"
	infracache "github.com/jhoicas/cajaplus-api/internal/infrastructure/cache"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/export"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/invoicexml"
	infrapdf "github.com/jhoicas/cajaplus-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/cajaplus-api/internal/interfaces/http"
	"github.com/jhoicas/cajaplus-api/pkg/config"
	"github.com/jhoicas/cajaplus-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Caja Plus API
// @version                     1.0
// @description                 Back office de punto de venta: ventas, caja, pagos, facturas, productos y usuarios.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend de documentos
	var backend store.Backend
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pg := postgres.NewDocumentBackend(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema de documentos")
		}
		if balance, err := pg.CashBalance(ctx); err == nil {
			log.Info().Str("saldo", balance.String()).Msg("saldo de caja al iniciar")
		}
		backend = pg
	case "memory":
		log.Warn().Msg("STORE_DRIVER=memory: los datos no se conservan al reiniciar")
		backend = store.NewMemoryBackend()
	default:
		fb, err := store.NewFileBackend(cfg.Store.DataDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Store.DataDir).Msg("directorio de datos")
		}
		backend = fb
	}
	repos := store.NewRepositories(backend)

	var artifacts billing.ArtifactStore
	if cfg.Store.Driver == "memory" {
		artifacts = store.NewMemoryArtifacts()
	} else {
		fa, err := store.NewFileArtifacts(cfg.Store.InvoiceDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Store.InvoiceDir).Msg("directorio de facturas")
		}
		artifacts = fa
	}

	// Caché de métricas: Redis opcional, sin Redis se recalcula en cada consulta
	var baseCache ports.MetricsCache = ports.NoopCache{}
	if cfg.Redis.Addr != "" {
		rc := infracache.NewRedisMetricsCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second, log.Component("cache"))
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, caché de métricas deshabilitada")
			_ = rc.Close()
		} else {
			defer rc.Close()
			baseCache = rc
		}
		cancel()
	}
	// una sola instancia compartida: las invalidaciones de ventas, caja y pagos
	// descartan métricas calculadas en paralelo
	metricsCache := ports.NewVersionedCache(baseCache)

	ledgerUC := cash.NewLedgerUseCase(repos.Cash, cash.Config{
		AllowNegativeBalance: cfg.Cash.AllowNegativeBalance,
	}, metricsCache, export.NewExcelLedgerExporter(), log.Component("caja"))
	salesUC := sales.NewSalesUseCase(repos.Sales, repos.Products, ledgerUC, metricsCache, log.Component("ventas"))
	metricsUC := analytics.NewMetricsUseCase(repos.Sales, repos.Cash, metricsCache, log.Component("metricas"))
	paymentsUC := payments.NewPaymentsUseCase(repos.Payments, ledgerUC, payments.Config{
		StrictDates: cfg.Payments.StrictDates,
	}, log.Component("pagos"))
	invoiceUC := billing.NewInvoiceUseCase(
		repos.Invoices, salesUC, ledgerUC,
		infrapdf.NewMarotoInvoiceRenderer(cfg.App.Brand), invoicexml.NewBuilder(), artifacts,
		log.Component("facturas"),
	)
	productUC := usecase.NewProductUseCase(repos.Products, log.Component("productos"))
	userUC := usecase.NewUserUseCase(repos.Users, log.Component("usuarios"))
	calculatorUC := usecase.NewCalculatorUseCase(repos.PriceHistory, log.Component("calculadora"))
	authUC := auth.NewAuthUseCase(userUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	// Ventas que quedaron a medias en una ejecución anterior
	if repaired, err := salesUC.Reconcile(ctx); err != nil {
		log.Error().Err(err).Msg("reconciliación de ventas pendientes")
	} else if len(repaired) > 0 {
		log.Warn().Strs("ventas", repaired).Msg("ventas pendientes reparadas al iniciar")
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		SalesUC:      salesUC,
		MetricsUC:    metricsUC,
		LedgerUC:     ledgerUC,
		PaymentsUC:   paymentsUC,
		InvoiceUC:    invoiceUC,
		ProductUC:    productUC,
		UserUC:       userUC,
		CalculatorUC: calculatorUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	}, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		if _, err := os.Stat(swaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: swaggerFile,
				Path:     "docs",
				Title:    cfg.App.Name,
			}))
		} else {
			// sin archivo generado se sirve el documento registrado por swag
			app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
				doc, err := swag.ReadDoc()
				if err != nil {
					return fiber.NewError(fiber.StatusNotFound, err.Error())
				}
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
				return c.SendString(doc)
			})
		}
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
