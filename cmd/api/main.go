package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Caisse-api/internal/application/auth"
	"github.com/jhoicas/Caisse-api/internal/application/caisse"
	"github.com/jhoicas/Caisse-api/internal/application/ledger"
	"github.com/jhoicas/Caisse-api/internal/application/sales"
	"github.com/jhoicas/Caisse-api/internal/application/usecase"
	infracache "github.com/jhoicas/Caisse-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Caisse-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Caisse-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Caisse-api/internal/interfaces/http"
	"github.com/jhoicas/Caisse-api/pkg/config"
	"github.com/jhoicas/Caisse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.RunMigrations(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Cache: Redis si está configurado, si no un no-op.
	var saleCache sales.Cache = infracache.NewNoop()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, cache desactivado")
		} else {
			saleCache = infracache.NewRedisCache(rdb)
			defer rdb.Close()
		}
	}

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	sessionRepo := postgres.NewCaisseSessionRepository(pool)
	caisseMovRepo := postgres.NewCaisseMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	promotionRepo := postgres.NewPromotionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerUC := ledger.NewRegisterMovementUseCase(txRunner, productRepo)
	stockQueryUC := ledger.NewStockQueryUseCase(productRepo, movementRepo)
	sessionUC := caisse.NewSessionUseCase(txRunner, sessionRepo, caisseMovRepo)
	reportUC := caisse.NewReportUseCase(sessionRepo, caisseMovRepo, userRepo, infrapdf.NewSessionReportGenerator())
	postSaleUC := sales.NewPostSaleUseCase(
		txRunner, registerUC, sessionUC,
		productRepo, customerRepo, sessionRepo, promotionRepo, saleCache,
	)
	saleQueryUC := sales.NewSaleQueryUseCase(saleRepo, saleCache)

	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	promotionUC := usecase.NewPromotionUseCase(promotionRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Caisse API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		CategoryUC:     categoryUC,
		SupplierUC:     supplierUC,
		CustomerUC:     customerUC,
		PromotionUC:    promotionUC,
		NotificationUC: notificationUC,
		RegisterUC:     registerUC,
		StockQueryUC:   stockQueryUC,
		SessionUC:      sessionUC,
		ReportUC:       reportUC,
		PostSaleUC:     postSaleUC,
		SaleQueryUC:    saleQueryUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

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
