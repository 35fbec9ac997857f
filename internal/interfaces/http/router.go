package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caisse-api/internal/application/auth"
	"github.com/jhoicas/Caisse-api/internal/application/caisse"
	"github.com/jhoicas/Caisse-api/internal/application/ledger"
	"github.com/jhoicas/Caisse-api/internal/application/sales"
	"github.com/jhoicas/Caisse-api/internal/application/usecase"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	SupplierUC     *usecase.SupplierUseCase
	CustomerUC     *usecase.CustomerUseCase
	PromotionUC    *usecase.PromotionUseCase
	NotificationUC *usecase.NotificationUseCase
	RegisterUC     *ledger.RegisterMovementUseCase
	StockQueryUC   *ledger.StockQueryUseCase
	SessionUC      *caisse.SessionUseCase
	ReportUC       *caisse.ReportUseCase
	PostSaleUC     *sales.PostSaleUseCase
	SaleQueryUC    *sales.SaleQueryUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	backoffice := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Products (protegido) + subrutas de inventario por producto
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterUC, deps.StockQueryUC)
	products.Post("/", backoffice, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", backoffice, productHandler.Update)
	products.Delete("/:id", backoffice, productHandler.Delete)
	products.Get("/:id/movements", inventoryHandler.History)
	products.Get("/:id/stock", inventoryHandler.Stock)

	// Inventory movements (protegido)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)

	// Caisse sessions (protegido)
	caisseGroup := protected.Group("/caisse/sessions")
	caisseHandler := NewCaisseHandler(deps.SessionUC, deps.ReportUC)
	saleHandler := NewSaleHandler(deps.PostSaleUC, deps.SaleQueryUC)
	caisseGroup.Post("/", caisseHandler.Open)
	caisseGroup.Get("/current", caisseHandler.Current)
	caisseGroup.Get("/:id", caisseHandler.GetByID)
	caisseGroup.Post("/:id/close", caisseHandler.Close)
	caisseGroup.Post("/:id/movements", caisseHandler.CashMovement)
	caisseGroup.Get("/:id/movements", caisseHandler.Movements)
	caisseGroup.Get("/:id/sales", saleHandler.ListBySession)
	caisseGroup.Get("/:id/report", caisseHandler.Report)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/daily-summary", saleHandler.DailySummary)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Categories (protegido; escritura solo backoffice)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", backoffice, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", backoffice, categoryHandler.Update)
	categories.Delete("/:id", backoffice, categoryHandler.Delete)

	// Suppliers (protegido; escritura solo backoffice)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", backoffice, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", backoffice, supplierHandler.Update)
	suppliers.Delete("/:id", backoffice, supplierHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", backoffice, customerHandler.Delete)

	// Promotions (protegido; escritura solo backoffice)
	promotions := protected.Group("/promotions")
	promotionHandler := NewPromotionHandler(deps.PromotionUC)
	promotions.Post("/", backoffice, promotionHandler.Create)
	promotions.Get("/", promotionHandler.List)
	promotions.Get("/:id", promotionHandler.GetByID)
	promotions.Put("/:id", backoffice, promotionHandler.Update)
	promotions.Delete("/:id", backoffice, promotionHandler.Delete)

	// Notifications (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
}
