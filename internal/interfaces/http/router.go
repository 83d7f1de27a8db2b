package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementService *inventory.StockMovementService
	OverviewUC      *inventory.OverviewUseCase
	KardexUC        *inventory.KardexUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API. Las mutaciones de stock requieren rol
// admin o bodeguero; las consultas, cualquier usuario autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementService, deps.KardexUC)
	overviewHandler := NewOverviewHandler(deps.OverviewUC)

	// Mutaciones (admin | bodeguero)
	canMove := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	inv.Post("/stock-in", canMove, inventoryHandler.StockIn)
	inv.Post("/stock-out", canMove, inventoryHandler.StockOut)

	// Consultas (cualquier autenticado)
	inv.Get("/overview", overviewHandler.GetOverview)
	inv.Get("/low-stock", overviewHandler.GetLowStock)
	inv.Get("/items/:item_id/movements", inventoryHandler.ListItemMovements)
	inv.Get("/locations/:location_id/movements", inventoryHandler.ListLocationMovements)
	inv.Get("/items/:item_id/locations/:location_id/quantity", inventoryHandler.GetQuantity)
	inv.Get("/items/:item_id/locations/:location_id/movements", inventoryHandler.ReplayMovements)
	inv.Get("/items/:item_id/locations/:location_id/kardex.pdf", inventoryHandler.KardexPDF)
}
