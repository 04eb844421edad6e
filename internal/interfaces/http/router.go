package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/TollFee-api/internal/application/auth"
	"github.com/jhoicas/TollFee-api/internal/application/dto"
	"github.com/jhoicas/TollFee-api/internal/application/tolling"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	TollUC    *tolling.TollUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{
			Status:   "ok",
			Service:  deps.AppName,
			Source:   deps.TollUC.SourceName(),
			RuleSets: deps.TollUC.Calculator().Catalog().Len(),
		})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Cálculo (público)
	tollHandler := NewTollHandler(deps.TollUC)
	tolls := api.Group("/tolls")
	tolls.Post("/passage", tollHandler.PassageFee)
	tolls.Post("/daily", tollHandler.DailyToll)

	// Tarifarios: lectura pública, escritura solo admin
	ruleSetHandler := NewRuleSetHandler(deps.TollUC)
	rulesets := api.Group("/rulesets")
	rulesets.Get("/", ruleSetHandler.List)
	rulesets.Get("/applicable", ruleSetHandler.Applicable)

	requireAuth := AuthMiddleware(deps.JWTSecret)
	requireAdmin := RequireRole(auth.RoleAdmin)
	rulesets.Post("/", requireAuth, requireAdmin, ruleSetHandler.Create)
	rulesets.Post("/reload", requireAuth, requireAdmin, ruleSetHandler.Reload)
	rulesets.Delete("/:id", requireAuth, requireAdmin, ruleSetHandler.Delete)
}
