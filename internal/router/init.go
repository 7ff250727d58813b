package router

import (
	"github.com/danuarts/woodshop/internal/application"
	"github.com/danuarts/woodshop/internal/container"
	pginfra "github.com/danuarts/woodshop/internal/infrastructure/postgres"
	handlers "github.com/danuarts/woodshop/internal/interface/http"
	"github.com/danuarts/woodshop/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	adminRepo := pginfra.NewAdminRepository(pool)
	catalogRepo := pginfra.NewCatalogRepository(pool)
	orderRepo := pginfra.NewOrderRepository(pool)

	authSvc := application.NewAuthService(adminRepo, container.GetJWT(), logger)
	catalogSvc := application.NewCatalogService(
		catalogRepo,
		container.GetImageStore(),
		container.GetRedis(),
		cfg.CatalogCacheTTL,
		logger,
		container.GetES(),
		cfg.ESProductsIndex,
	)
	orderSvc := application.NewOrderService(orderRepo, container.GetRabbitPub(), container.GetRedis(), logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	catalogHandler := handlers.NewCatalogHandler(catalogSvc, logger)
	adminHandler := handlers.NewAdminHandler(catalogSvc, logger)
	orderHandler := handlers.NewOrderHandler(orderSvc, logger)

	r.Add(modules.NewCatalogModule(catalogHandler))
	r.Add(modules.NewOrderModule(orderHandler))
	r.Add(modules.NewAdminModule(authHandler, adminHandler, orderHandler, container.GetJWT()))
}
