// Package di provides dependency injection configuration for the catalog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/shopsavvy/catalog-server/internal/catalog"
	"github.com/shopsavvy/catalog-server/internal/config"
	"github.com/shopsavvy/catalog-server/internal/di/providers"
	"github.com/shopsavvy/catalog-server/internal/logger"
	"github.com/shopsavvy/catalog-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Event and state layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideCatalogWatcher)
	do.Provide(injector, providers.ProvideSuggestIndex)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideCartService)
	do.Provide(injector, providers.ProvideCompareService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*catalog.Catalog](injector)
	_ = do.MustInvoke[*providers.CatalogWatcherHandle](injector)
	_ = do.MustInvoke[*providers.SuggestIndexHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.CartService](injector)
	_ = do.MustInvoke[*service.CompareService](injector)

	// Server
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
