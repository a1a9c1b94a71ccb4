package providers

import (
	"github.com/samber/do/v2"

	"github.com/shopsavvy/catalog-server/internal/catalog"
	"github.com/shopsavvy/catalog-server/internal/config"
	"github.com/shopsavvy/catalog-server/internal/logger"
	"github.com/shopsavvy/catalog-server/internal/service"
)

// ProvideCatalogService provides the catalog query service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Catalog](i)
	indexHandle := do.MustInvoke[*SuggestIndexHandle](i)

	return service.NewCatalogService(cat, indexHandle.SuggestIndex, cfg.Query.PageSize, log.Logger), nil
}

// ProvideCartService provides the shopping cart service.
func ProvideCartService(i do.Injector) (*service.CartService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Catalog](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewCartService(storeHandle.Store, cat, log.Logger), nil
}

// ProvideCompareService provides the product comparison service.
func ProvideCompareService(i do.Injector) (*service.CompareService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Catalog](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewCompareService(storeHandle.Store, cat, cfg.Compare.MaxItems, log.Logger), nil
}
