package api

import "github.com/shopsavvy/catalog-server/internal/service"

// Services aggregates the service dependencies for the API server.
type Services struct {
	Catalog *service.CatalogService
	Cart    *service.CartService
	Compare *service.CompareService
}
