package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/shopsavvy/catalog-server/internal/catalog"
	"github.com/shopsavvy/catalog-server/internal/config"
	"github.com/shopsavvy/catalog-server/internal/logger"
	"github.com/shopsavvy/catalog-server/internal/sse"
)

// ProvideCatalog provides the immutable product catalog.
//
// The initial load happens here so startup cost is paid once. A load
// failure is not fatal: the server still comes up and answers catalog
// requests with 503 until it is restarted with a readable dataset.
func ProvideCatalog(i do.Injector) (*catalog.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	loader := &catalog.CSVLoader{
		Path:        cfg.Catalog.CSVPath,
		MaxProducts: cfg.Catalog.MaxProducts,
		Logger:      log.Logger,
	}

	cat := catalog.New(loader, cfg.Query.BrandTopN, log.Logger)

	if err := cat.Load(); err != nil {
		log.Error("Catalog load failed, serving unavailable until restart",
			"path", cfg.Catalog.CSVPath,
			"error", err,
		)
		return cat, nil
	}

	idx, err := cat.Index()
	if err != nil {
		return nil, err
	}
	log.Info("Catalog loaded",
		"products", idx.TotalProducts,
		"categories", len(idx.Categories),
		"brands", len(idx.Brands),
	)

	return cat, nil
}

// CatalogWatcherHandle wraps the catalog file watcher with shutdown capability.
type CatalogWatcherHandle struct {
	*catalog.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Close()
}

// ProvideCatalogWatcher provides the advisory watcher on the catalog file.
// Changes on disk never reload the served catalog; they only produce a
// staleness warning and a catalog.changed event for connected clients.
func ProvideCatalogWatcher(i do.Injector) (*CatalogWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	if !cfg.Catalog.WatchFile {
		log.Info("Catalog file watching disabled by configuration")
		return &CatalogWatcherHandle{}, nil
	}

	w, err := catalog.NewWatcher(cfg.Catalog.CSVPath, log.Logger, func(path string) {
		sseHandle.Emit(sse.NewCatalogChangedEvent(path))
	})
	if err != nil {
		// Non-fatal: the watcher is advisory and the server works without it.
		log.Warn("Catalog file watcher unavailable", "error", err)
		return &CatalogWatcherHandle{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)

	log.Info("Catalog file watcher started", "path", cfg.Catalog.CSVPath)

	return &CatalogWatcherHandle{Watcher: w, cancel: cancel}, nil
}
