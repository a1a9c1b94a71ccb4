package providers

import (
	"github.com/samber/do/v2"

	"github.com/shopsavvy/catalog-server/internal/catalog"
	"github.com/shopsavvy/catalog-server/internal/config"
	"github.com/shopsavvy/catalog-server/internal/logger"
	"github.com/shopsavvy/catalog-server/internal/search"
)

// SuggestIndexHandle wraps the suggestion index with shutdown capability.
type SuggestIndexHandle struct {
	*search.SuggestIndex
}

// Shutdown implements do.Shutdownable.
func (h *SuggestIndexHandle) Shutdown() error {
	if h.SuggestIndex == nil {
		return nil
	}
	return h.Close()
}

// ProvideSuggestIndex provides the Bleve suggestion index, populated from
// the loaded catalog. The catalog is immutable for the process lifetime,
// so a single indexing pass at startup is all the index ever needs.
func ProvideSuggestIndex(i do.Injector) (*SuggestIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Catalog](i)

	index, err := search.NewSuggestIndex(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	products, err := cat.All()
	if err != nil {
		// No catalog, no suggestions. The empty index still serves
		// empty results instead of failing requests.
		log.Warn("Suggestion index left empty, catalog unavailable", "error", err)
		return &SuggestIndexHandle{SuggestIndex: index}, nil
	}

	if err := index.IndexProducts(products); err != nil {
		_ = index.Close()
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Suggestion index ready", "documents", docCount)

	return &SuggestIndexHandle{SuggestIndex: index}, nil
}
