package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/shopsavvy/catalog-server/internal/domain"
)

// SuggestIndex wraps a Bleve index over the product catalog.
//
// Thread safety: all public methods are safe for concurrent use.
type SuggestIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the suggest index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Logger for operations (uses discard if nil)
}

// mappingVersion is incremented whenever the index mapping changes.
// A mismatch on startup triggers an automatic rebuild, which is cheap:
// the catalog is re-indexed from scratch on every start anyway.
const mappingVersion = "1"

// NewSuggestIndex creates or opens a suggest index. A corrupted or
// outdated index is removed and recreated.
func NewSuggestIndex(opts Options) (*SuggestIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	indexPath := filepath.Join(opts.DataPath, "suggest.bleve")
	versionPath := filepath.Join(opts.DataPath, "suggest.version")

	var index bleve.Index
	var err error
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil || string(existingVersion) != mappingVersion {
			logger.Info("suggest index mapping outdated, will rebuild",
				"new_version", mappingVersion,
			)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing suggest index, will recreate",
				"path", indexPath,
				"error", err,
			)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	if index == nil {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0644); writeErr != nil {
			logger.Warn("failed to write suggest index version file", "error", writeErr)
		}
		logger.Info("created new suggest index", "path", indexPath)
	} else {
		logger.Info("opened existing suggest index", "path", indexPath)
	}

	return &SuggestIndex{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *SuggestIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexProducts indexes the full product set in batches. Called once at
// startup with the loaded catalog.
func (s *SuggestIndex) IndexProducts(products []*domain.Product) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500

	for i := 0; i < len(products); i += batchSize {
		end := min(i+batchSize, len(products))

		batch := s.index.NewBatch()
		for _, p := range products[i:end] {
			doc := ProductToDocument(p)
			// Convert to map so field names match the mapping (lowercase).
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}

		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	s.logger.Info("suggest index built", "products", len(products))
	return nil
}

// DocumentCount returns the total number of indexed products.
func (s *SuggestIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}
