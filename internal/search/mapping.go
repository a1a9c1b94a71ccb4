package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for product documents.
//
// Titles get English stemming so "bolts" finds "bolt". Brand names are
// proper nouns, so they use the simple analyzer without stemming. SKUs
// must match exactly.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Title - primary suggestion target.
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Brand - no stemming.
	brandFieldMapping := bleve.NewTextFieldMapping()
	brandFieldMapping.Analyzer = simple.Name
	brandFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("brand", brandFieldMapping)

	// Category - leaf category name.
	categoryFieldMapping := bleve.NewTextFieldMapping()
	categoryFieldMapping.Analyzer = en.AnalyzerName
	categoryFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	// SKU - exact match only.
	skuFieldMapping := bleve.NewTextFieldMapping()
	skuFieldMapping.Analyzer = keyword.Name
	skuFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("sku", skuFieldMapping)

	// ID - stored but not analyzed.
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
