package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Suggestion is one ranked typeahead hit.
type Suggestion struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Brand    string  `json:"brand,omitempty"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score"`
}

// Suggest returns up to limit ranked product suggestions for the given
// input. An empty input returns no suggestions.
func (s *SuggestIndex) Suggest(ctx context.Context, input string, limit int) ([]Suggestion, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return []Suggestion{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	searchRequest := bleve.NewSearchRequestOptions(buildSuggestQuery(input), limit, 0, false)
	searchRequest.Fields = []string{"title", "brand", "category"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute suggest query: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		sg := Suggestion{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if t, ok := hit.Fields["title"].(string); ok {
			sg.Title = t
		}
		if b, ok := hit.Fields["brand"].(string); ok {
			sg.Brand = b
		}
		if c, ok := hit.Fields["category"].(string); ok {
			sg.Category = c
		}
		suggestions = append(suggestions, sg)
	}

	return suggestions, nil
}

// buildSuggestQuery constructs the ranked disjunction for an input.
// Title matches rank highest, then brand, then category; a fuzzy and a
// prefix clause on the title pick up typos and partial words.
func buildSuggestQuery(input string) query.Query {
	queries := []query.Query{}

	titleMatch := bleve.NewMatchQuery(input)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)
	queries = append(queries, titleMatch)

	brandMatch := bleve.NewMatchQuery(input)
	brandMatch.SetField("brand")
	brandMatch.SetBoost(1.5)
	queries = append(queries, brandMatch)

	categoryMatch := bleve.NewMatchQuery(input)
	categoryMatch.SetField("category")
	queries = append(queries, categoryMatch)

	// SKU lookups are exact: pasting a part number should hit.
	skuTerm := bleve.NewTermQuery(input)
	skuTerm.SetField("sku")
	skuTerm.SetBoost(5.0)
	queries = append(queries, skuTerm)

	fuzzyQuery := bleve.NewFuzzyQuery(input)
	fuzzyQuery.SetFuzziness(1)
	fuzzyQuery.SetField("title")
	fuzzyQuery.SetBoost(0.8)
	queries = append(queries, fuzzyQuery)

	if len(input) >= 2 {
		prefixQuery := bleve.NewPrefixQuery(strings.ToLower(input))
		prefixQuery.SetField("title")
		prefixQuery.SetBoost(0.5)
		queries = append(queries, prefixQuery)
	}

	return bleve.NewDisjunctionQuery(queries...)
}
