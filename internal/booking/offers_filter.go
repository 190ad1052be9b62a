package booking

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"airbook/pkg/logger"
)

type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type OfferFilterOptions struct {
	PriceRange     *PriceRange `json:"price_range,omitempty"`
	MaxConnections *int        `json:"max_connections,omitempty"`
	Carriers       []string    `json:"carriers,omitempty"`
}

type OfferSortOptions struct {
	By    string `json:"by"`    // price
	Order string `json:"order"` // asc, desc
}

type FilterOffersRequest struct {
	SearchInput
	Filters *OfferFilterOptions `json:"filters,omitempty"`
	Sort    *OfferSortOptions   `json:"sort,omitempty"`
}

// FilterOffers re-runs the search (served from cache when possible) and
// applies filters and sorting to the resulting offer collection.
func (s *Service) FilterOffers(ctx context.Context, req FilterOffersRequest) (*SearchResponse, error) {
	criteria, _, err := BuildSearchCriteria(req.SearchInput)
	if err != nil {
		return nil, err
	}

	cacheKey := s.generateCacheKey(criteria)
	cached, cerr := s.cache.Get(ctx, cacheKey)
	if cerr == nil && cached != "" {
		var response SearchResponse
		if uerr := json.Unmarshal([]byte(cached), &response); uerr == nil {
			return s.filterResponse(&response, req, cacheKey, true), nil
		}
		s.logger.Error("failed to unmarshal cached search", logger.Field{Key: "cache_key", Value: cacheKey})
	}

	// Cache miss: fetch fresh results, then filter.
	response, err := s.Search(ctx, req.SearchInput)
	if err != nil {
		return nil, err
	}
	return s.filterResponse(response, req, cacheKey, false), nil
}

func (s *Service) filterResponse(response *SearchResponse, req FilterOffersRequest, cacheKey string, cacheHit bool) *SearchResponse {
	offers := response.Offers
	if req.Filters != nil {
		offers = s.applyOfferFilters(offers, *req.Filters)
	}
	if req.Sort != nil {
		offers = s.applyOfferSorting(offers, *req.Sort)
	}

	return &SearchResponse{
		Criteria: response.Criteria,
		Offers:   offers,
		Metadata: SearchMetadata{
			OfferCount:   len(offers),
			Warnings:     response.Metadata.Warnings,
			SearchTimeMs: response.Metadata.SearchTimeMs,
			CacheKey:     cacheKey,
			CacheHit:     cacheHit,
		},
	}
}

func (s *Service) applyOfferFilters(offers []Offer, opts OfferFilterOptions) []Offer {
	// Pre-allocate assuming worst case (nothing filtered) to avoid resizing
	filtered := make([]Offer, 0, len(offers))
	for _, offer := range offers {
		if offerMatches(offer, opts) {
			filtered = append(filtered, offer)
		}
	}
	return filtered
}

// offerMatches returns true only if ALL active filters pass
func offerMatches(offer Offer, opts OfferFilterOptions) bool {
	if opts.PriceRange != nil {
		if offer.TotalAmount < opts.PriceRange.Low || offer.TotalAmount > opts.PriceRange.High {
			return false
		}
	}

	if opts.MaxConnections != nil {
		for _, slice := range offer.Slices {
			if len(slice.Segments)-1 > *opts.MaxConnections {
				return false
			}
		}
	}

	if len(opts.Carriers) > 0 {
		match := false
		for _, carrier := range opts.Carriers {
			if strings.EqualFold(carrier, offer.Owner) {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}

	return true
}

func (s *Service) applyOfferSorting(offers []Offer, sortOpt OfferSortOptions) []Offer {
	if len(offers) <= 1 {
		return offers
	}

	// returning a new slice is safer for concurrency.
	sorted := make([]Offer, len(offers))
	copy(sorted, offers)

	switch sortOpt.By {
	case "price":
		// Stable sort so equal prices keep their upstream order
		sort.SliceStable(sorted, func(i, j int) bool {
			if sortOpt.Order == "desc" {
				return sorted[i].TotalAmount > sorted[j].TotalAmount
			}
			return sorted[i].TotalAmount < sorted[j].TotalAmount
		})
	default:
		s.logger.Warn("invalid_sort_criteria", logger.Field{Key: "sort_by", Value: sortOpt.By})
	}

	return sorted
}
