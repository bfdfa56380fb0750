package services

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"sync"

	"infinix-store/internal/models"
	"infinix-store/internal/store"
)

const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
)

// ProductFilter mirrors the catalog query parameters category, price and sort.
type ProductFilter struct {
	Category   string
	PriceRange string
	Sort       string
}

type PriceRange struct {
	Min    float64
	Max    float64
	HasMax bool
}

// ParsePriceRange reads "min-max" or "min-"; an empty or zero max means no upper bound.
func ParsePriceRange(v string) (PriceRange, error) {
	minStr, maxStr, _ := strings.Cut(v, "-")

	var r PriceRange
	var err error
	if r.Min, err = strconv.ParseFloat(strings.TrimSpace(minStr), 64); err != nil {
		return PriceRange{}, fmt.Errorf("%w: price %q", ErrInvalidFilter, v)
	}
	if maxStr = strings.TrimSpace(maxStr); maxStr != "" {
		if r.Max, err = strconv.ParseFloat(maxStr, 64); err != nil {
			return PriceRange{}, fmt.Errorf("%w: price %q", ErrInvalidFilter, v)
		}
		r.HasMax = r.Max != 0
	}
	return r, nil
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && (!r.HasMax || price <= r.Max)
}

type CatalogService struct {
	catalog *store.Catalog

	mu   sync.Mutex
	rand *rand.Rand
}

func NewCatalogService(catalog *store.Catalog, r *rand.Rand) *CatalogService {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &CatalogService{catalog: catalog, rand: r}
}

func (s *CatalogService) Categories() []models.Category {
	return s.catalog.Categories()
}

func (s *CatalogService) Product(id string) (models.Product, error) {
	p, err := s.catalog.Product(id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// List filters by category and discounted price, then sorts. "featured" keeps catalog order.
func (s *CatalogService) List(f ProductFilter) ([]models.Product, error) {
	products := s.catalog.Products()

	var priceRange *PriceRange
	if f.PriceRange != "" {
		r, err := ParsePriceRange(f.PriceRange)
		if err != nil {
			return nil, err
		}
		priceRange = &r
	}

	res := products[:0]
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if priceRange != nil && !priceRange.Contains(p.FinalPrice()) {
			continue
		}
		res = append(res, p)
	}

	switch f.Sort {
	case "", SortFeatured:
	case SortPriceAsc:
		sort.SliceStable(res, func(i, j int) bool { return res[i].FinalPrice() < res[j].FinalPrice() })
	case SortPriceDesc:
		sort.SliceStable(res, func(i, j int) bool { return res[i].FinalPrice() > res[j].FinalPrice() })
	case SortRating:
		sort.SliceStable(res, func(i, j int) bool { return res[i].Rating > res[j].Rating })
	default:
		return nil, fmt.Errorf("%w: sort %q", ErrInvalidFilter, f.Sort)
	}
	return res, nil
}

// Featured picks n products at random for the home page.
func (s *CatalogService) Featured(n int) []models.Product {
	products := s.catalog.Products()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rand.Shuffle(len(products), func(i, j int) {
		products[i], products[j] = products[j], products[i]
	})
	if n < len(products) {
		products = products[:n]
	}
	return products
}
