package store

import (
	"fmt"

	"infinix-store/internal/models"
)

// Catalog is read-only after construction.
type Catalog struct {
	products   []models.Product
	categories []models.Category
	byID       map[string]int
}

func NewCatalog(products []models.Product, categories []models.Category) *Catalog {
	c := &Catalog{
		products:   make([]models.Product, 0, len(products)),
		categories: append([]models.Category(nil), categories...),
		byID:       make(map[string]int, len(products)),
	}
	for _, p := range products {
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}
	return c
}

func (c *Catalog) Products() []models.Product {
	res := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		res = append(res, p.Clone())
	}
	return res
}

func (c *Catalog) Product(id string) (models.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	return c.products[i].Clone(), nil
}

func (c *Catalog) Categories() []models.Category {
	return append([]models.Category(nil), c.categories...)
}

func (c *Catalog) Len() int {
	return len(c.products)
}
