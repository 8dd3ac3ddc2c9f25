// Package catalog loads the authoritative product list from the store.
package catalog

import (
	"context"

	"github.com/sushii-shop/storefront/internal/models"
	"github.com/sushii-shop/storefront/internal/store"
	"github.com/sushii-shop/storefront/internal/transport"
)

const Collection = "products"

type Service struct {
	Store *store.Store
}

// record mirrors the on-disk product. Prices are occasionally stored as
// strings by hand-edited catalogs, so the price field is coerced.
type record struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       transport.Number `json:"price"`
	Image       string           `json:"image"`
}

// Products returns the catalog with prices coerced to numbers. A missing
// catalog file yields an empty catalog, not an error.
func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	var records []record
	if err := s.Store.ReadCollection(Collection, &records); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(records))
	for _, r := range records {
		price, _ := r.Price.Float64()
		products = append(products, models.Product{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Price:       price,
			Image:       r.Image,
		})
	}
	return products, nil
}

// FindByID looks a product up in an already-loaded catalog.
func FindByID(products []models.Product, id int64) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
