package catalog

import (
	"github.com/shopspring/decimal"

	"shopfront.dev/app/internal/modules/cart"
)

// Product is the storefront's read-only copy of a product owned by the API.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
}

func (p Product) Snapshot() cart.ProductSnapshot {
	return cart.ProductSnapshot{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
}

// CreateProductInput is the POST /products body. Description and image_url
// are always sent, empty when not filled in.
type CreateProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

// productDTO mirrors the API's product representation. Optional text fields
// come back as null.
type productDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"image_url"`
}

func (d productDTO) toProduct() Product {
	return Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: deref(d.Description),
		Price:       decimal.NewFromFloat(d.Price),
		Stock:       d.Stock,
		ImageURL:    deref(d.ImageURL),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
