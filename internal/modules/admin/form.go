package admin

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"shopfront.dev/app/internal/modules/catalog"
)

// ProductForm is the admin form as typed. Price and stock stay text until
// submit.
type ProductForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Price       string `form:"price" binding:"required"`
	Stock       string `form:"stock"`
	ImageURL    string `form:"image_url"`
	Token       string `form:"form_token"`
}

var (
	ErrInvalidPrice = errors.New("price is not a number")
	ErrInvalidStock = errors.New("stock is not a whole number")
)

// FieldError ties a parse failure to a form field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }

// Payload converts the form into the create request. Blank stock means 0.
// NaN and infinities are rejected since they have no JSON encoding.
func (f ProductForm) Payload() (catalog.CreateProductInput, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return catalog.CreateProductInput{}, &FieldError{Field: "price", Err: ErrInvalidPrice}
	}

	stock := 0
	if s := strings.TrimSpace(f.Stock); s != "" {
		stock, err = strconv.Atoi(s)
		if err != nil {
			return catalog.CreateProductInput{}, &FieldError{Field: "stock", Err: ErrInvalidStock}
		}
	}

	return catalog.CreateProductInput{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Stock:       stock,
		ImageURL:    f.ImageURL,
	}, nil
}

// Cleared returns an empty form carrying a new token.
func Cleared(token string) ProductForm {
	return ProductForm{Token: token}
}
