package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront.dev/app/internal/modules/catalog"
)

func TestPayload_BlankStockDefaultsToZero(t *testing.T) {
	in, err := ProductForm{Name: "Mouse", Price: "999", Stock: ""}.Payload()
	require.NoError(t, err)

	assert.Equal(t, catalog.CreateProductInput{
		Name:        "Mouse",
		Description: "",
		Price:       999,
		Stock:       0,
		ImageURL:    "",
	}, in)
}

func TestPayload_ParsesNumbers(t *testing.T) {
	in, err := ProductForm{
		Name:        "Headphones",
		Description: "Noise cancelling",
		Price:       " 2499.50 ",
		Stock:       "15",
		ImageURL:    "https://img/h.jpg",
	}.Payload()
	require.NoError(t, err)

	assert.Equal(t, 2499.5, in.Price)
	assert.Equal(t, 15, in.Stock)
	assert.Equal(t, "Noise cancelling", in.Description)
	assert.Equal(t, "https://img/h.jpg", in.ImageURL)
}

func TestPayload_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		form  ProductForm
		field string
		err   error
	}{
		{"price text", ProductForm{Name: "x", Price: "abc"}, "price", ErrInvalidPrice},
		{"price blank", ProductForm{Name: "x", Price: "  "}, "price", ErrInvalidPrice},
		{"price NaN", ProductForm{Name: "x", Price: "NaN"}, "price", ErrInvalidPrice},
		{"price Inf", ProductForm{Name: "x", Price: "Inf"}, "price", ErrInvalidPrice},
		{"price -Infinity", ProductForm{Name: "x", Price: "-Infinity"}, "price", ErrInvalidPrice},
		{"price overflow", ProductForm{Name: "x", Price: "1e400"}, "price", ErrInvalidPrice},
		{"stock decimal", ProductForm{Name: "x", Price: "1", Stock: "1.5"}, "stock", ErrInvalidStock},
		{"stock text", ProductForm{Name: "x", Price: "1", Stock: "many"}, "stock", ErrInvalidStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Payload()
			require.ErrorIs(t, err, tt.err)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}
