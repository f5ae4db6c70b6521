package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string  `form:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Email string  `validate:"email"`
}

func TestFromBindError(t *testing.T) {
	v := validator.New()
	err := v.Struct(&sample{Price: -1, Email: "nope"})

	fe := FromBindError(err, &sample{})
	assert.Equal(t, "This field is required.", fe["name"])
	assert.Equal(t, "Must be 0 or more.", fe["price"])
	assert.Equal(t, "Enter a valid email address.", fe["email"])
}

func TestFromBindError_NonValidation(t *testing.T) {
	fe := FromBindError(errors.New("EOF"), &sample{})
	assert.Equal(t, FieldErrors{"_": "The submitted data is invalid."}, fe)
}

func TestFieldErrors_AddKeepsFirst(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("price", "first")
	fe.Add("price", "second")
	assert.Equal(t, "first", fe["price"])
}
