package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{NotFoundErr("Product not found"), http.StatusNotFound},
		{ConflictErr("taken"), http.StatusConflict},
		{UnavailableErr("down", errors.New("dial")), http.StatusBadGateway},
		{Wrap(errors.New("db")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("outer: %w", NotFoundErr("x")), http.StatusNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	err := Wrap(errors.New("dsn password=secret"))
	assert.Equal(t, "Something went wrong.", PublicMessage(err))
	assert.Equal(t, "Product not found", PublicMessage(NotFoundErr("Product not found")))
	assert.Equal(t, "Something went wrong.", PublicMessage(errors.New("raw")))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil))
}
