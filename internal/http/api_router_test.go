package apphttp

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront.dev/app/internal/config"
	"shopfront.dev/app/internal/db"
	"shopfront.dev/app/internal/modules/catalog"
	"shopfront.dev/app/internal/modules/products"
	"shopfront.dev/app/internal/modules/users"
)

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	gdb, err := db.Open(config.Database{Driver: "sqlite", DSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background(), gdb, &products.Product{}, &users.User{}))
	t.Cleanup(func() { _ = db.Close(gdb) })

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAPIRouter(l, gdb, config.API{CORSOrigins: []string{"http://localhost:3000"}})
}

func call(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAPI_ProductCRUD(t *testing.T) {
	h := newTestAPI(t)

	w := call(h, http.MethodGet, "/", "")
	assert.JSONEq(t, `{"message":"Ecommerce API is running"}`, w.Body.String())

	w = call(h, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = call(h, http.MethodPost, "/products", `{"name":"Mouse","description":"","price":999,"stock":0,"image_url":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Mouse","description":"","price":999,"stock":0,"image_url":""}`, w.Body.String())

	w = call(h, http.MethodPut, "/products/1", `{"name":"Mouse Pro","price":1299.5,"stock":4}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Mouse Pro","description":null,"price":1299.5,"stock":4,"image_url":null}`, w.Body.String())

	w = call(h, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Mouse Pro"`)

	w = call(h, http.MethodDelete, "/products/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	for _, m := range []string{http.MethodGet, http.MethodDelete} {
		w = call(h, m, "/products/1", "")
		assert.Equal(t, http.StatusNotFound, w.Code, m)
		assert.Contains(t, w.Body.String(), "Product not found")
	}
	w = call(h, http.MethodPut, "/products/1", `{"name":"x","price":1,"stock":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_ProductValidation(t *testing.T) {
	h := newTestAPI(t)

	w := call(h, http.MethodPost, "/products", `{"price":-1,"stock":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "This field is required.", body.Fields["name"])
	assert.Equal(t, "Must be 0 or more.", body.Fields["price"])

	w = call(h, http.MethodGet, "/products?limit=ten", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(h, http.MethodGet, "/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Users(t *testing.T) {
	h := newTestAPI(t)

	w := call(h, http.MethodPost, "/users", `{"email":"ada@example.com","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"email":"ada@example.com"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = call(h, http.MethodPost, "/users", `{"email":"ada@example.com","password":"another one"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(h, http.MethodGet, "/users/1", "")
	assert.JSONEq(t, `{"id":1,"email":"ada@example.com"}`, w.Body.String())

	w = call(h, http.MethodGet, "/users/7", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestAPI_CORSPreflight(t *testing.T) {
	h := newTestAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

// The storefront client against the real API handlers, end to end.
func TestAPI_WithCatalogClient(t *testing.T) {
	srv := httptest.NewServer(newTestAPI(t))
	defer srv.Close()

	ctx := context.Background()
	cl := catalog.NewClient(srv.URL, 0)

	created, err := cl.Create(ctx, catalog.CreateProductInput{Name: "Headphones", Price: 2499, Stock: 5})
	require.NoError(t, err)
	assert.Equal(t, "Headphones", created.Name)

	list, err := cl.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2499", list[0].Price.String())
	assert.Equal(t, 5, list[0].Stock)

	require.NoError(t, cl.Delete(ctx, created.ID))
	err = cl.Delete(ctx, created.ID)
	var se *catalog.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}
