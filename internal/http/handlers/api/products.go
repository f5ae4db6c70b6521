package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shopfront.dev/app/internal/http/middleware"
	"shopfront.dev/app/internal/http/validation"
	"shopfront.dev/app/internal/modules/products"
	"shopfront.dev/app/internal/shared/apperr"
)

// ProductInput is the body of POST and PUT /products.
type ProductInput struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Stock       *int     `json:"stock" binding:"required,gte=0"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,max=1024"`
}

func (in ProductInput) fields() products.Fields {
	return products.Fields{
		Name:        in.Name,
		Description: in.Description,
		Price:       decimal.NewFromFloat(*in.Price),
		Stock:       *in.Stock,
		ImageURL:    in.ImageURL,
	}
}

// ProductResponse keeps price a JSON number; clients parse it as one.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"image_url"`
}

func toResponse(p products.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}
}

type ProductsHandler struct {
	repo products.Repository
}

func NewProductsHandler(repo products.Repository) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

// List handles GET /products?skip=&limit=.
func (h *ProductsHandler) List(c *gin.Context) {
	skip, err1 := queryInt(c, "skip", 0)
	limit, err2 := queryInt(c, "limit", products.DefaultLimit)
	if err := errors.Join(err1, err2); err != nil {
		middleware.Fail(c, apperr.InvalidErr("skip and limit must be integers.", nil))
		return
	}

	items, err := h.repo.List(c.Request.Context(), skip, limit)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		failProduct(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var in ProductInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.repo.Create(c.Request.Context(), in.fields())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}

// Update handles PUT /products/:id as a full replacement.
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in ProductInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.repo.Update(c.Request.Context(), id, in.fields())
	if err != nil {
		failProduct(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		failProduct(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func failProduct(c *gin.Context, err error) {
	if errors.Is(err, products.ErrNotFound) {
		middleware.Fail(c, apperr.NotFoundErr("Product not found"))
		return
	}
	middleware.Fail(c, apperr.Wrap(err))
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, dst)))
		return false
	}
	return true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("id must be an integer.", nil))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
