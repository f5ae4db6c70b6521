package apphttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shopfront.dev/app/internal/config"
	"shopfront.dev/app/internal/db"
	"shopfront.dev/app/internal/http/cartcookie"
	"shopfront.dev/app/internal/http/flash"
	"shopfront.dev/app/internal/http/handlers"
	"shopfront.dev/app/internal/http/handlers/api"
	"shopfront.dev/app/internal/http/middleware"
	"shopfront.dev/app/internal/http/render"
	"shopfront.dev/app/internal/modules/admin"
	"shopfront.dev/app/internal/modules/catalog"
	"shopfront.dev/app/internal/modules/products"
	"shopfront.dev/app/internal/modules/users"
	"shopfront.dev/app/internal/storage"
	"shopfront.dev/app/templates"
)

const (
	flashCookie = "shop_flash"
	cartCookie  = "shop_cart"
)

// ProductService is what the storefront needs from the product API.
type ProductService interface {
	catalog.Backend
	admin.Creator
}

type WebDeps struct {
	Logger   *slog.Logger
	Config   config.Web
	Products ProductService
	Tokens   admin.TokenStore
	Storage  storage.Storage // optional
}

// NewRouter builds the storefront.
func NewRouter(d WebDeps) (*gin.Engine, error) {
	if d.Products == nil || d.Tokens == nil {
		return nil, errors.New("storefront needs a product service and a token store")
	}
	tmpl, err := templates.Parse()
	if err != nil {
		return nil, err
	}

	l := d.Logger
	flashCodec := flash.NewCodec(d.Config.CookieSecret, flashCookie, d.Config.CookieSecure)
	cartCodec := cartcookie.New(d.Config.CookieSecret, cartCookie, d.Config.CookieSecure)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = storage.MaxImageSize + 1<<20

	r.Use(
		middleware.RequestID(),
		middleware.Logger(l),
		middleware.Flash(flashCodec),
		middleware.CartCount(cartCodec),
		middleware.ErrorHandler(l, render.ErrorPage),
		middleware.Recovery(l),
	)

	if local, ok := d.Storage.(*storage.Local); ok {
		r.Static(local.URLPrefix, local.BaseDir)
	}

	catalogH := handlers.NewCatalogHandler(d.Products, cartCodec, l)
	cartH := handlers.NewCartHandler(cartCodec, flashCodec, l)
	adminH := handlers.NewAdminProductsHandler(admin.NewSubmitter(d.Products, d.Tokens, l), d.Storage, flashCodec, l)

	r.GET("/healthz", handlers.Healthz("web"))
	r.GET("/", catalogH.Index)
	r.POST("/products/:id/delete", catalogH.DeleteProduct)

	cartG := r.Group("/cart")
	{
		cartG.POST("/add", cartH.Add)
		cartG.POST("/items/:id/increase", cartH.Increase)
		cartG.POST("/items/:id/decrease", cartH.Decrease)
		cartG.POST("/items/:id/remove", cartH.Remove)
	}

	adminG := r.Group("/admin")
	{
		adminG.GET("", adminH.New)
		adminG.POST("/products", adminH.Create)
	}

	r.NoRoute(func(c *gin.Context) {
		render.ErrorPage(c, http.StatusNotFound, "Page not found.", middleware.GetRequestID(c))
	})
	return r, nil
}

// NewAPIRouter builds the product API over gdb.
func NewAPIRouter(l *slog.Logger, gdb *gorm.DB, cfg config.API) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(l),
		middleware.ErrorHandler(l, nil),
		middleware.Recovery(l),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	productsH := api.NewProductsHandler(products.NewGormRepo(gdb))
	usersH := api.NewUsersHandler(users.NewService(gdb))

	r.GET("/", api.Root)
	r.GET("/healthz", api.Healthz(func(ctx context.Context) error { return db.Ping(ctx, gdb) }, l))

	r.GET("/products", productsH.List)
	r.POST("/products", productsH.Create)
	r.GET("/products/:id", productsH.Get)
	r.PUT("/products/:id", productsH.Update)
	r.DELETE("/products/:id", productsH.Delete)

	r.POST("/users", usersH.Create)
	r.GET("/users/:id", usersH.Get)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "request_id": middleware.GetRequestID(c)})
	})
	return r
}
