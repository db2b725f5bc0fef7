package httpserver

import (
	"context"
	"errors"
	"log"
	"slices"
	"time"

	"paintland/internal/domain"
	cartsvc "paintland/internal/service/cart"
	ordersvc "paintland/internal/service/order"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogService interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	ListBrandProducts(ctx context.Context, brandID string) ([]domain.Product, error)
	ListMaterials(ctx context.Context) ([]domain.Material, error)
	GetMaterial(ctx context.Context, id string) (*domain.Material, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListColorGroups(ctx context.Context, productID string) ([]domain.ColorGroup, error)
	ListProperties(ctx context.Context, productID string) ([]domain.Property, error)
	ResolveCartItem(ctx context.Context, productID, variantID string) (domain.ProductSnapshot, *domain.ColorVariant, error)
}

type CartRegistry interface {
	Get(ctx context.Context, namespace string) *cartsvc.Model
}

type OrderService interface {
	Summarize(items []domain.LineItem) ordersvc.Summary
	Checkout(items []domain.LineItem, customer *ordersvc.CustomerInfo) (*ordersvc.Checkout, error)
}

type DeviceService interface {
	Issue(ctx context.Context) (token, deviceID string, err error)
	Lookup(ctx context.Context, token string) (string, error)
	TTLSeconds() int
}

// Deps carries the services the router exposes.
type Deps struct {
	CatalogSvc     CatalogService
	Carts          CartRegistry
	OrderSvc       OrderService
	DeviceSvc      DeviceService
	AllowedOrigins []string
}

// buildRouter wires routes for the API. Event streams end when closing is
// closed.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, closing <-chan struct{}) (*gin.Engine, error) {
	if deps.CatalogSvc == nil || deps.Carts == nil || deps.OrderSvc == nil || deps.DeviceSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/device/token", issueDeviceTokenHandler(deps.DeviceSvc))

	router.GET("/brands", listBrandsHandler(deps.CatalogSvc))
	router.GET("/brands/:id", getBrandHandler(deps.CatalogSvc))
	router.GET("/brands/:id/products", listBrandProductsHandler(deps.CatalogSvc))
	router.GET("/materials", listMaterialsHandler(deps.CatalogSvc))
	router.GET("/materials/:id", getMaterialHandler(deps.CatalogSvc))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))
	router.GET("/products/:id/colors", listProductColorsHandler(deps.CatalogSvc))
	router.GET("/products/:id/properties", listProductPropertiesHandler(deps.CatalogSvc))

	me := router.Group("/me", deviceMiddleware(deps.DeviceSvc))
	me.GET("/cart", getCartHandler(deps.Carts))
	me.DELETE("/cart", clearCartHandler(deps.Carts))
	me.POST("/cart/items", addCartItemHandler(deps.Carts, deps.CatalogSvc))
	me.PUT("/cart/items/:key", updateCartItemHandler(deps.Carts))
	me.DELETE("/cart/items/:key", removeCartItemHandler(deps.Carts))
	me.GET("/cart/summary", cartSummaryHandler(deps.Carts, deps.OrderSvc))
	me.POST("/cart/checkout", checkoutHandler(deps.Carts, deps.OrderSvc))
	me.GET("/cart/events", cartEventsHandler(deps.Carts, logger, closing))

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
