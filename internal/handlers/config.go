// Package handlers exposes the REST surface of the storefront backend.
package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Ant-man74/HeraWebMono/internal/awsx"
	"github.com/Ant-man74/HeraWebMono/internal/catalog"
	"github.com/Ant-man74/HeraWebMono/internal/metrics"
	"github.com/Ant-man74/HeraWebMono/internal/orders"
	"github.com/Ant-man74/HeraWebMono/internal/pdf"
	"github.com/Ant-man74/HeraWebMono/internal/service"
	"github.com/Ant-man74/HeraWebMono/internal/validation"
)

// Config groups dependencies for the API handlers.
type Config struct {
	DynamoDB         awsx.DynamoDBAPI
	SQS              awsx.SQSAPI
	CloudWatch       awsx.CloudWatchAPI
	OrdersTable      string
	ProductsTable    string
	QueueURL         string
	MetricsNamespace string
	Logger           *slog.Logger
}

// RegisterRoutes wires the stores, services and handlers and registers every
// route under /api.
func RegisterRoutes(r *gin.Engine, cfg Config) {
	v := validation.New()
	orderStore := orders.NewStore(cfg.DynamoDB, cfg.OrdersTable)
	productStore := catalog.NewStore(cfg.DynamoDB, cfg.ProductsTable)
	publisher := awsx.NewPublisher(cfg.SQS, cfg.QueueURL)
	rec := metrics.NewRecorder(cfg.CloudWatch, cfg.MetricsNamespace, cfg.Logger)

	orderSvc := service.NewOrderService(orderStore, publisher, rec, cfg.Logger)
	productSvc := service.NewProductService(productStore, cfg.Logger)

	oh := NewOrdersHandler(orderSvc, productSvc, pdf.NewRenderer(), v, cfg.Logger)
	ph := NewProductsHandler(productSvc, v, cfg.Logger)

	api := r.Group("/api")

	api.POST("/orders", oh.Create)
	api.PUT("/orders", oh.Update)
	api.GET("/orders", oh.List)
	api.GET("/orders/pdf/:id", oh.GetPDF)
	api.GET("/orders/id/:id", oh.GetWithProducts)
	api.GET("/orders/user/:user", oh.ListByUser)
	api.GET("/orders/:id", oh.Get)
	api.DELETE("/orders/:id", oh.Delete)

	api.POST("/products", ph.Create)
	api.PUT("/products", ph.Update)
	api.GET("/products", ph.List)
	api.GET("/products/category/:category", ph.ListByCategory)
	api.GET("/products/basket", ph.ListByBasket)
	api.GET("/products/name/:name", ph.ListByName)
	api.GET("/products/:id", ph.Get)
	api.DELETE("/products/:id", ph.Delete)
}
