package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/Ant-man74/HeraWebMono/internal/awsx"
	"github.com/Ant-man74/HeraWebMono/internal/config"
	"github.com/Ant-man74/HeraWebMono/internal/handlers"
)

func setupRouter(cfg handlers.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestLogger(cfg.Logger))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(r, cfg)

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	clients, err := awsx.NewClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	hcfg := handlers.Config{
		DynamoDB:         clients.DynamoDB,
		SQS:              clients.SQS,
		CloudWatch:       clients.CloudWatch,
		OrdersTable:      cfg.OrdersTable,
		ProductsTable:    cfg.ProductsTable,
		QueueURL:         cfg.QueueURL,
		MetricsNamespace: cfg.MetricsNamespace,
		Logger:           logger,
	}

	r := setupRouter(hcfg)

	// if RUN_LOCAL is set to "true", run a local HTTP server for development.
	if cfg.RunLocal {
		addr := ":" + cfg.Port
		logger.Info("running local server", "addr", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
