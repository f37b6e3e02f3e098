package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/Ant-man74/HeraWebMono/internal/awsx"
	"github.com/Ant-man74/HeraWebMono/internal/config"
	"github.com/Ant-man74/HeraWebMono/internal/mail"
	"github.com/Ant-man74/HeraWebMono/internal/metrics"
	"github.com/Ant-man74/HeraWebMono/internal/orders"
	"github.com/Ant-man74/HeraWebMono/internal/worker"
)

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

	p := worker.NewProcessor(
		orders.NewStore(clients.DynamoDB, cfg.OrdersTable),
		mail.NewMailer(clients.SES, cfg.MailFrom),
		metrics.NewRecorder(clients.CloudWatch, cfg.MetricsNamespace, logger),
		logger,
	)

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if cfg.RunLocal {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = `{"order_id":"local-order-1","user":"local@storefront.example"}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{Body: body},
			},
		}
		if err := p.Handle(context.Background(), event); err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(p.Handle)
}
