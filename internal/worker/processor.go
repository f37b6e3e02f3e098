// Package worker consumes queued confirmation messages and sends the
// confirmation emails.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Ant-man74/HeraWebMono/internal/awsx"
	"github.com/Ant-man74/HeraWebMono/internal/mail"
	"github.com/Ant-man74/HeraWebMono/internal/metrics"
	"github.com/Ant-man74/HeraWebMono/internal/orders"
)

// Processor handles SQS confirmation messages.
type Processor struct {
	store   *orders.Store
	mailer  *mail.Mailer
	metrics *metrics.Recorder
	logger  *slog.Logger
}

func NewProcessor(store *orders.Store, mailer *mail.Mailer, rec *metrics.Recorder, logger *slog.Logger) *Processor {
	return &Processor{
		store:   store,
		mailer:  mailer,
		metrics: rec,
		logger:  logger,
	}
}

// Handle receives an SQS batch event and processes each message. Returning
// an error makes the runtime retry; repeated failures go to the DLQ.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			p.logger.Error("worker error", "error", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg awsx.ConfirmationMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	p.logger.Info("processing confirmation", "order_id", msg.OrderID, "correlation_id", msg.CorrelationID)

	o, err := p.store.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("fetch order: %w", err)
	}
	if o == nil {
		// Should never happen — DLQ if it does
		return fmt.Errorf("order not found: %s", msg.OrderID)
	}

	if err := p.mailer.SendOrderConfirmation(ctx, *o, o.User); err != nil {
		return fmt.Errorf("send confirmation for order %s: %w", msg.OrderID, err)
	}

	p.metrics.Count(ctx, "ConfirmationEmailsSent", 1)
	p.logger.Info("confirmation sent", "order_id", msg.OrderID)
	return nil
}
