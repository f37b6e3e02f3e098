package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Ant-man74/HeraWebMono/internal/awsx/awstest"
	"github.com/Ant-man74/HeraWebMono/internal/orders"
)

func TestSendOrderConfirmation(t *testing.T) {
	rec := &awstest.SES{}
	m := NewMailer(rec, "orders@storefront.example")

	o := orders.Order{
		ID:                   "o-1",
		User:                 "alice@example.com",
		Address:              "1 Main St",
		PaymentMethod:        "card",
		TransportationMethod: "post",
		OrderLine:            []orders.BasketItem{{Prod: "p-1", Quantity: 2}},
		Date:                 time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := m.SendOrderConfirmation(context.Background(), o, o.User); err != nil {
		t.Fatalf("SendOrderConfirmation error: %v", err)
	}

	if len(rec.Sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(rec.Sent))
	}
	sent := rec.Sent[0]
	if *sent.Source != "orders@storefront.example" {
		t.Fatalf("unexpected source: %s", *sent.Source)
	}
	if got := sent.Destination.ToAddresses; len(got) != 1 || got[0] != "alice@example.com" {
		t.Fatalf("unexpected recipients: %v", got)
	}
	if !strings.Contains(*sent.Message.Subject.Data, "o-1") {
		t.Fatalf("subject missing order id: %s", *sent.Message.Subject.Data)
	}
	body := *sent.Message.Body.Text.Data
	for _, want := range []string{"o-1", "1 Main St", "card", "p-1 x2"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestSendOrderConfirmationError(t *testing.T) {
	rec := &awstest.SES{Err: context.DeadlineExceeded}
	m := NewMailer(rec, "orders@storefront.example")

	if err := m.SendOrderConfirmation(context.Background(), orders.Order{ID: "o-1"}, "u"); err == nil {
		t.Fatal("expected error")
	}
}
