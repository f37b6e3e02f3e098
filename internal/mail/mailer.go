// Package mail sends order-confirmation emails through SES.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/Ant-man74/HeraWebMono/internal/awsx"
	"github.com/Ant-man74/HeraWebMono/internal/orders"
)

// Mailer composes and sends confirmation emails from a fixed sender address.
type Mailer struct {
	client awsx.SESAPI
	from   string
}

func NewMailer(client awsx.SESAPI, from string) *Mailer {
	return &Mailer{client: client, from: from}
}

// SendOrderConfirmation sends the confirmation for o to the given recipient.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, o orders.Order, to string) error {
	subject := fmt.Sprintf("Your order %s is confirmed", o.ID)
	body := confirmationBody(o)

	input := &ses.SendEmailInput{
		Source: &m.from,
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: &subject},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: &body},
			},
		},
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func confirmationBody(o orders.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order %s.\n\n", o.ID)
	fmt.Fprintf(&b, "Placed: %s\n", o.Date.Format("2006-01-02 15:04"))
	if o.Address != "" {
		fmt.Fprintf(&b, "Shipping address: %s\n", o.Address)
	}
	if o.PaymentMethod != "" {
		fmt.Fprintf(&b, "Payment method: %s\n", o.PaymentMethod)
	}
	if o.TransportationMethod != "" {
		fmt.Fprintf(&b, "Shipping via: %s\n", o.TransportationMethod)
	}
	if len(o.OrderLine) > 0 {
		b.WriteString("\nItems:\n")
		for _, item := range o.OrderLine {
			fmt.Fprintf(&b, "  - %s x%d\n", item.Prod, item.Quantity)
		}
	}
	return b.String()
}
