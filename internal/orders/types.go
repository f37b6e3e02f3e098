package orders

import "time"

// BasketItem is one (product, quantity) line embedded in an order.
type BasketItem struct {
	Prod     string `json:"prod" dynamodbav:"prod"`
	Quantity int    `json:"quantity" dynamodbav:"quantity"`
}

// Order represents the item stored in the orders DynamoDB table.
type Order struct {
	ID                   string       `json:"id,omitempty" dynamodbav:"order_id"` // PK; assigned on first save
	User                 string       `json:"user,omitempty" dynamodbav:"user,omitempty"`
	Address              string       `json:"address,omitempty" dynamodbav:"address,omitempty"`
	PaymentMethod        string       `json:"paymentMethod,omitempty" dynamodbav:"payment_method,omitempty"`
	TransportationMethod string       `json:"transportationMethod,omitempty" dynamodbav:"transportation_method,omitempty"`
	OrderLine            []BasketItem `json:"orderLine" dynamodbav:"order_line"`
	Date                 time.Time    `json:"date" dynamodbav:"date"` // GSI range key
}

// CheckValidity reports whether the order carries everything needed to be
// fulfilled: an address, a payment method, a transportation method and an
// order line. It is not enforced on any write path; callers opt in.
func CheckValidity(o Order) bool {
	if o.Address == "" {
		return false
	}
	if o.PaymentMethod == "" {
		return false
	}
	if o.TransportationMethod == "" {
		return false
	}
	if o.OrderLine == nil {
		return false
	}
	return true
}
