package validation

import (
	"time"

	"github.com/Ant-man74/HeraWebMono/internal/catalog"
	"github.com/Ant-man74/HeraWebMono/internal/orders"
)

// BasketItemPayload is one order line in an order request.
type BasketItemPayload struct {
	Prod     string `json:"prod" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"` // must be >= 1
}

// OrderPayload is the body for POST /orders and PUT /orders.
type OrderPayload struct {
	ID                   string              `json:"id"`
	User                 string              `json:"user"`
	Address              string              `json:"address"`
	PaymentMethod        string              `json:"paymentMethod"`
	TransportationMethod string              `json:"transportationMethod"`
	OrderLine            []BasketItemPayload `json:"orderLine" validate:"dive"`
	Date                 *time.Time          `json:"date"` // optional client timestamp
}

// Order converts the payload to the persisted shape.
func (p OrderPayload) Order() orders.Order {
	o := orders.Order{
		ID:                   p.ID,
		User:                 p.User,
		Address:              p.Address,
		PaymentMethod:        p.PaymentMethod,
		TransportationMethod: p.TransportationMethod,
	}
	if p.OrderLine != nil {
		o.OrderLine = make([]orders.BasketItem, 0, len(p.OrderLine))
		for _, item := range p.OrderLine {
			o.OrderLine = append(o.OrderLine, orders.BasketItem{Prod: item.Prod, Quantity: item.Quantity})
		}
	}
	if p.Date != nil {
		o.Date = *p.Date
	}
	return o
}

// ProductPayload is the body for POST /products and PUT /products.
type ProductPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	Categories  []string `json:"categories"`
	Image       string   `json:"image"`
}

// Product converts the payload to the persisted shape.
func (p ProductPayload) Product() catalog.Product {
	return catalog.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Categories:  p.Categories,
		Image:       p.Image,
	}
}
