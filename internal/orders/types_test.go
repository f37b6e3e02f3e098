package orders

import "testing"

func TestCheckValidity(t *testing.T) {
	complete := Order{
		Address:              "1 Main St",
		PaymentMethod:        "card",
		TransportationMethod: "post",
		OrderLine:            []BasketItem{{Prod: "p-1", Quantity: 1}},
	}
	if !CheckValidity(complete) {
		t.Fatal("expected complete order to be valid")
	}

	// an empty order line is still a line: only a nil sequence is invalid
	empty := complete
	empty.OrderLine = []BasketItem{}
	if !CheckValidity(empty) {
		t.Fatal("expected order with empty line to be valid")
	}

	cases := map[string]func(Order) Order{
		"missing address":        func(o Order) Order { o.Address = ""; return o },
		"missing payment":        func(o Order) Order { o.PaymentMethod = ""; return o },
		"missing transportation": func(o Order) Order { o.TransportationMethod = ""; return o },
		"nil order line":         func(o Order) Order { o.OrderLine = nil; return o },
	}
	for name, mutate := range cases {
		if CheckValidity(mutate(complete)) {
			t.Fatalf("%s: expected invalid", name)
		}
	}
}
