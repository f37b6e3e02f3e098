package catalog

// Product represents the item stored in the products DynamoDB table.
type Product struct {
	ID          string   `json:"id,omitempty" dynamodbav:"product_id"` // PK; assigned on first save
	Name        string   `json:"name" dynamodbav:"name"`
	Description string   `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Price       float64  `json:"price" dynamodbav:"price"`
	Quantity    int      `json:"quantity" dynamodbav:"quantity"`
	Categories  []string `json:"categories,omitempty" dynamodbav:"categories,omitempty"`
	Image       string   `json:"image,omitempty" dynamodbav:"image,omitempty"` // base64 payload
}
