package order

import "time"

type Order struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Items  []Item `json:"items"`
	// Amount includes the delivery fee (NUMERIC -> string)
	Amount        string    `json:"amount"`
	Address       Address   `json:"address"`
	PaymentMethod string    `json:"payment_method"`
	Payment       bool      `json:"payment"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Item is a denormalized snapshot of a catalog record at order time, with
// the selected variant and quantity attached. It intentionally carries no
// reference that has to stay valid: order history survives later product
// edits and deletions.
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image,omitempty"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}
