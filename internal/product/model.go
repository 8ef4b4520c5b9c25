package product

import "time"

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price       string    `json:"price"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	SubCategory string    `json:"sub_category,omitempty"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	Bestseller  bool      `json:"bestseller"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string   `json:"name"        example:"Round Neck Tee"`
	Description string   `json:"description" example:"Lightweight cotton"`
	Price       string   `json:"price"       example:"199.90"`
	Images      []string `json:"images"`
	Category    string   `json:"category"    example:"Men"`
	SubCategory string   `json:"sub_category" example:"Topwear"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Bestseller  bool     `json:"bestseller"`
}

// RemoveProductRequest addresses a product by id.
// swagger:model RemoveProductRequest
type RemoveProductRequest struct {
	ID string `json:"id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
}
