package inbound

import (
	"net/http"
	"time"

	"github.com/khairicode/storebite/internal/product/entity"
)

// CreateProductRequest is the payload for POST /products. Price and Stock are
// pointers so omitting them is reported as a validation error rather than
// silently defaulting to zero.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int32   `json:"stock"`
}

// UpdateProductRequest is the payload for PUT /products/:id. Absent fields
// are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int32   `json:"stock"`
}

// ProductResponse is the JSON view of a product. The identifier is rendered
// as a string because snowflake IDs exceed the safe integer range of
// JavaScript clients.
type ProductResponse struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int32     `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ListProductsResponse is the JSON view of a product listing page.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int32             `json:"page"`
	Limit    int32             `json:"limit"`
}

// CreatedProductResponse wraps a created product so the endpoint responds
// with 201.
type CreatedProductResponse struct {
	ProductResponse
}

// StatusCode marks the response as 201 Created.
func (CreatedProductResponse) StatusCode() int { return http.StatusCreated }

// Message describes the outcome.
func (CreatedProductResponse) Message() string { return "Product created successfully" }
