// Package inbound exposes the product module over HTTP.
package inbound

import (
	"context"
	"net/http"

	"github.com/khairicode/storebite/internal/pkg/router"
	"github.com/khairicode/storebite/internal/product/usecase"
)

type uc interface {
	ProductList(ctx context.Context, in usecase.ProductListInput) (*usecase.ProductListOutput, error)
	ProductDetail(ctx context.Context, in usecase.ProductDetailInput) (*usecase.ProductDetailOutput, error)
	ProductCreate(ctx context.Context, in usecase.ProductCreateInput) (*usecase.ProductCreateOutput, error)
	ProductUpdate(ctx context.Context, in usecase.ProductUpdateInput) (*usecase.ProductUpdateOutput, error)
	ProductDelete(ctx context.Context, in usecase.ProductDeleteInput) error
}

// RegisterHTTPEndpoint mounts the product routes on the router.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/products", end.List)
	r.POST("/api/v1/products", end.Create)
	r.GET("/api/v1/products/:id", end.Detail)
	r.PUT("/api/v1/products/:id", end.Update)
	r.DELETE("/api/v1/products/:id", end.Delete)
}

// PublicEndpoints lists the product routes that skip authentication. The
// catalog is readable and writable without a token.
func PublicEndpoints() map[string]map[string]struct{} {
	return map[string]map[string]struct{}{
		http.MethodGet: {
			"/api/v1/products":     {},
			"/api/v1/products/:id": {},
		},
		http.MethodPost: {
			"/api/v1/products": {},
		},
		http.MethodPut: {
			"/api/v1/products/:id": {},
		},
		http.MethodDelete: {
			"/api/v1/products/:id": {},
		},
	}
}
