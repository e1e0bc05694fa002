package inbound

import (
	"github.com/khairicode/storebite/internal/pkg/router"
	"github.com/khairicode/storebite/internal/product/entity"
	"github.com/khairicode/storebite/internal/product/usecase"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for the product catalog.
type HTTPEndpoint struct {
	uc uc
}

// List returns a page of products.
// @Summary List products
// @Tags Product
// @Produce json
// @Success 200 {object} ListProductsResponse
// @Router /api/v1/products [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ProductList(r.Context(), usecase.ProductListInput{
		Search: r.GetQuery("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return ListProductsResponse{
		Products: lo.Map(resp.Products, func(p entity.Product, _ int) ProductResponse {
			return toProductResponse(p)
		}),
		Total: resp.Total,
		Page:  resp.Page,
		Limit: resp.Limit,
	}, nil
}

// Detail returns one product by its identifier.
// @Summary Get product detail
// @Tags Product
// @Produce json
// @Success 200 {object} ProductResponse
// @Failure 400 "Malformed identifier"
// @Failure 404 "Product not found"
// @Router /api/v1/products/{id} [get]
func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ProductDetail(r.Context(), usecase.ProductDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toProductResponse(resp.Product), nil
}

// Create persists a new product.
// @Summary Create product
// @Tags Product
// @Accept json
// @Produce json
// @Success 201 {object} ProductResponse
// @Failure 422 "Validation error"
// @Router /api/v1/products [post]
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateProductRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ProductCreate(r.Context(), usecase.ProductCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return nil, err
	}

	return CreatedProductResponse{ProductResponse: toProductResponse(resp.Product)}, nil
}

// Update applies a partial update to a product.
// @Summary Update product
// @Tags Product
// @Accept json
// @Produce json
// @Success 200 {object} ProductResponse
// @Failure 404 "Product not found"
// @Failure 422 "Validation error"
// @Router /api/v1/products/{id} [put]
func (h *HTTPEndpoint) Update(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateProductRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ProductUpdate(r.Context(), usecase.ProductUpdateInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return nil, err
	}

	return toProductResponse(resp.Product), nil
}

// Delete removes a product unless other records still reference it.
// @Summary Delete product
// @Tags Product
// @Produce json
// @Failure 404 "Product not found"
// @Failure 409 "Product referenced elsewhere"
// @Router /api/v1/products/{id} [delete]
func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.ProductDelete(r.Context(), usecase.ProductDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return router.Ack("Product deleted successfully"), nil
}
