package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

func (c *Client) ListProducts(ctx context.Context, page, size int) (*models.ProductPage, error) {

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result models.ProductPage

	if err := c.get(ctx, "/products", query, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) SearchProducts(ctx context.Context, params *models.SearchProductsParams) (*models.ProductPage, error) {

	query := url.Values{}

	if params.Keyword != "" {
		query.Set("keyword", params.Keyword)
	}

	if params.CategoryID > 0 {
		query.Set("categoryId", strconv.FormatInt(params.CategoryID, 10))
	}

	if params.MinPrice != nil {
		query.Set("minPrice", params.MinPrice.String())
	}

	if params.MaxPrice != nil {
		query.Set("maxPrice", params.MaxPrice.String())
	}

	query.Set("page", strconv.Itoa(params.Page))
	query.Set("size", strconv.Itoa(params.Size))

	var result models.ProductPage

	if err := c.get(ctx, "/products/search", query, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {

	var product models.Product

	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) RelatedProducts(ctx context.Context, id int64, page, size int) (*models.ProductPage, error) {

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result models.ProductPage

	if err := c.get(ctx, fmt.Sprintf("/products/%d/related", id), query, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Admin surface below; the backend enforces the role, the client just calls.

func (c *Client) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	var product models.Product

	if err := c.post(ctx, "/products", req, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	var product models.Product

	if err := c.put(ctx, fmt.Sprintf("/products/%d", id), req, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/products/%d", id), nil)
}
