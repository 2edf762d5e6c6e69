package api

import (
	"context"
	"fmt"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {

	var categories []models.Category

	if err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {

	var created models.Category

	if err := c.post(ctx, "/categories", category, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, category *models.Category) (*models.Category, error) {

	var updated models.Category

	if err := c.put(ctx, fmt.Sprintf("/categories/%d", id), category, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/categories/%d", id), nil)
}
