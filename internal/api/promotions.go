package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

// GetPromotionByCode is the lookup behind "apply code" on the checkout page.
// A miss comes back as a NOT_FOUND AppError carrying the server's message.
func (c *Client) GetPromotionByCode(ctx context.Context, code string) (*models.Promotion, error) {

	var promotion models.Promotion

	if err := c.get(ctx, "/promotions/code/"+url.PathEscape(code), nil, &promotion); err != nil {
		return nil, err
	}

	return &promotion, nil
}

func (c *Client) ActivePromotions(ctx context.Context) ([]models.Promotion, error) {

	var promotions []models.Promotion

	if err := c.get(ctx, "/promotions/active", nil, &promotions); err != nil {
		return nil, err
	}

	return promotions, nil
}

func (c *Client) ListPromotions(ctx context.Context) ([]models.Promotion, error) {

	var promotions []models.Promotion

	if err := c.get(ctx, "/promotions", nil, &promotions); err != nil {
		return nil, err
	}

	return promotions, nil
}

func (c *Client) CreatePromotion(ctx context.Context, req *models.CreatePromotionRequest) (*models.Promotion, error) {

	var promotion models.Promotion

	if err := c.post(ctx, "/promotions", req, &promotion); err != nil {
		return nil, err
	}

	return &promotion, nil
}

func (c *Client) UpdatePromotion(ctx context.Context, id int64, req *models.UpdatePromotionRequest) (*models.Promotion, error) {

	var promotion models.Promotion

	if err := c.put(ctx, fmt.Sprintf("/promotions/%d", id), req, &promotion); err != nil {
		return nil, err
	}

	return &promotion, nil
}

func (c *Client) DeletePromotion(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/promotions/%d", id), nil)
}
