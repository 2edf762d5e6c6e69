package api

import (
	"context"
	"fmt"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

// GetCart returns the server's current cart snapshot for the signed-in user.
func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {

	var cart models.Cart

	if err := c.get(ctx, "/cart", nil, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

// AddCartItem asks the backend to add a line and returns the resulting
// snapshot. Stock checks happen server-side; the call may be rejected.
func (c *Client) AddCartItem(ctx context.Context, req *models.AddItemRequest) (*models.Cart, error) {

	var cart models.Cart

	if err := c.post(ctx, "/cart/add", req, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, req *models.UpdateItemRequest) (*models.Cart, error) {

	var cart models.Cart

	if err := c.put(ctx, fmt.Sprintf("/cart/items/%d", itemID), req, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) (*models.Cart, error) {

	var cart models.Cart

	if err := c.delete(ctx, fmt.Sprintf("/cart/items/%d", itemID), &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.delete(ctx, "/cart/clear", nil)
}
