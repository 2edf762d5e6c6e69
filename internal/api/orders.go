package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {

	var order models.Order

	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*models.Order, error) {

	var order models.Order

	if err := c.get(ctx, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *Client) MyOrders(ctx context.Context, page, size int) (*models.OrderPage, error) {

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result models.OrderPage

	if err := c.get(ctx, "/orders/my-orders", query, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) AllOrders(ctx context.Context, page, size int) (*models.OrderPage, error) {

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result models.OrderPage

	if err := c.get(ctx, "/orders/admin/all", query, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {

	query := url.Values{}
	query.Set("status", string(status))

	var order models.Order

	if err := c.patch(ctx, fmt.Sprintf("/orders/%d/status", id), query, nil, &order); err != nil {
		return nil, err
	}

	return &order, nil
}
