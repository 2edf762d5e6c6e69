package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

// CreateVNPayPayment asks the backend for the hosted gateway URL for an order.
// Control leaves the application entirely once the user follows it.
func (c *Client) CreateVNPayPayment(ctx context.Context, orderID int64) (string, error) {

	query := url.Values{}
	query.Set("orderId", strconv.FormatInt(orderID, 10))

	var init models.PaymentInit

	if err := c.do(ctx, http.MethodPost, "/payment/vnpay/create", query, nil, &init); err != nil {
		return "", err
	}

	return init.PaymentURL, nil
}

// VerifyVNPayReturn relays the gateway's return query string verbatim to the
// backend; the client makes no attempt to interpret the parameters itself.
func (c *Client) VerifyVNPayReturn(ctx context.Context, params url.Values) (*models.PaymentVerification, error) {

	var result models.PaymentVerification

	if err := c.get(ctx, "/payment/vnpay-return", params, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
