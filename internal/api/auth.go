package api

import (
	"context"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	var user models.User

	if err := c.post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	var resp models.LoginResponse

	if err := c.post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	return c.post(ctx, "/auth/forgot-password", req, nil)
}

func (c *Client) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	return c.post(ctx, "/auth/reset-password", req, nil)
}
