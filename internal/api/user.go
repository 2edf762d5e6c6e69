package api

import (
	"context"
	"net/http"
	"time"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

func (c *Client) Profile(ctx context.Context) (*models.User, error) {

	var user models.User

	if err := c.get(ctx, "/user/profile", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error) {

	var user models.User

	if err := c.put(ctx, "/user/profile", req, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	return c.post(ctx, "/user/change-password", req, nil)
}

// Ping is a cheap reachability probe used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var categories []models.Category

	return c.doWithTimeout(ctx, 3*time.Second, http.MethodGet, "/categories", &categories)
}
