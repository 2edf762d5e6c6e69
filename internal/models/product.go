package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Product struct {
	ID            int64           `json:"id"`
	CategoryID    int64           `json:"categoryId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	Category      *Category       `json:"category,omitempty"`
}

// SearchProductsParams maps to the backend's product search query string.
type SearchProductsParams struct {
	Keyword    string
	CategoryID int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Page       int
	Size       int
}

type CreateProductRequest struct {
	CategoryID    int64           `json:"categoryId" validate:"required"`
	Name          string          `json:"name" validate:"required,min=3,max=200"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

type UpdateProductRequest struct {
	CategoryID    *int64           `json:"categoryId,omitempty"`
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	StockQuantity *int             `json:"stockQuantity,omitempty" validate:"omitempty,gte=0"`
	ImageURL      *string          `json:"imageUrl,omitempty"`
	Status        *string          `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}
