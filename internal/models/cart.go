package models

import (
	"github.com/shopspring/decimal"
)

// CartItem is a server-owned line. Name, image and unit price are snapshots
// taken by the backend at add time; Subtotal is always server-computed.
type CartItem struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage,omitempty"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Cart is the backend's snapshot of the signed-in user's cart. The client
// never recomputes TotalItems or TotalAmount; both are taken as-is from the
// latest server response.
type Cart struct {
	ID          int64           `json:"id"`
	Items       []CartItem      `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type AddItemRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity"  validate:"required,min=1"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
