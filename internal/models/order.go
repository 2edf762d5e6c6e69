package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

type PaymentMethod string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipping  OrderStatus = "SHIPPING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"

	// PaymentMethodCOD is cash on delivery; PaymentMethodVNPay hands the user
	// off to the externally hosted VNPay gateway.
	PaymentMethodCOD   PaymentMethod = "COD"
	PaymentMethodVNPay PaymentMethod = "VNPAY"
)

type OrderItem struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	FinalAmount     decimal.Decimal `json:"finalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	PhoneNumber     string          `json:"phoneNumber"`
	Note            string          `json:"note,omitempty"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PromotionCode   string          `json:"promotionCode,omitempty"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CreateOrderRequest carries the composed full address string, not the
// structured selection; the backend only ever sees the joined form.
type CreateOrderRequest struct {
	ShippingAddress string        `json:"shippingAddress" validate:"required"`
	PhoneNumber     string        `json:"phoneNumber" validate:"required"`
	Note            string        `json:"note,omitempty"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" validate:"required,oneof=COD VNPAY"`
	PromotionCode   string        `json:"promotionCode,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=PENDING CONFIRMED SHIPPING DELIVERED CANCELLED"`
}
