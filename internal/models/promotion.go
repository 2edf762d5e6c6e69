package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED_AMOUNT"
)

// Promotion is the discount rule returned by the lookup-by-code endpoint.
// The client uses it only for a display-side preview; the backend re-validates
// the code at order creation and computes the authoritative discount.
type Promotion struct {
	ID                int64            `json:"id"`
	Code              string           `json:"code"`
	Description       string           `json:"description,omitempty"`
	DiscountType      DiscountType     `json:"discountType"`
	DiscountValue     decimal.Decimal  `json:"discountValue"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount,omitempty"`
	MinOrderAmount    *decimal.Decimal `json:"minOrderAmount,omitempty"`
	StartDate         time.Time        `json:"startDate"`
	EndDate           time.Time        `json:"endDate"`
	Active            bool             `json:"active"`
}

type CreatePromotionRequest struct {
	Code              string           `json:"code" validate:"required,min=3,max=50"`
	Description       string           `json:"description,omitempty"`
	DiscountType      DiscountType     `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	DiscountValue     decimal.Decimal  `json:"discountValue" validate:"required"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount,omitempty"`
	MinOrderAmount    *decimal.Decimal `json:"minOrderAmount,omitempty"`
	StartDate         time.Time        `json:"startDate" validate:"required"`
	EndDate           time.Time        `json:"endDate" validate:"required"`
	Active            bool             `json:"active"`
}

type UpdatePromotionRequest struct {
	Description       *string          `json:"description,omitempty"`
	DiscountValue     *decimal.Decimal `json:"discountValue,omitempty"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount,omitempty"`
	MinOrderAmount    *decimal.Decimal `json:"minOrderAmount,omitempty"`
	EndDate           *time.Time       `json:"endDate,omitempty"`
	Active            *bool            `json:"active,omitempty"`
}
