package domain

import (
	"strings"
	"time"
)

// ShopItem is a static catalog entry.
type ShopItem struct {
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"-"`
	Price       int64  `json:"price" yaml:"price"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Coupon maps a code to a fixed amount or a random draw from Choices.
type Coupon struct {
	Code    string  `json:"code" yaml:"code"`
	Amount  int64   `json:"amount,omitempty" yaml:"amount"`
	Choices []int64 `json:"choices,omitempty" yaml:"choices"`
}

// RedeemResult is returned when a coupon is credited.
type RedeemResult struct {
	UserID   string `json:"user_id"`
	Code     string `json:"code"`
	Credited int64  `json:"credited"`
	Balance  int64  `json:"balance"`
}

// PurchaseReceipt records a catalog debit for operator fulfillment.
type PurchaseReceipt struct {
	ReceiptID   string    `json:"receipt_id"`
	UserID      string    `json:"user_id"`
	Item        string    `json:"item"`
	Price       int64     `json:"price"`
	Balance     int64     `json:"balance"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// NormalizeCouponCode trims and upper-cases a code so lookups ignore case and padding.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
