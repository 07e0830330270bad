package redemption

import (
	"fmt"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// Picker chooses an index in [0, n)
type Picker interface {
	IntN(n int) int
}

// CouponBook holds the configured coupon codes
type CouponBook struct {
	coupons map[string]domain.Coupon
}

// NewCouponBook indexes coupons by normalized code
func NewCouponBook(coupons []domain.Coupon) (*CouponBook, error) {
	b := &CouponBook{coupons: make(map[string]domain.Coupon, len(coupons))}
	for _, c := range coupons {
		c.Code = domain.NormalizeCouponCode(c.Code)
		if c.Code == "" {
			return nil, fmt.Errorf("%w: empty coupon code", domain.ErrInvalidInput)
		}
		if _, dup := b.coupons[c.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate coupon %q", domain.ErrInvalidInput, c.Code)
		}
		if c.Amount <= 0 && len(c.Choices) == 0 {
			return nil, fmt.Errorf("%w: coupon %q has no value", domain.ErrInvalidInput, c.Code)
		}
		b.coupons[c.Code] = c
	}
	return b, nil
}

// Lookup returns the coupon for a user-typed code
func (b *CouponBook) Lookup(code string) (domain.Coupon, error) {
	c, ok := b.coupons[domain.NormalizeCouponCode(code)]
	if !ok {
		return domain.Coupon{}, fmt.Errorf("%w: %q", domain.ErrUnknownCode, code)
	}
	return c, nil
}

// value draws the credit for c. Fixed amounts take precedence over choices.
func value(c domain.Coupon, p Picker) int64 {
	if c.Amount > 0 {
		return c.Amount
	}
	return c.Choices[p.IntN(len(c.Choices))]
}
