package redemption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

func TestNewCouponBook_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		coupons []domain.Coupon
	}{
		{"empty code", []domain.Coupon{{Code: "  ", Amount: 1}}},
		{"duplicate after normalizing", []domain.Coupon{{Code: "a", Amount: 1}, {Code: "A", Amount: 2}}},
		{"no value", []domain.Coupon{{Code: "ZERO"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCouponBook(tt.coupons)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCouponValue(t *testing.T) {
	assert.Equal(t, int64(700), value(domain.Coupon{Amount: 700, Choices: []int64{1}}, fixedPicker(0)))
	assert.Equal(t, int64(500), value(domain.Coupon{Choices: []int64{100, 500}}, fixedPicker(1)))

	book, err := NewCouponBook([]domain.Coupon{{Code: "x", Amount: 1}})
	require.NoError(t, err)
	_, err = book.Lookup("y")
	assert.ErrorIs(t, err, domain.ErrUnknownCode)
}
