package redemption

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/clock"
	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/event"
	"github.com/osse101/GuildPoints_Go/internal/ledger"
	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// Service handles coupon redemption and catalog purchases
type Service interface {
	Redeem(ctx context.Context, userID, code string) (*domain.RedeemResult, error)
	Purchase(ctx context.Context, userID, itemName string) (*domain.PurchaseReceipt, error)
	Catalog() []domain.ShopItem
}

type service struct {
	accounts account.Service
	coupons  *CouponBook
	catalog  *Catalog
	picker   Picker
	bus      event.Bus
	clock    clock.Clock
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// NewService creates a redemption service. A nil picker uses the global
// generator; bus may be nil.
func NewService(accounts account.Service, coupons *CouponBook, catalog *Catalog, picker Picker, bus event.Bus, clk clock.Clock) Service {
	if picker == nil {
		picker = globalPicker{}
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{
		accounts: accounts,
		coupons:  coupons,
		catalog:  catalog,
		picker:   picker,
		bus:      bus,
		clock:    clk,
	}
}

func (s *service) Redeem(ctx context.Context, userID, code string) (*domain.RedeemResult, error) {
	log := logger.FromContext(ctx)

	coupon, err := s.coupons.Lookup(code)
	if err != nil {
		log.Info("Coupon rejected", "user_id", userID, "code", code, "error", err)
		return nil, err
	}

	var credited int64
	acct, err := s.accounts.Update(ctx, userID, func(a *domain.Account) error {
		if a.HasUsedCoupon(coupon.Code) {
			return domain.ErrAlreadyRedeemed
		}
		credited = value(coupon, s.picker)
		if err := ledger.ApplyDelta(a, credited); err != nil {
			return err
		}
		a.AddUsedCoupon(coupon.Code)
		return nil
	})
	if err != nil {
		log.Info("Coupon rejected", "user_id", userID, "code", coupon.Code, "error", err)
		return nil, err
	}

	log.Info("Coupon redeemed", "user_id", userID, "code", coupon.Code, "credited", credited, "balance", acct.Points)
	event.PublishAll(ctx, s.bus,
		event.NewPointsMovedEvent(userID, domain.SourceCoupon, credited, acct.Points),
		event.New(event.CouponRedeemed, event.CouponRedeemedPayloadV1{UserID: userID, Code: coupon.Code, Credited: credited}),
	)

	return &domain.RedeemResult{
		UserID:   userID,
		Code:     coupon.Code,
		Credited: credited,
		Balance:  acct.Points,
	}, nil
}

func (s *service) Purchase(ctx context.Context, userID, itemName string) (*domain.PurchaseReceipt, error) {
	log := logger.FromContext(ctx)

	item, err := s.catalog.Find(itemName)
	if err != nil {
		log.Info("Purchase rejected", "user_id", userID, "item", itemName, "error", err)
		return nil, err
	}

	acct, err := s.accounts.Update(ctx, userID, func(a *domain.Account) error {
		return ledger.ApplyDelta(a, -item.Price)
	})
	if err != nil {
		log.Info("Purchase rejected", "user_id", userID, "item", item.Name, "price", item.Price, "error", err)
		return nil, err
	}

	receipt := &domain.PurchaseReceipt{
		ReceiptID:   uuid.NewString(),
		UserID:      userID,
		Item:        item.Name,
		Price:       item.Price,
		Balance:     acct.Points,
		PurchasedAt: s.clock.Now(),
	}

	// Operators fulfill rewards from this line.
	log.Info("Purchase recorded",
		"receipt_id", receipt.ReceiptID, "user_id", userID, "item", item.Name, "price", item.Price, "balance", acct.Points)
	event.PublishAll(ctx, s.bus,
		event.NewPointsMovedEvent(userID, domain.SourcePurchase, -item.Price, acct.Points),
		event.New(event.ItemPurchased, event.ItemPurchasedPayloadV1{
			ReceiptID: receipt.ReceiptID,
			UserID:    userID,
			Item:      item.Name,
			Price:     item.Price,
		}),
	)

	return receipt, nil
}

func (s *service) Catalog() []domain.ShopItem {
	return s.catalog.Items()
}
