package redemption

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/clock"
	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/event"
)

type fixedPicker int

func (p fixedPicker) IntN(n int) int { return int(p) % n }

var purchaseTime = time.Date(2024, 5, 2, 12, 0, 0, 0, domain.EconomyLocation)

type redemptionFixture struct {
	repo *account.FakeRepository
	bus  *event.MemoryBus
	svc  Service
}

func newRedemptionFixture(t *testing.T, picker Picker) *redemptionFixture {
	t.Helper()

	coupons, err := NewCouponBook([]domain.Coupon{
		{Code: "welcome", Amount: 1000},
		{Code: "LUCKYBOX", Choices: []int64{100, 500, 1000, 3000}},
	})
	require.NoError(t, err)
	catalog, err := NewCatalog([]domain.ShopItem{
		{Name: "Raid Ticket", Price: 3000},
		{Name: "족발", Price: 60000},
	})
	require.NoError(t, err)

	repo := account.NewFakeRepository()
	bus := event.NewMemoryBus()
	accounts := account.NewService(repo, nil, account.DefaultCacheConfig())
	return &redemptionFixture{
		repo: repo,
		bus:  bus,
		svc:  NewService(accounts, coupons, catalog, picker, bus, clock.NewSimulatedClock(purchaseTime)),
	}
}

func TestRedeem_FixedAmountOnce(t *testing.T) {
	f := newRedemptionFixture(t, nil)
	ctx := context.Background()

	res, err := f.svc.Redeem(ctx, "u1", " Welcome ")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME", res.Code)
	assert.Equal(t, int64(1000), res.Credited)
	assert.Equal(t, int64(1000), res.Balance)

	before := f.repo.Snapshot("u1")
	_, err = f.svc.Redeem(ctx, "u1", "WELCOME")
	assert.ErrorIs(t, err, domain.ErrAlreadyRedeemed)

	after := f.repo.Snapshot("u1")
	assert.Equal(t, before.Points, after.Points)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, []string{"WELCOME"}, after.UsedCoupons)
}

func TestRedeem_RandomChoice(t *testing.T) {
	f := newRedemptionFixture(t, fixedPicker(3))

	res, err := f.svc.Redeem(context.Background(), "u1", "luckybox")
	require.NoError(t, err)
	assert.Equal(t, int64(3000), res.Credited)
	assert.Equal(t, int64(3000), f.repo.Snapshot("u1").Points)
}

func TestRedeem_RandomChoiceStaysInSet(t *testing.T) {
	f := newRedemptionFixture(t, nil)
	allowed := []int64{100, 500, 1000, 3000}

	for _, user := range []string{"a", "b", "c", "d", "e", "f"} {
		res, err := f.svc.Redeem(context.Background(), user, "LUCKYBOX")
		require.NoError(t, err)
		assert.Contains(t, allowed, res.Credited)
	}
}

func TestRedeem_UnknownCode(t *testing.T) {
	f := newRedemptionFixture(t, nil)

	_, err := f.svc.Redeem(context.Background(), "u1", "NOPE")
	assert.ErrorIs(t, err, domain.ErrUnknownCode)
	assert.Nil(t, f.repo.Snapshot("u1"))
}

func TestRedeem_ConcurrentSameCodeCreditsOnce(t *testing.T) {
	f := newRedemptionFixture(t, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	credited := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Redeem(context.Background(), "u1", "WELCOME"); err == nil {
				mu.Lock()
				credited++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, credited)
	assert.Equal(t, int64(1000), f.repo.Snapshot("u1").Points)
}

func TestPurchase_DebitsUntilInsufficient(t *testing.T) {
	f := newRedemptionFixture(t, nil)
	f.repo.Put(&domain.Account{UserID: "u1", Points: 5000, Version: 1})
	ctx := context.Background()

	receipt, err := f.svc.Purchase(ctx, "u1", "Raid Ticket")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), receipt.Balance)
	assert.Equal(t, int64(3000), receipt.Price)
	assert.Equal(t, "Raid Ticket", receipt.Item)
	assert.Equal(t, purchaseTime, receipt.PurchasedAt)
	_, err = uuid.Parse(receipt.ReceiptID)
	assert.NoError(t, err)

	_, err = f.svc.Purchase(ctx, "u1", "raid-ticket")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, int64(2000), f.repo.Snapshot("u1").Points)
}

func TestPurchase_UnknownItem(t *testing.T) {
	f := newRedemptionFixture(t, nil)
	f.repo.Put(&domain.Account{UserID: "u1", Points: 5000, Version: 1})

	_, err := f.svc.Purchase(context.Background(), "u1", "Dragon")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
	assert.Equal(t, 0, f.repo.SaveCalls())
}

func TestPurchase_StoreFailure(t *testing.T) {
	f := newRedemptionFixture(t, nil)
	f.repo.Put(&domain.Account{UserID: "u1", Points: 90000, Version: 1})
	f.repo.FailNextSaves(errors.New("disk full"))

	_, err := f.svc.Purchase(context.Background(), "u1", "족발")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, int64(90000), f.repo.Snapshot("u1").Points)
}

func TestPurchase_PublishesEvent(t *testing.T) {
	f := newRedemptionFixture(t, nil)
	f.repo.Put(&domain.Account{UserID: "u1", Points: 5000, Version: 1})

	var got []event.ItemPurchasedPayloadV1
	f.bus.Subscribe(event.ItemPurchased, func(ctx context.Context, e event.Event) error {
		got = append(got, e.Payload.(event.ItemPurchasedPayloadV1))
		return nil
	})

	receipt, err := f.svc.Purchase(context.Background(), "u1", "Raid Ticket")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, receipt.ReceiptID, got[0].ReceiptID)
}

func TestCatalogListing(t *testing.T) {
	f := newRedemptionFixture(t, nil)
	items := f.svc.Catalog()
	require.Len(t, items, 2)
	assert.Equal(t, "raid-ticket", items[0].Slug)
}
