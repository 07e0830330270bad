package handler

import (
	"context"
	"net/http"

	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/redemption"
)

// RedeemCouponRequest is the body of a coupon redemption
type RedeemCouponRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
	Code   string `json:"code" validate:"required,max=64"`
}

func (req RedeemCouponRequest) accountKey() string { return req.UserID }

// PurchaseRequest is the body of a catalog purchase. Item may be the display name or its slug.
type PurchaseRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
	Item   string `json:"item" validate:"required,max=100"`
}

func (req PurchaseRequest) accountKey() string { return req.UserID }

// CatalogResponse lists purchasable items
type CatalogResponse struct {
	Items []domain.ShopItem `json:"items"`
}

// HandleRedeemCoupon credits a coupon once per user
// @Summary Redeem coupon
// @Tags coupon
// @Accept json
// @Produce json
// @Param request body RedeemCouponRequest true "Redeem request"
// @Success 200 {object} domain.RedeemResult
// @Failure 404 {object} ErrorResponse "Unknown coupon code"
// @Failure 409 {object} ErrorResponse "Coupon already redeemed"
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/coupon/redeem [post]
func HandleRedeemCoupon(svc redemption.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleAction(w, r, "Redeem coupon", func(ctx context.Context, req RedeemCouponRequest) (*domain.RedeemResult, error) {
			return svc.Redeem(ctx, req.UserID, req.Code)
		})
	}
}

// HandleListCatalog returns the static shop catalog
// @Summary List catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /api/v1/catalog [get]
func HandleListCatalog(svc redemption.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, CatalogResponse{Items: svc.Catalog()})
	}
}

// HandlePurchase debits the item price and returns a receipt for manual fulfillment
// @Summary Purchase catalog item
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body PurchaseRequest true "Purchase request"
// @Success 200 {object} domain.PurchaseReceipt
// @Failure 400 {object} ErrorResponse "Not enough points"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/catalog/purchase [post]
func HandlePurchase(svc redemption.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleAction(w, r, "Purchase", func(ctx context.Context, req PurchaseRequest) (*domain.PurchaseReceipt, error) {
			return svc.Purchase(ctx, req.UserID, req.Item)
		})
	}
}
