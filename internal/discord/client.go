package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// Retry settings for API calls
const (
	maxRetries     = 3
	baseRetryDelay = 500 * time.Millisecond
	requestTimeout = 10 * time.Second
)

// APIError is a non-2xx answer from the points API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return "API error: " + e.Message
}

// APIClient handles communication with the GuildPoints API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string

	retryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: requestTimeout,
		},
		APIKey:     apiKey,
		retryDelay: baseRetryDelay,
	}
}

// doRequest performs an HTTP request with retry logic.
// Transport failures are retried only for GET; a 503 is retried for every
// method because the API answers 503 only when nothing was written.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := c.retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "path", path, "error", err, "attempt", attempt)
			if method != http.MethodGet || ctx.Err() != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode != http.StatusServiceUnavailable {
			return resp, nil
		}

		lastErr = decodeAPIError(resp)
		resp.Body.Close()
		slog.Warn("API unavailable, will retry", "path", path, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// call sends a JSON request and decodes a JSON answer into out
func (c *APIClient) call(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}
	return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
}

// CheckIn records today's attendance
func (c *APIClient) CheckIn(ctx context.Context, userID string) (*domain.CheckInResult, error) {
	var out domain.CheckInResult
	err := c.call(ctx, http.MethodPost, "/api/v1/attendance/check-in", map[string]string{"user_id": userID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Balance returns the balance summary of a user
func (c *APIClient) Balance(ctx context.Context, userID string) (*domain.BalanceSummary, error) {
	q := url.Values{"user_id": {userID}}
	var out domain.BalanceSummary
	if err := c.call(ctx, http.MethodGet, "/api/v1/account/balance?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Leaderboard returns the top accounts by points
func (c *APIClient) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var out struct {
		Entries []domain.LeaderboardEntry `json:"entries"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/v1/leaderboard?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// Games lists the configured wager games
func (c *APIClient) Games(ctx context.Context) ([]domain.GameInfo, error) {
	var out struct {
		Games []domain.GameInfo `json:"games"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/v1/wager/games", nil, &out); err != nil {
		return nil, err
	}
	return out.Games, nil
}

// Wager places one bet on game
func (c *APIClient) Wager(ctx context.Context, userID, game, choice string, betAmount int64) (*domain.WagerOutcome, error) {
	req := map[string]interface{}{
		"user_id":    userID,
		"choice":     choice,
		"bet_amount": betAmount,
	}
	var out domain.WagerOutcome
	if err := c.call(ctx, http.MethodPost, "/api/v1/wager/"+url.PathEscape(game), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RedeemCoupon credits a coupon code
func (c *APIClient) RedeemCoupon(ctx context.Context, userID, code string) (*domain.RedeemResult, error) {
	req := map[string]string{"user_id": userID, "code": code}
	var out domain.RedeemResult
	if err := c.call(ctx, http.MethodPost, "/api/v1/coupon/redeem", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Catalog lists the shop items
func (c *APIClient) Catalog(ctx context.Context) ([]domain.ShopItem, error) {
	var out struct {
		Items []domain.ShopItem `json:"items"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/v1/catalog", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Purchase buys one catalog item
func (c *APIClient) Purchase(ctx context.Context, userID, item string) (*domain.PurchaseReceipt, error) {
	req := map[string]string{"user_id": userID, "item": item}
	var out domain.PurchaseReceipt
	if err := c.call(ctx, http.MethodPost, "/api/v1/catalog/purchase", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Grant adds points to a user on behalf of an administrator
func (c *APIClient) Grant(ctx context.Context, caller domain.Caller, userID string, amount int64) (*domain.AdjustmentResult, error) {
	return c.adjust(ctx, "/api/v1/admin/grant", caller, userID, amount)
}

// Revoke removes points from a user on behalf of an administrator
func (c *APIClient) Revoke(ctx context.Context, caller domain.Caller, userID string, amount int64) (*domain.AdjustmentResult, error) {
	return c.adjust(ctx, "/api/v1/admin/revoke", caller, userID, amount)
}

func (c *APIClient) adjust(ctx context.Context, path string, caller domain.Caller, userID string, amount int64) (*domain.AdjustmentResult, error) {
	req := map[string]interface{}{
		"caller_id":       caller.UserID,
		"caller_is_admin": caller.IsAdmin,
		"user_id":         userID,
		"amount":          amount,
	}
	var out domain.AdjustmentResult
	if err := c.call(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GrantBonus credits the weekly role bonus to one user
func (c *APIClient) GrantBonus(ctx context.Context, userID string, amount int64) (*domain.AdjustmentResult, error) {
	req := map[string]interface{}{"user_id": userID, "amount": amount}
	var out domain.AdjustmentResult
	if err := c.call(ctx, http.MethodPost, "/api/v1/admin/bonus", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunDailyReset triggers the daily attendance reset now
func (c *APIClient) RunDailyReset(ctx context.Context) (*domain.DailyResetResult, error) {
	var out struct {
		Result *domain.DailyResetResult `json:"result"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/v1/admin/daily-reset", nil, &out); err != nil {
		return nil, err
	}
	if out.Result == nil {
		return &domain.DailyResetResult{}, nil
	}
	return out.Result, nil
}

// CacheStats returns the API's account cache counters
func (c *APIClient) CacheStats(ctx context.Context) (*account.CacheStats, error) {
	var out account.CacheStats
	if err := c.call(ctx, http.MethodGet, "/api/v1/admin/cache/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Healthy reports whether the API answers its liveness probe
func (c *APIClient) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
