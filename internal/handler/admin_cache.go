package handler

import (
	"net/http"

	"github.com/osse101/GuildPoints_Go/internal/account"
)

// CacheStatsProvider exposes account cache counters
type CacheStatsProvider interface {
	GetCacheStats() account.CacheStats
}

// HandleGetCacheStats returns account read-cache statistics
// @Summary Get account cache stats
// @Description Returns cache hit/miss counters for monitoring (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} account.CacheStats
// @Router /api/v1/admin/cache/stats [get]
func HandleGetCacheStats(accounts CacheStatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, accounts.GetCacheStats())
	}
}
