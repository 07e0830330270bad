package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// AdminCacheStatsCommand returns the cache stats command definition and handler
func AdminCacheStatsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "admin-cache-stats",
		Description:              "[ADMIN] View account cache statistics",
		DefaultMemberPermissions: adminPermission,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			stats, err := client.CacheStats(ctx)
			if err != nil {
				return "", err
			}

			hitRate := 0.0
			if total := stats.Hits + stats.Misses; total > 0 {
				hitRate = float64(stats.Hits) / float64(total) * 100
			}

			return fmt.Sprintf(
				"**Cache Hit Rate:** %.1f%%\n"+
					"**Hits:** %d\n"+
					"**Misses:** %d\n"+
					"**Current Size:** %d entries",
				hitRate, stats.Hits, stats.Misses, stats.Size,
			), nil
		}, ResponseConfig{
			Title:  "📊 Account Cache Statistics",
			Color:  ColorInfo,
			Footer: FooterGuildPointsAdmin,
		})
	}

	return cmd, handler
}
