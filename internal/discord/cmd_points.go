package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// leaderboardSize matches the API's default page
const leaderboardSize = 10

// unknownMemberName is shown for ranked users who left the guild
const unknownMemberName = "Unknown"

func koreanName(name string) *map[discordgo.Locale]string {
	return &map[discordgo.Locale]string{discordgo.Korean: name}
}

// AttendCommand returns the daily check-in command
func AttendCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:              "attend",
		NameLocalizations: koreanName("출석"),
		Description:       "Check in for today and collect attendance points",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			user := getInteractionUser(i)
			res, err := client.CheckIn(ctx, user.ID)
			if err != nil {
				return "", err
			}
			return formatCheckIn(user, res), nil
		}, ResponseConfig{
			Title: "📅 출석 완료",
			Color: ColorSuccess,
		})
	}

	return cmd, handler
}

func formatCheckIn(user *discordgo.User, res *domain.CheckInResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s 출석 완료! **%s** 지급되었습니다.\n", user.Mention(), formatPoints(res.Credited))
	fmt.Fprintf(&sb, "🔥 연속 출석: **%d일**", res.StreakCount)
	if res.BonusPoints > 0 {
		fmt.Fprintf(&sb, " (보너스 %s)", formatSignedPoints(res.BonusPoints))
	}
	fmt.Fprintf(&sb, "\n💰 현재 포인트: **%s**", formatPoints(res.Balance))
	return sb.String()
}

// PointsCommand returns the balance command
func PointsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:              "points",
		NameLocalizations: koreanName("포인트"),
		Description:       "Show your points, streak and today's earnings",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			user := getInteractionUser(i)
			summary, err := client.Balance(ctx, user.ID)
			if err != nil {
				return "", err
			}
			return formatBalance(user, summary), nil
		}, ResponseConfig{
			Title: "💰 포인트",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}

func formatBalance(user *discordgo.User, b *domain.BalanceSummary) string {
	attended := "❌"
	if b.AttendedToday {
		attended = "✅"
	}
	return fmt.Sprintf("%s 현재 포인트: **%s**\n🔥 연속 출석: %d일 · 오늘 출석 %s\n🎯 오늘 획득: %s (남은 한도 %s)",
		user.Mention(), formatPoints(b.Points), b.StreakCount, attended,
		formatPoints(b.EarnedToday), formatPoints(b.RemainingToday))
}

// RankingCommand returns the leaderboard command
func RankingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:              "ranking",
		NameLocalizations: koreanName("랭킹"),
		Description:       "Show the top members by points",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			entries, err := client.Leaderboard(ctx, leaderboardSize)
			if err != nil {
				return "", err
			}
			if len(entries) == 0 {
				return "아직 포인트를 가진 멤버가 없습니다.", nil
			}
			return formatLeaderboard(entries, func(userID string) string {
				return displayName(s, i.GuildID, userID)
			}), nil
		}, ResponseConfig{
			Title: "🏆 포인트 랭킹 🏆",
			Color: ColorWarning,
		})
	}

	return cmd, handler
}

func formatLeaderboard(entries []domain.LeaderboardEntry, nameOf func(userID string) string) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s: %s", e.Rank, nameOf(e.UserID), formatPoints(e.Points)))
	}
	return strings.Join(lines, "\n")
}

// displayName resolves a guild member's display name, or unknownMemberName
func displayName(s *discordgo.Session, guildID, userID string) string {
	if guildID == "" {
		return unknownMemberName
	}
	m, err := s.GuildMember(guildID, userID)
	if err != nil || m == nil || m.User == nil {
		return unknownMemberName
	}
	if m.Nick != "" {
		return m.Nick
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}
