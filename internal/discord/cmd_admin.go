package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GuildPoints_Go/internal/handler"
)

var adminPermission = &[]int64{discordgo.PermissionAdministrator}[0]

// errNotAdmin carries the API's wording so it gets the same friendly reply
var errNotAdmin = errors.New(handler.ErrMsgUnauthorizedError)

// GrantCommand returns the admin points grant command
func GrantCommand(adminRoleID string) (*discordgo.ApplicationCommand, CommandHandler) {
	return newAdjustCommand(adminRoleID, "grant", "지급", "[ADMIN] Give points to a member", false)
}

// RevokeCommand returns the admin points revoke command
func RevokeCommand(adminRoleID string) (*discordgo.ApplicationCommand, CommandHandler) {
	return newAdjustCommand(adminRoleID, "revoke", "회수", "[ADMIN] Take points from a member", true)
}

func newAdjustCommand(adminRoleID, name, koName, description string, revoke bool) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:              name,
		NameLocalizations: koreanName(koName),
		Description:       description,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Target member",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optAmount,
				Description: "Points",
				Required:    true,
			},
		},
		DefaultMemberPermissions: adminPermission,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			opts := optionMap(i)
			userOpt, ok := opts["user"]
			if !ok {
				return "", fmt.Errorf("missing required user argument")
			}
			amountOpt, ok := opts[optAmount]
			if !ok {
				return "", fmt.Errorf("missing required amount argument")
			}
			target := userOpt.UserValue(nil)
			amount := amountOpt.IntValue()
			caller := callerOf(i, adminRoleID)

			if revoke {
				res, err := client.Revoke(ctx, caller, target.ID, amount)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s에게서 %s 회수했습니다.\n💰 남은 포인트: **%s**",
					target.Mention(), formatPoints(amount), formatPoints(res.Balance)), nil
			}

			res, err := client.Grant(ctx, caller, target.ID, amount)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s에게 %s 지급했습니다.\n💰 현재 포인트: **%s**",
				target.Mention(), formatPoints(amount), formatPoints(res.Balance)), nil
		}, ResponseConfig{
			Title:  "🛠️ 포인트 조정",
			Color:  ColorAdmin,
			Footer: FooterGuildPointsAdmin,
		})
	}

	return cmd, handler
}

// DailyResetCommand returns the admin command that runs the daily reset now
func DailyResetCommand(adminRoleID string) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "admin-daily-reset",
		Description:              "[ADMIN] Run the daily attendance reset now",
		DefaultMemberPermissions: adminPermission,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			if !isAdmin(i, adminRoleID) {
				return "", errNotAdmin
			}
			res, err := client.RunDailyReset(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("**Date:** %s\n**Accounts reset:** %d\n**Failed:** %d",
				res.Date, res.AccountsReset, res.Failed), nil
		}, ResponseConfig{
			Title:  "🔄 Daily Reset",
			Color:  ColorAdmin,
			Footer: FooterGuildPointsAdmin,
		})
	}

	return cmd, handler
}
