package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// ShopCommand returns the catalog listing command
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:              "shop",
		NameLocalizations: koreanName("상점"),
		Description:       "View the items you can buy with points",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			items, err := client.Catalog(ctx)
			if err != nil {
				return "", err
			}
			return formatCatalog(items), nil
		}, ResponseConfig{
			Title: "🛍️ 상점 목록",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}

func formatCatalog(items []domain.ShopItem) string {
	if len(items) == 0 {
		return "상점이 비어 있습니다."
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := fmt.Sprintf("%s: %s", item.Name, formatPoints(item.Price))
		if item.Description != "" {
			line += " · " + item.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// BuyCommand returns the purchase command definition and handler
func BuyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:              "buy",
		NameLocalizations: koreanName("구매"),
		Description:       "Purchase an item from the shop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "item",
				Description:  "Item name to buy",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			user := getInteractionUser(i)
			opts := optionMap(i)
			opt, ok := opts["item"]
			if !ok {
				return "", fmt.Errorf("missing required item argument")
			}

			receipt, err := client.Purchase(ctx, user.ID, opt.StringValue())
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s **%s** 구매 완료! (%s 차감)\n💰 남은 포인트: **%s**\n🧾 영수증: `%s`",
				user.Mention(), receipt.Item, formatPoints(receipt.Price),
				formatPoints(receipt.Balance), receipt.ReceiptID), nil
		}, ResponseConfig{
			Title: "💰 구매 완료",
			Color: ColorSuccess,
		})
	}

	return cmd, handler
}

// CouponCommand returns the coupon redemption command
func CouponCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:              "coupon",
		NameLocalizations: koreanName("쿠폰"),
		Description:       "Redeem a coupon code for points",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "code",
				Description: "Coupon code",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			user := getInteractionUser(i)
			opt, ok := optionMap(i)["code"]
			if !ok {
				return "", fmt.Errorf("missing required code argument")
			}

			res, err := client.RedeemCoupon(ctx, user.ID, opt.StringValue())
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s 쿠폰 `%s` 사용 완료! **%s** 지급\n💰 현재 포인트: **%s**",
				user.Mention(), res.Code, formatSignedPoints(res.Credited), formatPoints(res.Balance)), nil
		}, ResponseConfig{
			Title: "🎟️ 쿠폰",
			Color: ColorSuccess,
		})
	}

	return cmd, handler
}

// GamesCommand lists the wager games and their bet limits
func GamesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:              "games",
		NameLocalizations: koreanName("게임"),
		Description:       "List the games and their bet limits",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			games, err := client.Games(ctx)
			if err != nil {
				return "", err
			}
			lines := make([]string, 0, len(games))
			for _, g := range games {
				lines = append(lines, fmt.Sprintf("**%s** (`%s`) x%d · %s ~ %s, %s 단위",
					g.Name, g.Key, g.PayoutMultiple,
					formatPoints(g.MinBet), formatPoints(g.MaxBet), formatPoints(g.BetUnit)))
			}
			return strings.Join(lines, "\n"), nil
		}, ResponseConfig{
			Title: "🎲 게임 목록",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}
