package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// Option names shared by the wager commands
const (
	optChoice = "choice"
	optAmount = "amount"
)

// slotEmoji decorates reel symbols for chat
var slotEmoji = map[string]string{
	"cherry": "🍒",
	"lemon":  "🍋",
	"bell":   "🔔",
	"clover": "🍀",
	"seven":  "7️⃣",
}

// wagerCommandConfig describes one game's slash command
type wagerCommandConfig struct {
	Game        string
	Name        string
	KoreanName  string
	Description string
	ChoiceDesc  string
	Choices     []*discordgo.ApplicationCommandOptionChoice
}

func stringChoices(pairs ...string) []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func numberedChoices(n int, unit string) []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, n)
	for k := 1; k <= n; k++ {
		v := fmt.Sprint(k)
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: v + unit, Value: v})
	}
	return out
}

// OddEvenCommand returns the odd/even wager command
func OddEvenCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return newWagerCommand(wagerCommandConfig{
		Game:        domain.GameOddEven,
		Name:        "oddeven",
		KoreanName:  "홀짝",
		Description: "Bet on odd or even (pays x2)",
		ChoiceDesc:  "홀 or 짝",
		Choices:     stringChoices("홀 (odd)", "odd", "짝 (even)", "even"),
	})
}

// DiceCommand returns the dice wager command
func DiceCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return newWagerCommand(wagerCommandConfig{
		Game:        domain.GameDice,
		Name:        "dice",
		KoreanName:  "주사위",
		Description: "Guess the die roll (pays x6)",
		ChoiceDesc:  "Face 1 to 6",
		Choices:     numberedChoices(6, ""),
	})
}

// HorseCommand returns the horse race wager command
func HorseCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return newWagerCommand(wagerCommandConfig{
		Game:        domain.GameHorse,
		Name:        "horse",
		KoreanName:  "경마",
		Description: "Pick the winning horse (pays x4)",
		ChoiceDesc:  "Horse 1 to 4",
		Choices:     numberedChoices(4, "번 말"),
	})
}

// SlotsCommand returns the slot machine wager command
func SlotsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return newWagerCommand(wagerCommandConfig{
		Game:        domain.GameSlots,
		Name:        "slots",
		KoreanName:  "슬롯",
		Description: "Spin three reels, a triple pays x7",
	})
}

func newWagerCommand(cfg wagerCommandConfig) (*discordgo.ApplicationCommand, CommandHandler) {
	var options []*discordgo.ApplicationCommandOption
	if len(cfg.Choices) > 0 {
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optChoice,
			Description: cfg.ChoiceDesc,
			Required:    true,
			Choices:     cfg.Choices,
		})
	}
	options = append(options, &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        optAmount,
		Description: "Bet amount in points",
		Required:    true,
	})

	cmd := &discordgo.ApplicationCommand{
		Name:              cfg.Name,
		NameLocalizations: koreanName(cfg.KoreanName),
		Description:       cfg.Description,
		Options:           options,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context) (string, error) {
			user := getInteractionUser(i)
			opts := optionMap(i)

			choice := ""
			if opt, ok := opts[optChoice]; ok {
				choice = opt.StringValue()
			}
			var amount int64
			if opt, ok := opts[optAmount]; ok {
				amount = opt.IntValue()
			}

			outcome, err := client.Wager(ctx, user.ID, cfg.Game, choice, amount)
			if err != nil {
				return "", err
			}
			return formatWagerOutcome(outcome), nil
		}, ResponseConfig{
			Title: "🎰 " + cfg.KoreanName,
			Color: ColorInfo,
		})
	}

	return cmd, handler
}

func formatWagerOutcome(o *domain.WagerOutcome) string {
	var sb strings.Builder

	switch o.Game {
	case domain.GameSlots:
		reels := make([]string, len(o.Reels))
		for k, r := range o.Reels {
			if e, ok := slotEmoji[r]; ok {
				r = e
			}
			reels[k] = r
		}
		sb.WriteString(strings.Join(reels, " | "))
	case domain.GameOddEven:
		fmt.Fprintf(&sb, "결과: **%s**", oddEvenLabel(o.Result))
	case domain.GameDice:
		fmt.Fprintf(&sb, "🎲 주사위: **%s**", o.Result)
	case domain.GameHorse:
		fmt.Fprintf(&sb, "🏇 **%s번 말** 우승!", o.Result)
	default:
		fmt.Fprintf(&sb, "결과: **%s**", o.Result)
	}
	sb.WriteString("\n")

	if o.Won {
		fmt.Fprintf(&sb, "🎉 당첨! x%d, **%s** 획득!", o.PayoutMultiple, formatPoints(o.Payout))
	} else {
		fmt.Fprintf(&sb, "꽝! 다음 기회에... (%s)", formatSignedPoints(o.NetChange))
	}
	fmt.Fprintf(&sb, "\n💰 현재 포인트: **%s**", formatPoints(o.Balance))
	return sb.String()
}

func oddEvenLabel(result string) string {
	switch result {
	case "odd":
		return "홀"
	case "even":
		return "짝"
	}
	return result
}
