package discord

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	// maxAutocompleteChoices is Discord's limit per response
	maxAutocompleteChoices = 25
	// autocompleteTimeout leaves room inside Discord's 3s answer window
	autocompleteTimeout = 2 * time.Second
)

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	data := i.ApplicationCommandData()

	switch data.Name {
	case "buy":
		handleCatalogAutocomplete(s, i, client)
	default:
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
	}
}

// focusedValue returns the lower-cased text the user is typing
func focusedValue(i *discordgo.InteractionCreate) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Focused {
			return strings.ToLower(opt.StringValue())
		}
	}
	return ""
}

// handleCatalogAutocomplete suggests catalog items matching the typed text
func handleCatalogAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	ctx, cancel := context.WithTimeout(context.Background(), autocompleteTimeout)
	defer cancel()

	items, err := client.Catalog(ctx)
	if err != nil {
		slog.Error("Failed to get catalog for autocomplete", "error", err)
	}

	typed := focusedValue(i)
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, item := range items {
		if typed == "" || strings.Contains(strings.ToLower(item.Name), typed) || strings.Contains(item.Slug, typed) {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  item.Name + " (" + formatPoints(item.Price) + ")",
				Value: item.Name,
			})
		}
		if len(choices) >= maxAutocompleteChoices {
			break
		}
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	}); err != nil {
		slog.Warn("Failed to send autocomplete choices", "error", err)
	}
}
