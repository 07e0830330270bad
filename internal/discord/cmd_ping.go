package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PingCommand reports gateway heartbeat latency and the points API round trip
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check if the bot and the points server are alive",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		ctx, cancel := context.WithTimeout(context.Background(), apiProbeTimeout)
		defer cancel()

		start := time.Now()
		healthy := client.Healthy(ctx)
		rtt := time.Since(start)

		content := fmt.Sprintf("Pong! 🏓\nGateway: %s", s.HeartbeatLatency().Round(time.Millisecond))
		if healthy {
			content += fmt.Sprintf("\nPoints API: %s", rtt.Round(time.Millisecond))
		} else {
			content += "\n" + MsgUnavailable
		}

		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		}); err != nil {
			slog.Error("Failed to respond to ping", "error", err)
		}
	}

	return cmd, handler
}
