package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/handler"
)

// commandTimeout bounds the API calls made for one interaction
const commandTimeout = 15 * time.Second

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands    map[string]*discordgo.ApplicationCommand
	Handlers    map[string]CommandHandler
	AdminRoleID string
	Stats       *CommandStats
}

// NewCommandRegistry creates a new registry. Members holding adminRoleID are
// treated as administrators in addition to those with the Administrator permission.
func NewCommandRegistry(adminRoleID string) *CommandRegistry {
	return &CommandRegistry{
		Commands:    make(map[string]*discordgo.ApplicationCommand),
		Handlers:    make(map[string]CommandHandler),
		AdminRoleID: adminRoleID,
		Stats:       NewCommandStats(),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	name := i.ApplicationCommandData().Name
	if h, ok := r.Handlers[name]; ok {
		r.Stats.record(name)
		h(s, i, client)
	}
}

// RegisterCommands registers or updates commands with Discord.
// Only performs updates if commands have changed to avoid rate limits.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info("Checking Discord commands...", "guild_id", b.GuildID)

	existingCmds, err := b.Session.ApplicationCommands(b.AppID, b.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch existing commands: %w", err)
	}

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if !forceUpdate && commandsEqual(existingCmds, desiredCmds) {
		slog.Info("Commands unchanged, skipping registration", "count", len(existingCmds))
		return nil
	}

	slog.Info("Updating commands",
		"force", forceUpdate,
		"existing", len(existingCmds),
		"desired", len(desiredCmds))

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, b.GuildID, desiredCmds); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info("Commands updated successfully", "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, d := range desired {
		e, ok := existingMap[d.Name]
		if !ok || !commandEqual(e, d) {
			return false
		}
	}

	return true
}

// commandEqual checks if two commands are equivalent
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}

	return true
}

// optionEqual checks if two command options are equivalent
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description ||
		a.Required != b.Required || a.Autocomplete != b.Autocomplete {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		// Values come back from Discord as JSON, so compare their printed form
		if a.Choices[i].Name != b.Choices[i].Name ||
			fmt.Sprint(a.Choices[i].Value) != fmt.Sprint(b.Choices[i].Value) {
			return false
		}
	}

	return true
}

// respondError replaces the deferred response with a plain message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// ResponseConfig defines the visual properties of a command response embed
type ResponseConfig struct {
	Title  string
	Color  int
	Footer string
}

// handleEmbedResponse defers the interaction, runs action with a bounded
// context and sends either a friendly error or a success embed.
func handleEmbedResponse(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	action func(ctx context.Context) (string, error),
	config ResponseConfig,
) {
	if !deferResponse(s, i) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	msg, err := action(ctx)
	if err != nil {
		slog.Warn("Command failed", "title", config.Title, "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	sendEmbed(s, i, createEmbed(config.Title, msg, config.Color, config.Footer))
}

// deferResponse acknowledges an interaction with a deferred message.
// Returns false if deferral failed; the handler should return early.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// getOptions extracts command options from an interaction
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// optionMap indexes command options by name
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := getOptions(i)
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// isAdmin reports whether the invoking member may run admin commands
func isAdmin(i *discordgo.InteractionCreate, adminRoleID string) bool {
	if i.Member == nil {
		return false
	}
	if i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	if adminRoleID == "" {
		return false
	}
	for _, role := range i.Member.Roles {
		if role == adminRoleID {
			return true
		}
	}
	return false
}

// callerOf builds the caller identity the API re-checks for admin commands
func callerOf(i *discordgo.InteractionCreate, adminRoleID string) domain.Caller {
	caller := domain.Caller{IsAdmin: isAdmin(i, adminRoleID)}
	if user := getInteractionUser(i); user != nil {
		caller.UserID = user.ID
	}
	return caller
}

// respondFriendlyError formats the error message to be more user-friendly before responding
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondError(s, i, formatFriendlyError(message))
}

// friendlyErrors maps API error messages to chat replies
var friendlyErrors = []struct {
	apiMessage string
	reply      string
}{
	{handler.ErrMsgNotEnoughPointsError, MsgInsufficientFunds},
	{handler.ErrMsgDailyCapError, MsgDailyCapReached},
	{handler.ErrMsgInvalidBetError, MsgInvalidBet},
	{handler.ErrMsgUnknownGameError, MsgUnknownGame},
	{handler.ErrMsgInvalidChoiceError, MsgInvalidChoice},
	{handler.ErrMsgInvalidAmountError, MsgInvalidAmount},
	{handler.ErrMsgAlreadyAttendedError, MsgAlreadyAttended},
	{handler.ErrMsgUnknownCodeError, MsgUnknownCoupon},
	{handler.ErrMsgAlreadyRedeemedError, MsgAlreadyRedeemed},
	{handler.ErrMsgUnknownItemError, MsgItemNotFound},
	{handler.ErrMsgUnauthorizedError, MsgNotAdmin},
	{handler.ErrMsgUserNotFoundError, MsgUserNotFound},
	{handler.ErrMsgBusyError, MsgBusy},
	{handler.ErrMsgUnavailableError, MsgUnavailable},
	{handler.ErrMsgResetInProgressError, MsgResetInProgress},
}

// formatFriendlyError cleans up technical error messages
func formatFriendlyError(msg string) string {
	msg = strings.TrimPrefix(msg, "max retries exceeded: ")
	msg = strings.TrimPrefix(msg, "API error: ")

	for _, fe := range friendlyErrors {
		if strings.Contains(msg, fe.apiMessage) {
			return fe.reply
		}
	}
	return "❌ " + msg
}

// sendEmbed sends an embed message with standardized error handling
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// Footer constants for standardized embed footers
const (
	FooterGuildPoints      = "GuildPoints"
	FooterGuildPointsAdmin = "GuildPoints Admin"
)

// Embed colors
const (
	ColorSuccess = 0x2ecc71
	ColorInfo    = 0x3498db
	ColorWarning = 0xf39c12
	ColorLoss    = 0xe74c3c
	ColorAdmin   = 0x95a5a6
)

// createEmbed creates a standard embed; an empty footerText defaults to FooterGuildPoints
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterGuildPoints
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}
