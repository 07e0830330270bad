package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/discord"
	"github.com/osse101/GuildPoints_Go/internal/logger"
	"github.com/osse101/GuildPoints_Go/internal/scheduler"
	"github.com/osse101/GuildPoints_Go/internal/worker"
)

const httpShutdownTimeout = 5 * time.Second

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	if err := run(); err != nil {
		slog.Error("GuildPoints Discord bot failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadDiscord()
	if err != nil {
		return err
	}

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "guildpoints-discord", logger.DefaultVersion, logger.EnvironmentDev, false))
	slog.Info("Configured API URL", "url", cfg.APIURL)
	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, discord bot requests may fail")
	}

	bot, err := discord.New(discord.Config{
		Token:       cfg.Token,
		AppID:       cfg.AppID,
		GuildID:     cfg.GuildID,
		APIURL:      cfg.APIURL,
		APIKey:      cfg.APIKey,
		AdminRoleID: cfg.AdminRoleID,
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := discord.NewHTTPServer(cfg.HTTPPort, bot, cfg.APIKey, cfg.AnnounceChannelID)
	httpServer.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		httpServer.Stop(shutdownCtx)
	}()

	sched, err := startWeeklyBonus(ctx, bot, cfg)
	if err != nil {
		return fmt.Errorf("failed to schedule weekly bonus: %w", err)
	}
	if sched != nil {
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Scheduler shutdown failed", "error", err)
			}
		}()
	}

	registerCommands(bot, getCommandFactories(cfg.AdminRoleID))

	if cfg.ForceCommandUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, cfg.ForceCommandUpdate); err != nil {
		// Already registered commands keep working
		slog.Error("Failed to register commands", "error", err)
	}

	return bot.Run(ctx)
}

// startWeeklyBonus schedules the Monday bonus for the bonus role.
// It returns a nil scheduler when the bonus is not configured.
func startWeeklyBonus(ctx context.Context, bot *discord.Bot, cfg *config.DiscordConfig) (*scheduler.Scheduler, error) {
	if !cfg.WeeklyBonusEnabled() {
		slog.Info("Weekly bonus disabled", "guild_id", cfg.GuildID, "role_id", cfg.BonusRoleID)
		return nil, nil
	}

	sched, err := scheduler.New(ctx)
	if err != nil {
		return nil, err
	}

	bonus := worker.NewWeeklyBonusWorker(
		discord.NewRoleMemberSource(bot.Session, cfg.GuildID, cfg.BonusRoleID),
		bot.Client,
		cfg.WeeklyBonusAmount,
	)
	if err := sched.Weekly(scheduler.JobWeeklyBonus, func(ctx context.Context) error {
		_, err := bonus.RunOnce(ctx)
		return err
	}); err != nil {
		_ = sched.Stop()
		return nil, err
	}

	sched.Start()
	slog.Info("Weekly bonus scheduled", "role_id", cfg.BonusRoleID, "amount", cfg.WeeklyBonusAmount)
	return sched, nil
}

// getCommandFactories returns a list of all available Discord command factories.
// Admin commands are bound to the configured admin role here.
func getCommandFactories(adminRoleID string) []CommandFactory {
	admin := func(f func(string) (*discordgo.ApplicationCommand, discord.CommandHandler)) CommandFactory {
		return func() (*discordgo.ApplicationCommand, discord.CommandHandler) {
			return f(adminRoleID)
		}
	}

	return []CommandFactory{
		// Core commands
		discord.PingCommand,
		discord.AttendCommand,
		discord.PointsCommand,
		discord.RankingCommand,

		// Wager commands
		discord.GamesCommand,
		discord.OddEvenCommand,
		discord.DiceCommand,
		discord.HorseCommand,
		discord.SlotsCommand,

		// Economy commands
		discord.ShopCommand,
		discord.BuyCommand,
		discord.CouponCommand,

		// Admin commands
		admin(discord.GrantCommand),
		admin(discord.RevokeCommand),
		admin(discord.DailyResetCommand),
		discord.AdminCacheStatsCommand,
	}
}

// registerCommands registers all provided command factories with the bot's registry.
func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}
