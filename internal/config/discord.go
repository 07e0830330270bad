package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DiscordConfig holds the Discord bot binary's settings
type DiscordConfig struct {
	Token     string `env:"DISCORD_TOKEN"`
	AppID     string `env:"DISCORD_APP_ID"`
	GuildID   string `env:"DISCORD_GUILD_ID"`
	APIURL    string `env:"API_URL" envDefault:"http://localhost:8080"`
	APIKey    string `env:"API_KEY"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	AdminRoleID        string `env:"ADMIN_ROLE_ID"`
	BonusRoleID        string `env:"BONUS_ROLE_ID"`
	WeeklyBonusAmount  int64  `env:"WEEKLY_BONUS_AMOUNT" envDefault:"1000"`
	AnnounceChannelID  string `env:"DISCORD_ANNOUNCE_CHANNEL_ID"`
	HTTPPort           string `env:"DISCORD_HTTP_PORT" envDefault:"8082"`
	ForceCommandUpdate bool   `env:"DISCORD_FORCE_COMMAND_UPDATE" envDefault:"false"`
}

// LoadDiscord loads the bot configuration from the environment
func LoadDiscord() (*DiscordConfig, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[DiscordConfig]()
	if err != nil {
		return nil, fmt.Errorf("invalid discord configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the bot cannot start without
func (c *DiscordConfig) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is required")
	}
	if c.WeeklyBonusAmount < 0 {
		return fmt.Errorf("WEEKLY_BONUS_AMOUNT must not be negative")
	}
	return nil
}

// WeeklyBonusEnabled reports whether the bot should run the role bonus job
func (c *DiscordConfig) WeeklyBonusEnabled() bool {
	return c.GuildID != "" && c.BonusRoleID != "" && c.WeeklyBonusAmount > 0
}
