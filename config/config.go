package config

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Telegram Telegram

	// AdminIDs is the static allow-list of administrator chat ids.
	AdminIDs []int64

	// RetentionDays is the default test lifetime used by the purge
	// operations.
	RetentionDays int

	// LeaderboardLimit caps the global ranking size.
	LeaderboardLimit int
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Telegram struct {
	// Token enables the chat transport; leave empty for HTTP-only runs.
	Token string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RETENTION_DAYS", 30)
	viper.SetDefault("LEADERBOARD_LIMIT", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Telegram.Token = viper.GetString("TELEGRAM_TOKEN")
	config.AdminIDs = parseAdminIDs(viper.GetString("ADMIN_IDS"))
	config.RetentionDays = viper.GetInt("RETENTION_DAYS")
	config.LeaderboardLimit = viper.GetInt("LEADERBOARD_LIMIT")

	log.Info().Str("port", config.Server.Port).Int("admins", len(config.AdminIDs)).Msg("Config loaded")
	return &config, nil
}

// IsAdmin reports whether id is on the static allow-list.
func (c *Config) IsAdmin(id int64) bool {
	for _, adminID := range c.AdminIDs {
		if adminID == id {
			return true
		}
	}
	return false
}

func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Warn().Str("value", part).Msg("Ignoring unparseable admin id")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
