package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jverhelst/scorecast/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	DBURL              string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration

	FeedBaseURL               string
	FeedToken                 string
	FeedCompetition           string
	FeedTimeout               time.Duration
	FeedMaxRetries            int
	FeedCircuitEnabled        bool
	FeedCircuitFailureCount   int
	FeedCircuitOpenTimeout    time.Duration
	FeedCircuitHalfOpenMaxReq int

	DiscordEnabled   bool
	DiscordBotToken  string
	DiscordChannelID string
	DiscordTimeout   time.Duration

	ReconcileInterval time.Duration
	ReminderInterval  time.Duration

	LeaderboardCacheTTL time.Duration
	LogLevel            logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	feedTimeout, err := getEnvAsDuration("FEED_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_TIMEOUT: %w", err)
	}
	feedMaxRetries, err := getEnvAsInt("FEED_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_MAX_RETRIES: %w", err)
	}
	feedCircuitEnabled, err := strconv.ParseBool(getEnv("FEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_ENABLED: %w", err)
	}
	feedCircuitFailureCount, err := getEnvAsInt("FEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	feedCircuitOpenTimeout, err := getEnvAsDuration("FEED_CIRCUIT_OPEN_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	feedCircuitHalfOpenMaxReq, err := getEnvAsInt("FEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	discordEnabled, err := strconv.ParseBool(getEnv("DISCORD_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DISCORD_ENABLED: %w", err)
	}
	discordBotToken := strings.TrimSpace(getEnv("DISCORD_BOT_TOKEN", ""))
	discordChannelID := strings.TrimSpace(getEnv("DISCORD_CHANNEL_ID", ""))
	if discordEnabled && (discordBotToken == "" || discordChannelID == "") {
		return Config{}, fmt.Errorf("DISCORD_BOT_TOKEN and DISCORD_CHANNEL_ID are required when DISCORD_ENABLED=true")
	}
	discordTimeout, err := getEnvAsDuration("DISCORD_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse DISCORD_TIMEOUT: %w", err)
	}

	reconcileInterval, err := getEnvAsDuration("RECONCILE_INTERVAL", 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECONCILE_INTERVAL: %w", err)
	}
	if reconcileInterval < time.Minute {
		return Config{}, fmt.Errorf("RECONCILE_INTERVAL must be at least 1m")
	}
	reminderInterval, err := getEnvAsDuration("REMINDER_INTERVAL", time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("parse REMINDER_INTERVAL: %w", err)
	}
	if reminderInterval < time.Minute {
		return Config{}, fmt.Errorf("REMINDER_INTERVAL must be at least 1m")
	}

	leaderboardCacheTTL, err := getEnvAsDuration("LEADERBOARD_CACHE_TTL", time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEADERBOARD_CACHE_TTL: %w", err)
	}

	logLevel, err := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	return Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("SERVICE_NAME", "scorecast"),
		ServiceVersion:     getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,

		FeedBaseURL:               strings.TrimSpace(getEnv("FEED_BASE_URL", "")),
		FeedToken:                 strings.TrimSpace(getEnv("FEED_API_TOKEN", "")),
		FeedCompetition:           strings.TrimSpace(getEnv("FEED_COMPETITION", "CL")),
		FeedTimeout:               feedTimeout,
		FeedMaxRetries:            feedMaxRetries,
		FeedCircuitEnabled:        feedCircuitEnabled,
		FeedCircuitFailureCount:   feedCircuitFailureCount,
		FeedCircuitOpenTimeout:    feedCircuitOpenTimeout,
		FeedCircuitHalfOpenMaxReq: feedCircuitHalfOpenMaxReq,

		DiscordEnabled:   discordEnabled,
		DiscordBotToken:  discordBotToken,
		DiscordChannelID: discordChannelID,
		DiscordTimeout:   discordTimeout,

		ReconcileInterval: reconcileInterval,
		ReminderInterval:  reminderInterval,

		LeaderboardCacheTTL: leaderboardCacheTTL,
		LogLevel:            logLevel,
	}, nil
}

func parseAppEnv(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case EnvDev, EnvStage, EnvProd:
		return v, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
