package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// InboundFlowEnabled switches the deployment to the extended status flow:
	// fully approved requests land on pending_inbound instead of approved.
	InboundFlowEnabled bool

	// NotifyWebhookURL is the best-effort transition notification endpoint;
	// empty disables dispatch entirely.
	NotifyWebhookURL string
	NotifyTimeout    time.Duration

	// LoginRateLimit is a ulule/limiter formatted rate, e.g. "5-M".
	LoginRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "purchase-mgmt-app")
	viper.SetDefault("INBOUND_FLOW_ENABLED", false)
	viper.SetDefault("NOTIFY_WEBHOOK_URL", "")
	viper.SetDefault("NOTIFY_TIMEOUT", "5s")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.InboundFlowEnabled = viper.GetBool("INBOUND_FLOW_ENABLED")

	cfg.NotifyWebhookURL = viper.GetString("NOTIFY_WEBHOOK_URL")
	if cfg.NotifyWebhookURL == "" {
		log.Println("Warning: NOTIFY_WEBHOOK_URL not set. Transition notifications are disabled.")
	}
	notifyTimeoutStr := viper.GetString("NOTIFY_TIMEOUT")
	notifyTimeout, err := time.ParseDuration(notifyTimeoutStr)
	if err != nil {
		notifyTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for NOTIFY_TIMEOUT (%q). Defaulting to %s.\n", notifyTimeoutStr, notifyTimeout)
	}
	cfg.NotifyTimeout = notifyTimeout

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}
