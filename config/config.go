package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	RelayTelegram = "telegram"
	RelayEmail    = "email"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// Relay selection: "telegram" (default) or "email"
	RelayProvider       string
	RelayTimeoutSeconds int
	// Telegram Bot API
	TelegramBotToken  string
	TelegramChatID    string
	TelegramAPIURL    string
	TelegramParseMode string
	// SMTP Configuration (alternative relay)
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
	// HTTP surface
	AllowedOrigins         []string
	EnableSwagger          bool
	ShutdownTimeoutSeconds int
	MaxBodyBytes           int64
}

func LoadConfig() (*Config, error) {
	// .env is optional; in production the variables come from the host
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "3001"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		RelayProvider:       strings.ToLower(strings.TrimSpace(getEnv("RELAY_PROVIDER", RelayTelegram))),
		RelayTimeoutSeconds: getEnvInt("RELAY_TIMEOUT_SECONDS", 15),
		// Telegram
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:    getEnv("TELEGRAM_CHAT_ID", ""),
		TelegramAPIURL:    strings.TrimRight(getEnv("TELEGRAM_API_URL", "https://api.telegram.org"), "/"),
		TelegramParseMode: getEnv("TELEGRAM_PARSE_MODE", "HTML"),
		// SMTP
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", ""),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// HTTP
		AllowedOrigins:         getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		EnableSwagger:          getEnvBool("ENABLE_SWAGGER", true),
		ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5),
		MaxBodyBytes:           int64(getEnvInt("MAX_BODY_BYTES", 100<<10)),
	}

	if cfg.RelayProvider != RelayTelegram && cfg.RelayProvider != RelayEmail {
		log.Printf("WARNING: unknown RELAY_PROVIDER %q, falling back to %s", cfg.RelayProvider, RelayTelegram)
		cfg.RelayProvider = RelayTelegram
	}

	// Missing secrets are reported per request, the server still starts
	if cfg.RelayProvider == RelayTelegram && (cfg.TelegramBotToken == "" || cfg.TelegramChatID == "") {
		log.Println("WARNING: TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID missing. Contact form will return configuration errors.")
	}

	return cfg, nil
}

// RelayTimeout is the outbound HTTP client timeout
func (c *Config) RelayTimeout() time.Duration {
	return time.Duration(c.RelayTimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
