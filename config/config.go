package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	LLMProvider  string // openai, anthropic, compat
	OpenAIKey    string
	AnthropicKey string
	LLMModel     string
	BaseURL      string // compat provider endpoint
	DatabasePath string
	ListenAddr   string
	WebhookURL   string // reminder delivery, optional
	ReminderCron string
	Timezone     string // IANA name; empty means system local
}

func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env

	return &Config{
		LLMProvider:  envOr("LLM_PROVIDER", "openai"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		LLMModel:     os.Getenv("LLM_MODEL"),
		BaseURL:      envOr("LLM_BASE_URL", "http://localhost:11434/v1"),
		DatabasePath: envOr("DATABASE_PATH", "./unhook.db"),
		ListenAddr:   envOr("LISTEN_ADDR", ":8787"),
		WebhookURL:   os.Getenv("WEBHOOK_URL"),
		ReminderCron: envOr("REMINDER_CRON", "0 20 * * *"),
		Timezone:     os.Getenv("TIMEZONE"),
	}
}

// Credential returns the API key for the configured provider. An empty
// result is a call-time failure, not a startup error.
func (c *Config) Credential() string {
	switch c.LLMProvider {
	case "anthropic":
		return c.AnthropicKey
	default:
		return c.OpenAIKey
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
