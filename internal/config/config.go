package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all process-wide settings, read from the environment.
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL" env-required:"true"`
	ServerPort     string `env:"SERVER_PORT" env-default:"8080"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" env-default:""`
	JWTSecret      string `env:"JWT_SECRET" env-required:"true"`
	OpenAIAPIKey   string `env:"OPENAI_API_KEY" env-default:""`
	OpenAIModel    string `env:"OPENAI_MODEL" env-default:"gpt-4o"`
}

// Load reads configuration from environment variables.
// Callers are expected to have loaded .env (godotenv) beforehand.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}
