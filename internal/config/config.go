package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	AppURL   string
	SiteName string

	Database DatabaseConfig
	RedisURL string

	Auth     AuthConfig
	Identity IdentityConfig
	News     NewsConfig
	LLM      LLMConfig
	Mail     MailConfig

	NotificationWorkers int
	SummarizeRateLimit  float64
	SummarizeBurst      int
}

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	TimeZone string
}

type AuthConfig struct {
	// JWTPublicKey is the PEM encoded key the identity provider signs
	// session tokens with. When empty, JWTSecret (HS256) is used instead.
	JWTPublicKey string
	JWTSecret    string
}

type IdentityConfig struct {
	// BaseURL is the Backend API host without the version path.
	BaseURL   string
	SecretKey string
}

type NewsConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type LLMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

type MailConfig struct {
	// Provider is "brevo" or "smtp".
	Provider    string
	BrevoURL    string
	BrevoAPIKey string
	SenderEmail string
	SenderName  string
	SMTPHost    string
	SMTPPort    string
	Username    string
	Password    string
}

// Load reads the environment, optionally seeded from a .env file, and
// returns the service configuration.
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := Config{
		Port:     getEnv("PORT", "8080"),
		AppURL:   strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		SiteName: getEnv("SITE_NAME", "BlogIQ"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "blogiq"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "UTC"),
		},
		RedisURL: getEnv("REDIS_URL", ""),
		Auth: AuthConfig{
			JWTPublicKey: strings.ReplaceAll(getEnv("CLERK_JWT_KEY", ""), `\n`, "\n"),
			JWTSecret:    getEnv("JWT_SECRET_KEY", ""),
		},
		Identity: IdentityConfig{
			BaseURL:   getEnv("CLERK_API_URL", "https://api.clerk.com"),
			SecretKey: getEnv("CLERK_SECRET_KEY", ""),
		},
		News: NewsConfig{
			BaseURL: getEnv("NEWS_API_URL", "https://newsapi.org/v2"),
			APIKey:  getEnv("NEWS_API_KEY", ""),
			Timeout: getDuration("NEWS_API_TIMEOUT", 15*time.Second),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("LLM_API_URL", "https://api.groq.com/openai/v1"),
			APIKey:      getEnv("LLM_API_KEY", os.Getenv("GROQ_API_KEY")),
			Model:       getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			Temperature: getFloat("LLM_TEMPERATURE", 0.5),
			MaxTokens:   getInt("LLM_MAX_TOKENS", 500),
		},
		Mail: MailConfig{
			Provider:    strings.ToLower(getEnv("MAIL_PROVIDER", "brevo")),
			BrevoURL:    getEnv("BREVO_API_URL", "https://api.brevo.com/v3/smtp/email"),
			BrevoAPIKey: getEnv("BREVO_API_KEY", ""),
			SenderEmail: getEnv("EMAIL_FROM", ""),
			SenderName:  getEnv("EMAIL_FROM_NAME", "BlogIQ Admin"),
			SMTPHost:    getEnv("SMTP_HOST", ""),
			SMTPPort:    getEnv("SMTP_PORT", "587"),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
		},
		NotificationWorkers: getInt("NOTIFICATION_WORKERS", 3),
		SummarizeRateLimit:  getFloat("SUMMARIZE_RATE_PER_SECOND", 0.5),
		SummarizeBurst:      getInt("SUMMARIZE_BURST", 5),
	}

	if cfg.News.APIKey == "" {
		log.Println("Warning: NEWS_API_KEY is not set, the feed will only contain editorial posts")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return fallback
}
