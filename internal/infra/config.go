package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	OpenAIAPIKey  string
	AIModel       string
	VisionModel   string
	OpenAIBaseURL string

	GoogleServiceAccountFile string
	GoogleDriveFolderID      string

	AdminNumber string
	UseWhatsApp bool

	StoragePath      string
	CardFontPath     string
	CardTemplatePath string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		AIModel:       getEnv("AI_MODEL", "gpt-image-1"),
		VisionModel:   getEnv("VISION_MODEL", "gpt-4o"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		GoogleServiceAccountFile: os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"),
		GoogleDriveFolderID:      os.Getenv("GOOGLE_DRIVE_FOLDER_ID"),

		AdminNumber: strings.TrimSpace(os.Getenv("ADMIN_NUMBER")),
		UseWhatsApp: getEnvBool("USE_WHATSAPP", false),

		StoragePath:      getEnv("STORAGE_PATH", "./data/artifacts"),
		CardFontPath:     os.Getenv("CARD_FONT_PATH"),
		CardTemplatePath: os.Getenv("CARD_TEMPLATE_PATH"),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

// DriveBackupEnabled reports whether both pieces of Drive configuration are
// present. Backup upload is never attempted unless this holds.
func (c *Config) DriveBackupEnabled() bool {
	return c.GoogleServiceAccountFile != "" && c.GoogleDriveFolderID != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return fallback
}
