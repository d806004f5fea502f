package config

import (
	"strconv"
	"strings"
	"time"

	"retail_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration loaded from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Business BusinessConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string
}

type AuthConfig struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// BusinessConfig carries the retail-domain constants: how long a shift may stay
// open, the quantity under which a low-stock notification is raised, and the
// rounding precision for money and percent figures.
type BusinessConfig struct {
	ShiftDuration     time.Duration
	LowStockThreshold int
	MoneyDecimals     int
	PercentDecimals   int
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	accessTTL, _ := time.ParseDuration(utils.Getenv("JWT_ACCESS_TTL", "15m"))
	refreshTTL, _ := time.ParseDuration(utils.Getenv("JWT_REFRESH_TTL", "168h"))

	var origins []string
	if raw := utils.Getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		origins = strings.Split(raw, ",")
	} else {
		origins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	return &Config{
		Server: ServerConfig{
			Port:        utils.Getenv("PORT", "8080"),
			CORSOrigins: origins,
		},
		Database: DatabaseConfig{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "retail_user"),
			Password:   utils.Getenv("DB_PASSWORD", "retail_password"),
			Name:       utils.Getenv("DB_NAME", "retail_db"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},
		Auth: AuthConfig{
			JWTSecret:  utils.Getenv("JWT_SECRET", "dev-only-insecure-secret"),
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
		Business: BusinessConfig{
			ShiftDuration:     shiftDuration(),
			LowStockThreshold: getInt("LOW_STOCK_THRESHOLD", 5),
			MoneyDecimals:     getInt("MONEY_DECIMALS", 2),
			PercentDecimals:   getInt("PERCENT_DECIMALS", 2),
		},
	}
}

// shiftDuration resolves the shift limit. SHIFT_DURATION_SECONDS, when set,
// overrides SHIFT_DURATION_HOURS.
func shiftDuration() time.Duration {
	if rawSec := utils.Getenv("SHIFT_DURATION_SECONDS", ""); rawSec != "" {
		if sec, err := strconv.Atoi(rawSec); err == nil && sec > 0 {
			return time.Duration(sec) * time.Second
		}
	}
	hours := getInt("SHIFT_DURATION_HOURS", 8)
	return time.Duration(hours) * time.Hour
}

func getInt(key string, fallback int) int {
	if raw := utils.Getenv(key, ""); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
