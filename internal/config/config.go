package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SourceEmbedded = "embedded"
	SourceFiles    = "files"
	SourcePostgres = "postgres"
)

// Config holds the process configuration read from the environment.
type Config struct {
	Port             string
	GinMode          string
	LogLevel         string
	CORSAllowOrigins []string
	JWTSecret        string
	Reference        ReferenceConfig
	Database         DatabaseConfig
}

type ReferenceConfig struct {
	Source              string
	VatRatesPath        string
	TradeAgreementsPath string
	SeedDatabase        bool
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

// Load reads configs/.env when present, then the environment.
func Load() *Config {
	_ = godotenv.Load("configs/.env")
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		Reference: ReferenceConfig{
			Source:              strings.ToLower(getEnv("REFERENCE_SOURCE", SourceEmbedded)),
			VatRatesPath:        getEnv("VAT_RATES_PATH", "data/vat_rates.json"),
			TradeAgreementsPath: getEnv("TRADE_AGREEMENTS_PATH", "data/trade_agreements.json"),
			SeedDatabase:        getEnvBool("REFERENCE_SEED_DATABASE", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	// Loading from or seeding postgres implies a database.
	cfg.Database.Enabled = getEnvBool("DB_ENABLED", false) ||
		cfg.Reference.Source == SourcePostgres ||
		cfg.Reference.SeedDatabase

	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
