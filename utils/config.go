package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Rule sources accepted by RULES_SOURCE.
const (
	RulesFromDefault  = "default"
	RulesFromFile     = "file"
	RulesFromPostgres = "postgres"
)

// Config is read from the environment, optionally seeded by a .env file.
type Config struct {
	Port                 string
	GinMode              string
	RulesSource          string
	RulesFiles           []string
	RulesRevisions       []string
	DefaultRevision      string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	JWTSecret            string
	AdminUser            string
	AdminPasswordHash    string
	HistoryRetentionDays int
	HistoryPurgeCron     string
}

// DatabaseEnabled reports whether DB_HOST was configured.
func (c Config) DatabaseEnabled() bool {
	return c.DBHost != ""
}

// LoadConfig loads .env files if present and reads the environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}

	cfg := Config{
		Port:              getenv("PORT", "9000"),
		GinMode:           os.Getenv("GIN_MODE"),
		RulesSource:       strings.ToLower(getenv("RULES_SOURCE", RulesFromDefault)),
		RulesFiles:        splitList(os.Getenv("RULES_FILE")),
		RulesRevisions:    splitList(os.Getenv("RULES_REVISIONS")),
		DefaultRevision:   os.Getenv("RULES_DEFAULT_REVISION"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminUser:         getenv("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		HistoryPurgeCron:  getenv("HISTORY_PURGE_CRON", "30 2 * * *"),
	}

	days, err := strconv.Atoi(getenv("HISTORY_RETENTION_DAYS", "30"))
	if err != nil || days < 1 {
		return cfg, fmt.Errorf("invalid HISTORY_RETENTION_DAYS %q", os.Getenv("HISTORY_RETENTION_DAYS"))
	}
	cfg.HistoryRetentionDays = days

	portInt, err := strconv.Atoi(cfg.Port)
	if err != nil || portInt < 0 || portInt > 65535 {
		return cfg, fmt.Errorf("invalid PORT %q: must be a number between 0 and 65535", cfg.Port)
	}

	switch cfg.RulesSource {
	case RulesFromDefault:
	case RulesFromFile:
		if len(cfg.RulesFiles) == 0 {
			return cfg, fmt.Errorf("RULES_SOURCE=file needs RULES_FILE")
		}
	case RulesFromPostgres:
		if !cfg.DatabaseEnabled() {
			return cfg, fmt.Errorf("RULES_SOURCE=postgres needs DB_HOST")
		}
	default:
		return cfg, fmt.Errorf("unknown RULES_SOURCE %q", cfg.RulesSource)
	}

	return cfg, nil
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
