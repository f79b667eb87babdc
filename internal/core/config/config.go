package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Production ProductionConfig `mapstructure:"production"`
	Assistant  AssistantConfig  `mapstructure:"assistant"`
	Audit      AuditConfig      `mapstructure:"audit"`
	Sheets     SheetsConfig     `mapstructure:"sheets"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	AdminPassword string        `mapstructure:"admin_password"`
	StaffPassword string        `mapstructure:"staff_password"`
	LoginAttempts int           `mapstructure:"login_attempts"`
	LoginWindow   time.Duration `mapstructure:"login_window"`
}

type ProductionConfig struct {
	MaxSlots int    `mapstructure:"max_slots"`
	SeedFile string `mapstructure:"seed_file"`
}

type AssistantConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RequestsPerMin int           `mapstructure:"requests_per_minute"`
}

type AuditConfig struct {
	DatabaseURL   string `mapstructure:"database_url"`
	MigrationsDir string `mapstructure:"migrations_dir"`
}

type SheetsConfig struct {
	CredentialsJSON string `mapstructure:"credentials_json"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Range           string `mapstructure:"range"`
}

// Load reads .env (never overriding variables already set), then resolves every key
// from the environment with the defaults below.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := bindEnvVariables(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("auth.token_ttl", 120*time.Hour)
	v.SetDefault("auth.login_attempts", 10)
	v.SetDefault("auth.login_window", 15*time.Minute)

	v.SetDefault("production.max_slots", 3)

	v.SetDefault("assistant.model", "gemini-2.5-flash")
	v.SetDefault("assistant.timeout", 20*time.Second)
	v.SetDefault("assistant.requests_per_minute", 10)

	v.SetDefault("audit.migrations_dir", "migrations")

	v.SetDefault("sheets.range", "Ledger!A1")
}

func bindEnvVariables(v *viper.Viper) error {
	bindings := map[string]string{
		"server.host":             "APP_HOST",
		"server.mode":             "GIN_MODE",
		"log.level":               "LOG_LEVEL",
		"log.format":              "LOG_FORMAT",
		"auth.jwt_secret":         "JWT_SECRET",
		"auth.token_ttl":          "TOKEN_TTL",
		"auth.admin_password":     "ADMIN_PASSWORD",
		"auth.staff_password":     "STAFF_PASSWORD",
		"production.max_slots":    "MAX_PRODUCTION_SLOTS",
		"production.seed_file":    "SEED_FILE",
		"assistant.api_key":       "GEMINI_API_KEY",
		"assistant.model":         "GEMINI_MODEL",
		"assistant.timeout":       "ASSISTANT_TIMEOUT",
		"audit.database_url":      "AUDIT_DATABASE_URL",
		"sheets.credentials_json": "GOOGLE_SHEETS_CREDENTIALS_JSON",
		"sheets.spreadsheet_id":   "GOOGLE_SHEETS_SPREADSHEET_ID",
		"sheets.range":            "GOOGLE_SHEETS_RANGE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return nil
}

// Validate checks what the HTTP server needs; the migrate command does not call it.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if c.Production.MaxSlots < 1 {
		return fmt.Errorf("MAX_PRODUCTION_SLOTS must be at least 1, got %d", c.Production.MaxSlots)
	}
	if c.Auth.AdminPassword == "" && c.Auth.StaffPassword == "" {
		return fmt.Errorf("at least one of ADMIN_PASSWORD or STAFF_PASSWORD must be set")
	}
	return nil
}
