package config

import (
	"fmt"  // Error wrapping
	"time" // Durations for TTLs

	"github.com/ilyakaznacheev/cleanenv" // Environment parsing with defaults
	"github.com/joho/godotenv"           // For loading .env files
	"golang.org/x/crypto/bcrypt"         // Cost bounds
)

// DefaultDatabaseURL is the SQLite file used when no database is configured
const DefaultDatabaseURL = "arado.db3"

// Config holds the application configuration
type Config struct {
	AppPort       string        `env:"APP_PORT" env-default:"5000"`    // Application port
	DatabaseURL   string        `env:"DATABASE_URL"`                   // Full DSN, driver picked by prefix
	DBUser        string        `env:"DB_USER"`                        // Database user
	DBPassword    string        `env:"DB_PASSWORD"`                    // Database password
	DBHost        string        `env:"DB_HOST"`                        // Database host
	DBPort        string        `env:"DB_PORT" env-default:"3306"`     // Database port
	DBName        string        `env:"DB_NAME"`                        // Database name
	RedisAddr     string        `env:"REDIS_ADDR"`                     // Redis server address, empty disables the key cache
	RedisPass     string        `env:"REDIS_PASS"`                     // Redis password
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`       // Redis database number
	SessionSecret string        `env:"SESSION_SECRET"`                 // Admin session signing key, empty disables sessions
	SessionTTL    time.Duration `env:"SESSION_TTL" env-default:"24h"`  // Admin session lifetime
	KeyCacheTTL   time.Duration `env:"KEY_CACHE_TTL" env-default:"5m"` // API key cache lifetime
	PasswordCost  int           `env:"PASSWORD_COST" env-default:"10"` // bcrypt cost for new passwords
	IsProd        bool          `env:"IS_PROD" env-default:"false"`    // Is production environment
}

// LoadConfig reads .env (if present) and the environment
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.PasswordCost < bcrypt.MinCost || cfg.PasswordCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("config: PASSWORD_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &cfg, nil
}

// DSN returns DATABASE_URL, or a MySQL DSN built from the DB_* variables when
// DB_HOST is set, or the default SQLite file.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBHost != "" {
		return "mysql://" + c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
	}
	return DefaultDatabaseURL
}
