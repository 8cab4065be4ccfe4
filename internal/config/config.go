package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Store backends.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	// Server
	Port           string
	Environment    string
	AllowedOrigins []string
	StaticDir      string
	SecureCookies  bool

	// Store
	StoreBackend string
	KVURL        string
	KVToken      string
	DatabaseURL  string

	// Auth
	AdminSetupKey   string
	UserSessionTTL  time.Duration
	AdminSessionTTL time.Duration
	BcryptCost      int

	// Caching
	BioCacheTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present, and CONFIG_FILE may name
// a config file whose values sit below the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ERROR [config.Load] failed to read .env: %v", err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("STATIC_DIR", "")
	v.SetDefault("SECURE_COOKIES", false)
	v.SetDefault("STORE_BACKEND", BackendRedis)
	v.SetDefault("KV_REST_API_URL", "")
	v.SetDefault("KV_REST_API_TOKEN", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ADMIN_SETUP_KEY", "")
	v.SetDefault("USER_SESSION_TTL_HOURS", 7*24)
	v.SetDefault("ADMIN_SESSION_TTL_HOURS", 24)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("BIO_CACHE_SECONDS", 60)

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:            v.GetString("PORT"),
		Environment:     v.GetString("ENVIRONMENT"),
		AllowedOrigins:  splitList(v.GetString("ALLOWED_ORIGINS")),
		StaticDir:       v.GetString("STATIC_DIR"),
		SecureCookies:   v.GetBool("SECURE_COOKIES"),
		StoreBackend:    strings.ToLower(v.GetString("STORE_BACKEND")),
		KVURL:           v.GetString("KV_REST_API_URL"),
		KVToken:         v.GetString("KV_REST_API_TOKEN"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		AdminSetupKey:   v.GetString("ADMIN_SETUP_KEY"),
		UserSessionTTL:  time.Duration(v.GetInt("USER_SESSION_TTL_HOURS")) * time.Hour,
		AdminSessionTTL: time.Duration(v.GetInt("ADMIN_SESSION_TTL_HOURS")) * time.Hour,
		BcryptCost:      v.GetInt("BCRYPT_COST"),
		BioCacheTTL:     time.Duration(v.GetInt("BIO_CACHE_SECONDS")) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.AdminSetupKey == "" {
		return fmt.Errorf("ADMIN_SETUP_KEY environment variable is required")
	}

	switch c.StoreBackend {
	case BackendRedis:
		if c.KVURL == "" {
			return fmt.Errorf("KV_REST_API_URL environment variable is required for the redis backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.UserSessionTTL <= 0 || c.AdminSessionTTL <= 0 {
		return fmt.Errorf("session lifetimes must be positive")
	}
	if c.IsProduction() && c.StoreBackend == BackendMemory {
		return fmt.Errorf("the memory store backend cannot be used in production")
	}
	if c.BioCacheTTL <= 0 {
		return fmt.Errorf("BIO_CACHE_SECONDS must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
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
