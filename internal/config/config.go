package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendMongo  = "mongo"
)

type Config struct {
	Port   string
	AppURL string

	StripeSecretKey string
	StripeAPIURL    string

	// Revalidate is the maximum age of a generated product page before it
	// is regenerated from the catalog.
	Revalidate     time.Duration
	CatalogTimeout time.Duration
	// PageCacheTTL evicts in-memory pages not regenerated within it; zero
	// keeps them forever.
	PageCacheTTL time.Duration

	Locale   string
	Currency string

	CacheBackend     string
	MongoURI         string
	MongoDB          string
	RevalidateSecret string

	LogLevel slog.Level
	GinMode  string
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	revalidate, err := getSeconds("REVALIDATE_SECONDS", time.Hour)
	if err != nil {
		return nil, err
	}
	catalogTimeout, err := getSeconds("CATALOG_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	pageCacheTTL, err := getSeconds("PAGE_CACHE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		AppURL:           strings.TrimRight(getEnv("APP_URL", getEnv("NEXT_URL", "http://localhost:8080")), "/"),
		StripeSecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
		StripeAPIURL:     getEnv("STRIPE_API_URL", ""),
		Revalidate:       revalidate,
		CatalogTimeout:   catalogTimeout,
		PageCacheTTL:     pageCacheTTL,
		Locale:           getEnv("SHOP_LOCALE", "pt-BR"),
		Currency:         getEnv("SHOP_CURRENCY", "BRL"),
		CacheBackend:     strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory)),
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDB:          getEnv("MONGO_DB", "igniteShop"),
		RevalidateSecret: getEnv("REVALIDATE_SECRET", ""),
		LogLevel:         level,
		GinMode:          getEnv("GIN_MODE", "release"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.StripeSecretKey == "" {
		errs = append(errs, errors.New("STRIPE_SECRET_KEY is required"))
	}
	if c.Revalidate <= 0 {
		errs = append(errs, errors.New("REVALIDATE_SECONDS must be positive"))
	}
	if c.PageCacheTTL != 0 && c.PageCacheTTL < c.Revalidate {
		errs = append(errs, errors.New("PAGE_CACHE_TTL must be zero or at least REVALIDATE_SECONDS"))
	}
	if c.CatalogTimeout < 0 {
		errs = append(errs, errors.New("CATALOG_TIMEOUT cannot be negative"))
	}
	switch c.CacheBackend {
	case CacheBackendMemory:
	case CacheBackendMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required when CACHE_BACKEND=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSeconds(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return time.Duration(n) * time.Second, nil
}
