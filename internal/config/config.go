package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Scraper  ScraperConfig
	Browser  BrowserConfig
	LLM      LLMConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type ScraperConfig struct {
	BaseURL           string
	ConcurrentLimit   int
	NavigationTimeout time.Duration
	SelectorTimeout   time.Duration
	SettleDelay       time.Duration
	MaxScrollSteps    int
	DelayMin          time.Duration
	DelayMax          time.Duration
	CacheBackend      string // "memory" or "redis"
}

type BrowserConfig struct {
	Headless       bool
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string
	AcceptLanguage string
	TimezoneID     string
	Locale         string
}

type LLMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	VisionModel string
	Timeout     time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Scraper: ScraperConfig{
			BaseURL:           getEnvOrDefault("SCRAPER_BASE_URL", "https://www.myntra.com"),
			ConcurrentLimit:   getIntOrDefault("SCRAPER_CONCURRENT_LIMIT", 2),
			NavigationTimeout: getDurationOrDefault("SCRAPER_NAVIGATION_TIMEOUT", 90*time.Second),
			SelectorTimeout:   getDurationOrDefault("SCRAPER_SELECTOR_TIMEOUT", 45*time.Second),
			SettleDelay:       getDurationOrDefault("SCRAPER_SETTLE_DELAY", 2*time.Second),
			MaxScrollSteps:    getIntOrDefault("SCRAPER_MAX_SCROLL_STEPS", 20),
			DelayMin:          getDurationOrDefault("SCRAPER_DELAY_MIN", 0),
			DelayMax:          getDurationOrDefault("SCRAPER_DELAY_MAX", 0),
			CacheBackend:      getEnvOrDefault("SCRAPER_CACHE_BACKEND", "memory"),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			UserAgent:      getEnvOrDefault("BROWSER_USER_AGENT", ""),
			AcceptLanguage: getEnvOrDefault("BROWSER_ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
			TimezoneID:     getEnvOrDefault("BROWSER_TIMEZONE", "Asia/Kolkata"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "en-IN"),
		},
		LLM: LLMConfig{
			BaseURL:     getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:      getEnvOrDefault("LLM_API_KEY", ""),
			Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			VisionModel: getEnvOrDefault("LLM_VISION_MODEL", "gpt-4o"),
			Timeout:     getDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getIntOrDefault("DB_PORT", 5432),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", ""),
			DBName:   getEnvOrDefault("DB_NAME", "glamourhall"),
			SSLMode:  getEnvOrDefault("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getIntOrDefault("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.ConcurrentLimit < 1 {
		return fmt.Errorf("SCRAPER_CONCURRENT_LIMIT must be at least 1")
	}

	if c.Scraper.MaxScrollSteps < 1 {
		return fmt.Errorf("SCRAPER_MAX_SCROLL_STEPS must be at least 1")
	}

	if c.Scraper.DelayMin > c.Scraper.DelayMax {
		return fmt.Errorf("SCRAPER_DELAY_MIN cannot be greater than SCRAPER_DELAY_MAX")
	}

	if c.Scraper.CacheBackend != "memory" && c.Scraper.CacheBackend != "redis" {
		return fmt.Errorf("SCRAPER_CACHE_BACKEND must be memory or redis")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
