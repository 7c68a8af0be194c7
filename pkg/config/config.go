package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logger struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logger"`
	Snapshot struct {
		CacheTTL time.Duration `yaml:"cache_ttl"`
		MaxCoins int           `yaml:"max_coins"`
	} `yaml:"snapshot"`
	CoinGecko struct {
		BaseURL      string        `yaml:"base_url"`
		Timeout      time.Duration `yaml:"timeout"`
		RateCapacity float64       `yaml:"rate_capacity"`
		RatePerSec   float64       `yaml:"rate_per_sec"`
	} `yaml:"coingecko"`
	YahooScrape struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"yahoo_scrape"`
	YahooChart struct {
		BaseURL        string        `yaml:"base_url"`
		Timeout        time.Duration `yaml:"timeout"`
		LookbackMonths int           `yaml:"lookback_months"`
		MaxPoints      int           `yaml:"max_points"`
	} `yaml:"yahoo_chart"`
	Predictor struct {
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		PollDelay time.Duration `yaml:"poll_delay"`
	} `yaml:"predictor"`
	Cache struct {
		Backend string `yaml:"backend"` // memory or redis
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("COINGECKO_URL"); v != "" {
		c.CoinGecko.BaseURL = v
	}
	if v := os.Getenv("PREDICTOR_URL"); v != "" {
		c.Predictor.BaseURL = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "console"
	}
	if c.Logger.Output == "" {
		c.Logger.Output = "stdout"
	}
	if c.Snapshot.CacheTTL == 0 {
		c.Snapshot.CacheTTL = 5 * time.Minute
	}
	if c.Snapshot.MaxCoins == 0 {
		c.Snapshot.MaxCoins = 50
	}
	if c.CoinGecko.BaseURL == "" {
		c.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.CoinGecko.Timeout == 0 {
		c.CoinGecko.Timeout = 10 * time.Second
	}
	if c.CoinGecko.RateCapacity == 0 {
		c.CoinGecko.RateCapacity = 10
	}
	if c.CoinGecko.RatePerSec == 0 {
		c.CoinGecko.RatePerSec = 0.5
	}
	if c.YahooScrape.URL == "" {
		c.YahooScrape.URL = "https://finance.yahoo.com/markets/crypto/all/?start=0&count=50"
	}
	if c.YahooScrape.Timeout == 0 {
		c.YahooScrape.Timeout = 15 * time.Second
	}
	if c.YahooChart.BaseURL == "" {
		c.YahooChart.BaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if c.YahooChart.Timeout == 0 {
		c.YahooChart.Timeout = 10 * time.Second
	}
	if c.YahooChart.LookbackMonths == 0 {
		c.YahooChart.LookbackMonths = 5
	}
	if c.YahooChart.MaxPoints == 0 {
		c.YahooChart.MaxPoints = 150
	}
	if c.Predictor.Timeout == 0 {
		c.Predictor.Timeout = 30 * time.Second
	}
	if c.Predictor.PollDelay == 0 {
		c.Predictor.PollDelay = 2 * time.Second
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for redis backend")
	}
	if c.Predictor.BaseURL == "" {
		return fmt.Errorf("predictor.base_url is required")
	}
	if c.Snapshot.MaxCoins < 1 || c.Snapshot.MaxCoins > 250 {
		return fmt.Errorf("snapshot.max_coins must be in 1..250, got %d", c.Snapshot.MaxCoins)
	}
	return nil
}
