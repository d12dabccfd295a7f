package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv string `yaml:"app_env" validate:"oneof=development production test"`

	ClickReward    uint64        `yaml:"click_reward" validate:"gte=1"`
	StartingMoney  uint64        `yaml:"starting_money"`
	TickInterval   time.Duration `yaml:"tick_interval" validate:"gte=10ms"`
	SaveInterval   time.Duration `yaml:"save_interval" validate:"gte=1s"`
	SaveOnMutation bool          `yaml:"save_on_mutation"`

	CatalogPath string `yaml:"catalog_path"`
	SaveDir     string `yaml:"save_dir" validate:"required"`
	SaveID      string `yaml:"save_id" validate:"required"`
	DatabaseURL string `yaml:"database_url"`

	Port             int           `yaml:"port" validate:"gte=1,lte=65535"`
	HTTPReadTimeout  time.Duration `yaml:"http_read_timeout"`
	HTTPWriteTimeout time.Duration `yaml:"http_write_timeout"`
	HTTPIdleTimeout  time.Duration `yaml:"http_idle_timeout"`
}

func Default() Config {
	return Config{
		AppEnv:           "development",
		ClickReward:      1,
		StartingMoney:    0,
		TickInterval:     time.Second,
		SaveInterval:     10 * time.Second,
		SaveOnMutation:   true,
		SaveDir:          ".datathieves",
		SaveID:           "default",
		Port:             8080,
		HTTPReadTimeout:  15 * time.Second,
		HTTPWriteTimeout: 30 * time.Second,
		HTTPIdleTimeout:  60 * time.Second,
	}
}

// Load builds a Config from defaults, an optional YAML file and the
// environment, in that order of precedence.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(c *Config) {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.Port = getEnvInt("PORT", c.Port)

	c.ClickReward = uint64(getEnvInt("DATATHIEVES_CLICK_REWARD", int(c.ClickReward)))
	c.StartingMoney = uint64(getEnvInt("DATATHIEVES_STARTING_MONEY", int(c.StartingMoney)))
	c.TickInterval = getEnvDuration("DATATHIEVES_TICK_INTERVAL", c.TickInterval)
	c.SaveInterval = getEnvDuration("DATATHIEVES_SAVE_INTERVAL", c.SaveInterval)
	c.SaveOnMutation = getEnvBool("DATATHIEVES_SAVE_ON_MUTATION", c.SaveOnMutation)
	c.CatalogPath = getEnv("DATATHIEVES_CATALOG", c.CatalogPath)
	c.SaveDir = getEnv("DATATHIEVES_SAVE_DIR", c.SaveDir)
	c.SaveID = getEnv("DATATHIEVES_SAVE_ID", c.SaveID)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
