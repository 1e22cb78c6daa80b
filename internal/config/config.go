package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Cache            Cache            `mapstructure:",squash"`
	Redis            Redis            `mapstructure:",squash"`
	Currency         Currency         `mapstructure:",squash"`
	Rates            Rates            `mapstructure:",squash"`
	ExchangeRateSync ExchangeRateSync `mapstructure:",squash"`
	Session          Session          `mapstructure:",squash"`
	SecretKey        string           `mapstructure:"secret_key"`
}

type App struct {
	LogLevel       string         `mapstructure:"log_level"`
	ReportTimezone string         `mapstructure:"report_timezone"`
	Location       *time.Location `mapstructure:"-"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Cache struct {
	Driver string        `mapstructure:"cache_driver"`
	TTL    time.Duration `mapstructure:"cache_ttl"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Currency struct {
	Base      string   `mapstructure:"base_currency"`
	Supported []string `mapstructure:"supported_currencies"`
}

type Rates struct {
	File     string        `mapstructure:"rates_file"`
	CacheTTL time.Duration `mapstructure:"rates_cache_ttl"`
	APIURL   string        `mapstructure:"rates_api_url"`
	APIKey   string        `mapstructure:"rates_api_key"`
}

type ExchangeRateSync struct {
	CronSchedule string `mapstructure:"exchange_rate_sync_cron"`
	Enabled      bool   `mapstructure:"exchange_rate_sync_enabled"`
}

type Session struct {
	CookieName string        `mapstructure:"session_cookie_name"`
	TTL        time.Duration `mapstructure:"session_ttl"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/marketplace?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("SESSION_COOKIE_NAME", "session_token")
	viper.SetDefault("SESSION_TTL", "24h")

	viper.SetDefault("CACHE_DRIVER", "memory") // memory | redis
	viper.SetDefault("CACHE_TTL", "120s")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("SUPPORTED_CURRENCIES", "USD,EUR,GBP,CAD,AUD,JPY,INR")

	viper.SetDefault("RATES_FILE", "")
	viper.SetDefault("RATES_CACHE_TTL", "1h")
	viper.SetDefault("RATES_API_URL", "https://open.er-api.com/v6/latest")
	viper.SetDefault("RATES_API_KEY", "")

	viper.SetDefault("EXCHANGE_RATE_SYNC_CRON", "0 */6 * * *") // every 6 hours
	viper.SetDefault("EXCHANGE_RATE_SYNC_ENABLED", false)

	viper.SetDefault("REPORT_TIMEZONE", "UTC")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using variables loaded by godotenv (viper could not read .env): ", err)
	} else {
		logrus.Info(".env read by viper")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) normalize() error {
	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	c.Currency.Base = strings.ToUpper(strings.TrimSpace(c.Currency.Base))
	supported := make([]string, 0, len(c.Currency.Supported))
	for _, code := range c.Currency.Supported {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			supported = append(supported, code)
		}
	}
	c.Currency.Supported = supported

	loc, err := time.LoadLocation(c.App.ReportTimezone)
	if err != nil {
		return fmt.Errorf("config: invalid REPORT_TIMEZONE %q: %w", c.App.ReportTimezone, err)
	}
	c.App.Location = loc

	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 120 * time.Second
	}

	return nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not get working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from: ", location)
			return
		}
	}

	logrus.Debug("no .env file found, relying on the environment")
}
