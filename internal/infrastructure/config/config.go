package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"

	PaymentsMercadoPago = "mercadopago"
	PaymentsMock        = "mock"

	SignaturesMemory = "memory"
	SignaturesS3     = "s3"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds all service configuration.
type Config struct {
	App        AppConfig
	Log        LogConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Payments   PaymentsConfig
	Signatures SignaturesConfig
	Lifecycle  LifecycleConfig
}

type AppConfig struct {
	Name            string
	Env             string
	Port            int
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

// StorageConfig selects the document store. Table names apply to DynamoDB only.
type StorageConfig struct {
	Driver        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	ServicesTable string
	ClientsTable  string
	QuotesTable   string
	InvoicesTable string
	PayoutsTable  string
}

// RedisConfig backs charge keys and the document cache when Driver is redis.
type RedisConfig struct {
	Driver   string
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type PaymentsConfig struct {
	Provider    string
	AccessToken string
}

type SignaturesConfig struct {
	Driver   string
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

type LifecycleConfig struct {
	CountdownInterval      time.Duration
	ChargeKeyTTL           time.Duration
	DefaultCurrency        string
	DefaultTaxRate         decimal.Decimal
	InvoiceDueDays         int
	IllustrativeFeePercent decimal.Decimal
}

// Load reads configuration with this priority:
//  1. environment variables prefixed FSB_ (FSB_STORAGE_DRIVER, ...)
//  2. config.toml in one of paths (default: ".", "/app")
//  3. built-in defaults
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if len(paths) == 0 {
		paths = []string{".", "/app"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("FSB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	taxRate, err := decimal.NewFromString(v.GetString("lifecycle.default_tax_rate"))
	if err != nil {
		return nil, fmt.Errorf("lifecycle.default_tax_rate: %w", err)
	}
	fee, err := decimal.NewFromString(v.GetString("lifecycle.illustrative_fee_percent"))
	if err != nil {
		return nil, fmt.Errorf("lifecycle.illustrative_fee_percent: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:            v.GetString("app.name"),
			Env:             v.GetString("app.env"),
			Port:            v.GetInt("app.port"),
			ShutdownTimeout: v.GetDuration("app.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(v.GetString("storage.driver")),
			Region:        v.GetString("storage.region"),
			Endpoint:      v.GetString("storage.endpoint"),
			AccessKey:     v.GetString("storage.access_key"),
			SecretKey:     v.GetString("storage.secret_key"),
			ServicesTable: v.GetString("storage.services_table"),
			ClientsTable:  v.GetString("storage.clients_table"),
			QuotesTable:   v.GetString("storage.quotes_table"),
			InvoicesTable: v.GetString("storage.invoices_table"),
			PayoutsTable:  v.GetString("storage.payouts_table"),
		},
		Redis: RedisConfig{
			Driver:   strings.ToLower(v.GetString("redis.driver")),
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			CacheTTL: v.GetDuration("redis.cache_ttl"),
		},
		Payments: PaymentsConfig{
			Provider:    strings.ToLower(v.GetString("payments.provider")),
			AccessToken: v.GetString("payments.access_token"),
		},
		Signatures: SignaturesConfig{
			Driver:   strings.ToLower(v.GetString("signatures.driver")),
			Bucket:   v.GetString("signatures.bucket"),
			Prefix:   v.GetString("signatures.prefix"),
			Region:   v.GetString("signatures.region"),
			Endpoint: v.GetString("signatures.endpoint"),
		},
		Lifecycle: LifecycleConfig{
			CountdownInterval:      v.GetDuration("lifecycle.countdown_interval"),
			ChargeKeyTTL:           v.GetDuration("lifecycle.charge_key_ttl"),
			DefaultCurrency:        strings.ToUpper(v.GetString("lifecycle.default_currency")),
			DefaultTaxRate:         taxRate,
			InvoiceDueDays:         v.GetInt("lifecycle.invoice_due_days"),
			IllustrativeFeePercent: fee,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "fieldservice-billing")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", "10s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "local")
	v.SetDefault("storage.secret_key", "local")
	v.SetDefault("storage.services_table", "services")
	v.SetDefault("storage.clients_table", "clients")
	v.SetDefault("storage.quotes_table", "quotes")
	v.SetDefault("storage.invoices_table", "invoices")
	v.SetDefault("storage.payouts_table", "payouts")

	v.SetDefault("redis.driver", CacheMemory)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "5m")

	v.SetDefault("payments.provider", PaymentsMock)
	v.SetDefault("payments.access_token", "")

	v.SetDefault("signatures.driver", SignaturesMemory)
	v.SetDefault("signatures.bucket", "")
	v.SetDefault("signatures.prefix", "signatures/")
	v.SetDefault("signatures.region", "us-east-1")
	v.SetDefault("signatures.endpoint", "")

	v.SetDefault("lifecycle.countdown_interval", "1s")
	v.SetDefault("lifecycle.charge_key_ttl", "24h")
	v.SetDefault("lifecycle.default_currency", "USD")
	v.SetDefault("lifecycle.default_tax_rate", "0")
	v.SetDefault("lifecycle.invoice_due_days", 30)
	v.SetDefault("lifecycle.illustrative_fee_percent", "2.9")
}

func (c *Config) validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app.port must be between 1 and 65535, got %d", c.App.Port)
	}
	switch c.Storage.Driver {
	case StorageMemory, StorageDynamoDB:
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", StorageMemory, StorageDynamoDB, c.Storage.Driver)
	}
	switch c.Redis.Driver {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("redis.driver must be %q or %q, got %q", CacheMemory, CacheRedis, c.Redis.Driver)
	}
	switch c.Payments.Provider {
	case PaymentsMock:
	case PaymentsMercadoPago:
		if c.Payments.AccessToken == "" {
			return fmt.Errorf("payments.access_token is required for provider %q", PaymentsMercadoPago)
		}
	default:
		return fmt.Errorf("payments.provider must be %q or %q, got %q", PaymentsMock, PaymentsMercadoPago, c.Payments.Provider)
	}
	switch c.Signatures.Driver {
	case SignaturesMemory:
	case SignaturesS3:
		if c.Signatures.Bucket == "" {
			return fmt.Errorf("signatures.bucket is required for driver %q", SignaturesS3)
		}
	default:
		return fmt.Errorf("signatures.driver must be %q or %q, got %q", SignaturesMemory, SignaturesS3, c.Signatures.Driver)
	}
	if c.Lifecycle.CountdownInterval <= 0 {
		return fmt.Errorf("lifecycle.countdown_interval must be positive")
	}
	if c.Lifecycle.ChargeKeyTTL <= 0 {
		return fmt.Errorf("lifecycle.charge_key_ttl must be positive")
	}
	if len(c.Lifecycle.DefaultCurrency) != 3 {
		return fmt.Errorf("lifecycle.default_currency must be a 3-letter code, got %q", c.Lifecycle.DefaultCurrency)
	}
	if c.Lifecycle.DefaultTaxRate.IsNegative() || c.Lifecycle.DefaultTaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("lifecycle.default_tax_rate must be between 0 and 100")
	}
	if c.Lifecycle.InvoiceDueDays < 0 {
		return fmt.Errorf("lifecycle.invoice_due_days cannot be negative")
	}
	if c.Lifecycle.IllustrativeFeePercent.IsNegative() {
		return fmt.Errorf("lifecycle.illustrative_fee_percent cannot be negative")
	}
	return nil
}

// Addr is the HTTP listen address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf(":%d", a.Port)
}
