package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	BackendMemory   = "memory"
	BackendMySQL    = "mysql"
	BackendDynamoDB = "dynamodb"
	BackendS3       = "s3"
)

type Config struct {
	DBUrl string
	Port  string

	KVBackend   string
	KVTable     string
	KVBucket    string
	AWSRegion   string
	AWSEndpoint string

	JWTSecret string
	SeedFile  string

	PaymentDelay     time.Duration
	ShippingFee      decimal.Decimal
	FreeShippingOver decimal.Decimal
	TaxRate          decimal.Decimal

	RateLimit float64
	RateBurst int

	LogLevel  string
	LogFormat string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env dosyası bulunamadı, varsayılanlar kullanılacak")
	}

	cfg, err := Parse(os.Getenv)
	if err != nil {
		log.Fatal("Geçersiz yapılandırma: ", err)
	}
	return cfg
}

// Parse builds a Config from getenv, applying defaults for unset variables.
func Parse(getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		DBUrl:       getenv("DB_URL"),
		Port:        env("PORT", "8080"),
		KVBackend:   env("KV_BACKEND", BackendMemory),
		KVTable:     env("KV_TABLE", "infinix-kv"),
		KVBucket:    getenv("KV_BUCKET"),
		AWSRegion:   env("AWS_REGION", "us-east-1"),
		AWSEndpoint: getenv("AWS_ENDPOINT"),
		JWTSecret:   getenv("JWT_SECRET"),
		SeedFile:    getenv("SEED_FILE"),
		LogLevel:    env("LOG_LEVEL", "info"),
		LogFormat:   env("LOG_FORMAT", "console"),
	}

	var err error
	if cfg.PaymentDelay, err = time.ParseDuration(env("PAYMENT_DELAY", "2s")); err != nil {
		return Config{}, fmt.Errorf("PAYMENT_DELAY: %w", err)
	}
	if cfg.ShippingFee, err = decimal.NewFromString(env("SHIPPING_FEE", "50")); err != nil {
		return Config{}, fmt.Errorf("SHIPPING_FEE: %w", err)
	}
	if cfg.FreeShippingOver, err = decimal.NewFromString(env("FREE_SHIPPING_OVER", "500")); err != nil {
		return Config{}, fmt.Errorf("FREE_SHIPPING_OVER: %w", err)
	}
	if cfg.TaxRate, err = decimal.NewFromString(env("TAX_RATE", "0.08")); err != nil {
		return Config{}, fmt.Errorf("TAX_RATE: %w", err)
	}
	if cfg.RateLimit, err = strconv.ParseFloat(env("RATE_LIMIT", "10"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT: %w", err)
	}
	if cfg.RateBurst, err = strconv.Atoi(env("RATE_BURST", "20")); err != nil {
		return Config{}, fmt.Errorf("RATE_BURST: %w", err)
	}

	switch cfg.KVBackend {
	case BackendMemory:
	case BackendMySQL:
		if cfg.DBUrl == "" {
			return Config{}, fmt.Errorf("KV_BACKEND=mysql requires DB_URL")
		}
	case BackendDynamoDB:
	case BackendS3:
		if cfg.KVBucket == "" {
			return Config{}, fmt.Errorf("KV_BACKEND=s3 requires KV_BUCKET")
		}
	default:
		return Config{}, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
	}

	return cfg, nil
}
