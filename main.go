package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"infinix-store/internal/config"
	"infinix-store/internal/db"
	"infinix-store/internal/kv"
	"infinix-store/internal/logger"
	"infinix-store/internal/router"
	"infinix-store/internal/seed"
	"infinix-store/internal/services"
	"infinix-store/internal/store"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const (
	clientIdleTTL      = 24 * time.Hour
	evictionInterval   = 10 * time.Minute
	shutdownTimeout    = 5 * time.Second
	s3KeyPrefix        = "kv/"
	slowRequestWarning = time.Second
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat)
	log.Info().Msg("Uygulama başlıyor")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kvStore, closeKV, err := openKVStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.KVBackend).Msg("Anahtar-değer deposu açılamadı")
	}
	defer closeKV()

	fixtures, err := seed.Load(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Başlangıç verisi yüklenemedi")
	}
	database, err := store.FromFixtures(fixtures, bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Başlangıç verisi işlenemedi")
	}
	log.Info().
		Int("products", database.Catalog.Len()).
		Int("users", database.Users.Len()).
		Int("orders", database.Orders.Len()).
		Int("designs", database.Designs.Len()).
		Msg("Seed data loaded")

	handler, registry := router.SetupRouter(router.Options{
		DB:         database,
		KV:         kvStore,
		JWTSecret:  cfg.JWTSecret,
		BcryptCost: bcrypt.DefaultCost,
		Checkout: services.CheckoutOptions{
			Pricing: &services.Pricing{
				TaxRate:          cfg.TaxRate,
				ShippingFee:      cfg.ShippingFee,
				FreeShippingOver: cfg.FreeShippingOver,
			},
			Delay: cfg.PaymentDelay,
		},
		RateLimit:   rate.Limit(cfg.RateLimit),
		RateBurst:   cfg.RateBurst,
		SlowRequest: slowRequestWarning,
	}, log)

	go registry.RunEviction(ctx, evictionInterval, clientIdleTTL)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("Sunucu %s portunda çalışıyor", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Sunucu hatası")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Kapatma sinyali alındı...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown başarısız")
	}

	log.Info().Msg("Sunucu kapatıldı")
}

// openKVStore builds the configured key-value back end. The returned func releases it.
func openKVStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (kv.Store, func(), error) {
	noop := func() {}

	switch cfg.KVBackend {
	case config.BackendMySQL:
		database := db.InitDB(cfg.DBUrl)
		db.RunMigrations(database)
		return kv.NewSQLStore(database), func() { database.Close() }, nil

	case config.BackendDynamoDB:
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.AWSEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWSEndpoint)
			}
		})
		dynamoStore, err := kv.NewDynamoStore(client, cfg.KVTable)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("table", cfg.KVTable).Msg("Using DynamoDB key-value store")
		return dynamoStore, noop, nil

	case config.BackendS3:
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.AWSEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWSEndpoint)
				o.UsePathStyle = true
			}
		})
		s3Store, err := kv.NewS3Store(client, cfg.KVBucket, s3KeyPrefix)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("bucket", cfg.KVBucket).Msg("Using S3 key-value store")
		return s3Store, noop, nil
	}

	log.Warn().Msg("Using in-memory key-value store; sessions and carts are lost on restart")
	return kv.NewMemoryStore(), noop, nil
}

// loadAWSConfig uses static dummy credentials when a local endpoint is configured.
func loadAWSConfig(ctx context.Context, cfg config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSEndpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("dummy", "dummy", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}
