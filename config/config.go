package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global PostgreSQL database connection.
var DB *gorm.DB

// Rdb is the global Redis client.
var Rdb *redis.Client

// Ctx is the context for Redis operations.
var Ctx = context.Background()

type Config struct {
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	JWTSecret       string `env:"JWT_SECRET,required"`
	AlphaVantageKey string `env:"ALPHA_VANTAGE_API_KEY"`

	// StartingCash is credited to every new account at registration.
	StartingCash string `env:"STARTING_CASH" envDefault:"10000.00"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"trades_executed"`

	Port          string        `env:"PORT" envDefault:"8080"`
	QuoteCacheTTL time.Duration `env:"QUOTE_CACHE_TTL" envDefault:"5m"`
}

func Load() (Config, error) {
	var cfg Config
	return cfg, env.Parse(&cfg)
}

func InitDB(cfg Config) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to the database:", err)
	}
}

// InitRedis initializes the Redis connection.
func InitRedis(cfg Config) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := Rdb.Ping(Ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
}
