package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paper-trader/config"
	"paper-trader/events"
	"paper-trader/handlers"
	"paper-trader/middleware"
	"paper-trader/models"
	"paper-trader/quotes"
	"paper-trader/store"
	"paper-trader/trading"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	startingCash, err := decimal.NewFromString(cfg.StartingCash)
	if err != nil {
		log.Fatal("Invalid STARTING_CASH:", err)
	}

	// Initialize PostgreSQL and Redis connections.
	config.InitDB(cfg)
	config.InitRedis(cfg)

	sqlDB, err := config.DB.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}
	defer sqlDB.Close()

	// Auto-migrate models.
	if err := config.DB.AutoMigrate(&models.User{}, &models.Transaction{}); err != nil {
		log.Fatal("Failed to migrate models:", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	st := store.NewPostgres(config.DB)

	var provider quotes.Provider = quotes.NewAlphaVantage(cfg.AlphaVantageKey)
	provider = quotes.NewCached(provider, config.Rdb, cfg.QuoteCacheTTL)

	var publisher trading.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		p := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer p.Close()
		publisher = p
	}

	engine := trading.NewEngine(st, provider, publisher, logger)
	h := handlers.New(st, engine, provider, config.Rdb, cfg.JWTSecret, startingCash, logger)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery(), middleware.NoStore())

	// Public routes
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/refresh", h.Refresh)
	router.POST("/logout", h.Logout)

	// Protected routes
	auth := router.Group("/")
	auth.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		auth.GET("/", h.Portfolio)
		auth.GET("/buy", h.BuyForm)
		auth.POST("/buy", h.Buy)
		auth.GET("/sell", h.SellForm)
		auth.POST("/sell", h.Sell)
		auth.GET("/quote", h.Quote)
		auth.POST("/quote", h.Quote)
		auth.GET("/history", h.History)
	}

	server := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		logger.Info("http listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
