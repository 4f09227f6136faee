package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/atlasbank/banking-service/internal/auth"
	"github.com/atlasbank/banking-service/internal/config"
	"github.com/atlasbank/banking-service/internal/events"
	"github.com/atlasbank/banking-service/internal/handler"
	"github.com/atlasbank/banking-service/internal/ledger"
	"github.com/atlasbank/banking-service/internal/middleware"
	"github.com/atlasbank/banking-service/internal/query"
	redisclient "github.com/atlasbank/banking-service/internal/redis"
	"github.com/atlasbank/banking-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Write store
	sqlDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Read model store + event streaming
	redis, err := redisclient.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	var publisher ledger.EventPublisher
	if cfg.EventsBroker == config.BrokerKafka {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		publisher = events.NewStreamPublisher(redis.Client)
	}

	// --- wiring ---
	db := repository.NewDB(sqlDB)

	customerRepo := repository.NewCustomerRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	operationRepo := repository.NewOperationRepository(db)
	customerReadRepo := repository.NewCustomerReadRepository(db, redis.Client, cfg.ViewCacheTTL)
	accountReadRepo := repository.NewAccountReadRepository(db, redis.Client, cfg.ViewCacheTTL)

	ledgerService := ledger.NewService(customerRepo, accountRepo, operationRepo, db, publisher)
	queryService := query.NewService(customerReadRepo, accountReadRepo, operationRepo)
	authService := auth.NewService([]byte(cfg.JWTSecret), cfg.AdminEmail, cfg.AdminPasswordHash, 0)

	customerHandler := handler.NewCustomerHandler(ledgerService, queryService)
	accountHandler := handler.NewAccountHandler(ledgerService, queryService)
	authHandler := handler.NewAuthHandler(authService)

	// Setup router
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.POST("/auth/login", authHandler.Login)

	v1 := router.Group("/v1", middleware.AuthMiddleware([]byte(cfg.JWTSecret)))
	{
		v1.GET("/customers", customerHandler.ListCustomers)
		v1.POST("/customers", customerHandler.CreateCustomer)
		v1.GET("/customers/:id", customerHandler.GetCustomer)
		v1.GET("/customers/:id/accounts", customerHandler.ListCustomerAccounts)

		v1.GET("/accounts", accountHandler.ListAccounts)
		v1.POST("/accounts/current", accountHandler.CreateCurrentAccount)
		v1.POST("/accounts/saving", accountHandler.CreateSavingAccount)
		v1.GET("/accounts/:id", accountHandler.GetAccount)
		v1.GET("/accounts/:id/operations", accountHandler.AccountHistory)
		v1.POST("/accounts/:id/debit", accountHandler.Debit)
		v1.POST("/accounts/:id/credit", accountHandler.Credit)

		v1.POST("/transfers", accountHandler.Transfer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The projector only consumes Redis streams; with Kafka as the broker the
	// view cache falls back to TTL expiry alone.
	if cfg.EventsBroker == config.BrokerRedis {
		projector := query.NewProjector(accountReadRepo)
		go func() {
			subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
				Group:    "banking-service-group",
				Consumer: "banking-consumer-1",
				Stream:   events.AccountEventsStream,
				Handler:  projector.HandleAccountEvent,
			})
			if err := subscriber.Start(ctx); err != nil {
				log.Printf("Subscriber stopped: %v", err)
			}
		}()
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("Banking service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
