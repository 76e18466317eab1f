package main

import (
	"context"
	"time"

	"github.com/Beka01247/restaurant-api/internal/env"
	"github.com/Beka01247/restaurant-api/internal/queue"
	"github.com/Beka01247/restaurant-api/internal/ratelimiter"
	"github.com/Beka01247/restaurant-api/internal/service"
	"github.com/Beka01247/restaurant-api/internal/store/mongo"
	"github.com/Beka01247/restaurant-api/internal/worker"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const version = "1.0.0"

//	@title			Restaurant API
//	@description	CRUD API for restaurants and their menus

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath	/
func main() {
	_ = godotenv.Load()

	port := env.GetString("PORT", "3000")

	cfg := config{
		addr:   env.GetString("ADDR", ":"+port),
		apiURL: env.GetString("EXTERNAL_URL", "localhost:"+port),
		env:    env.GetString("ENV", "development"),
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: env.GetInt("RATELIMITER_REQUESTS_COUNT", 20),
			TimeFrame:            time.Second * 5,
			Enabled:              env.GetBool("RATE_LIMITER_ENABLED", true),
		},
		mongo: mongoConfig{
			URI:      env.GetString("MONGODB_URI", ""),
			Database: env.GetString("MONGO_DATABASE", "restaurants"),
			Timeout:  time.Second * 10,
		},
		rabbitMQ: rabbitMQConfig{
			URL:           env.GetString("RABBITMQ_URL", ""),
			MaxRetries:    env.GetInt("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay:    time.Second * 2,
			PrefetchCount: env.GetInt("RABBITMQ_PREFETCH_COUNT", 10),
		},
	}

	// logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	if cfg.mongo.URI == "" {
		logger.Fatal("MONGODB_URI is not set")
	}

	// rate limiter
	rateLimiter := ratelimiter.NewTokenBucketLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	// storage
	storage, err := mongo.New(mongo.Config{
		URI:      cfg.mongo.URI,
		Database: cfg.mongo.Database,
		Timeout:  cfg.mongo.Timeout,
	})
	if err != nil {
		logger.Fatalw("failed to connect to MongoDB", "error", err)
	}

	logger.Info("connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := storage.CreateIndexes(ctx); err != nil {
		logger.Warnw("failed to create indexes", "error", err)
	} else {
		logger.Info("MongoDB indexes created successfully")
	}

	// repos
	restaurantRepo := mongo.NewRestaurantRepository(storage.Database())
	menuRepo := mongo.NewMenuRepository(storage.Database())
	auditRepo := mongo.NewRestaurantAuditRepository(storage.Database())

	// rabbitmq broker, optional
	var broker queue.Broker = queue.NopBroker{}
	if cfg.rabbitMQ.URL != "" {
		rabbit, err := queue.NewRabbitMQBroker(queue.Config{
			URL:           cfg.rabbitMQ.URL,
			MaxRetries:    cfg.rabbitMQ.MaxRetries,
			RetryDelay:    cfg.rabbitMQ.RetryDelay,
			PrefetchCount: cfg.rabbitMQ.PrefetchCount,
			Queues:        []string{queue.QueueRestaurantEvents},
		})
		if err != nil {
			logger.Fatalw("failed to connect to RabbitMQ", "error", err)
		}
		broker = rabbit
		logger.Info("connected to RabbitMQ")
	} else {
		logger.Warn("RABBITMQ_URL not set, restaurant events are disabled")
	}

	restaurantService := service.NewRestaurantService(
		restaurantRepo,
		menuRepo,
		auditRepo,
		broker,
		logger,
	)

	app := &application{
		config:            cfg,
		logger:            logger,
		rateLimiter:       rateLimiter,
		storage:           storage,
		broker:            broker,
		restaurantService: restaurantService,
	}

	if cfg.rabbitMQ.URL != "" {
		app.eventWorker = worker.NewRestaurantEventWorker(restaurantService, broker, logger)
	}

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Fatalw("server stopped with error", "error", err)
	}
}
